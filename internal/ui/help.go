package ui

import (
	"github.com/gdamore/tcell/v2"
)

// HelpEntry is one key binding shown in the help overlay
type HelpEntry struct {
	Key         string
	Description string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible bool
	entries []HelpEntry
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetEntries sets the key bindings to display
func (h *HelpScreen) SetEntries(entries []HelpEntry) {
	h.entries = entries
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted help text, keys padded to one column
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, e := range h.entries {
		keyWidth = max(keyWidth, StringWidth(e.Key))
	}

	lines := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		lines = append(lines, PadStringToWidth(e.Key, keyWidth)+"  "+e.Description)
	}
	return lines
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	lines := h.Lines()
	startX, startY := 5, 2
	boxWidth := screen.GetWidth() - 10
	boxHeight := min(len(lines)+4, screen.GetHeight()-4)

	inner := drawBox(screen, startX, startY, boxWidth, boxHeight, " Keybindings (Esc to close) ")
	for i, line := range lines {
		if i >= inner.height {
			break
		}
		screen.DrawStringLimited(inner.x, inner.y+i, line, inner.width, screen.HelpStyle())
	}
}

type area struct {
	x, y, width, height int
}

// drawBox draws a bordered box with a title row and returns the content area
func drawBox(screen *Screen, x, y, width, height int, title string) area {
	border := screen.HelpBorderStyle()
	fill := screen.HelpStyle()

	hline := func(row int, left, mid, right rune) {
		screen.SetCell(x, row, left, border)
		for i := 1; i < width-1; i++ {
			screen.SetCell(x+i, row, mid, border)
		}
		screen.SetCell(x+width-1, row, right, border)
	}
	vline := func(row int, style tcell.Style) {
		screen.SetCell(x, row, '│', border)
		for i := 1; i < width-1; i++ {
			screen.SetCell(x+i, row, ' ', style)
		}
		screen.SetCell(x+width-1, row, '│', border)
	}

	hline(y, '┌', '─', '┐')
	vline(y+1, fill)
	screen.DrawStringLimited(x+2, y+1, title, width-4, screen.HelpTitleStyle())
	hline(y+2, '├', '─', '┤')
	for row := y + 3; row < y+height-1; row++ {
		vline(row, fill)
	}
	hline(y+height-1, '└', '─', '┘')

	return area{x: x + 2, y: y + 3, width: width - 4, height: max(0, height-4)}
}

package ui

import (
	"github.com/gdamore/tcell/v2"
)

// PaletteEntry is a command offered by the palette
type PaletteEntry struct {
	Name        string
	Description string
}

// Palette is a fuzzy command picker
type Palette struct {
	active   bool
	query    string
	selected int
	entries  []PaletteEntry
	find     func(query string) []PaletteEntry
}

// NewPalette creates a palette that asks find for the entries matching the query
func NewPalette(find func(query string) []PaletteEntry) *Palette {
	return &Palette{find: find}
}

// Start opens the palette with an empty query
func (p *Palette) Start() {
	p.active = true
	p.query = ""
	p.refresh()
}

// Stop closes the palette
func (p *Palette) Stop() {
	p.active = false
}

// IsActive returns whether the palette is open
func (p *Palette) IsActive() bool {
	return p.active
}

// Query returns the current query
func (p *Palette) Query() string {
	return p.query
}

// Entries returns the entries matching the query, best first
func (p *Palette) Entries() []PaletteEntry {
	return p.entries
}

func (p *Palette) refresh() {
	p.entries = p.find(p.query)
	p.selected = 0
}

// HandleKey processes a key press. When the palette closes done is true and
// name holds the chosen entry, empty when cancelled.
func (p *Palette) HandleKey(ev *tcell.EventKey) (name string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlP:
		p.Stop()
		return "", true
	case tcell.KeyEnter:
		p.Stop()
		if len(p.entries) == 0 {
			return "", true
		}
		return p.entries[p.selected].Name, true
	case tcell.KeyUp, tcell.KeyCtrlK:
		if p.selected > 0 {
			p.selected--
		}
	case tcell.KeyDown, tcell.KeyCtrlJ:
		if p.selected < len(p.entries)-1 {
			p.selected++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.query != "" {
			runes := []rune(p.query)
			p.query = string(runes[:len(runes)-1])
			p.refresh()
		}
	case tcell.KeyRune:
		p.query += string(ev.Rune())
		p.refresh()
	}
	return "", false
}

// Render draws the palette box over the top of the screen
func (p *Palette) Render(screen *Screen) {
	if !p.active {
		return
	}

	width := min(screen.GetWidth()-4, 72)
	height := min(len(p.entries)+5, screen.GetHeight()-2)
	x := (screen.GetWidth() - width) / 2

	inner := drawBox(screen, x, 1, width, height, " > "+p.query)
	nameWidth := 0
	for _, e := range p.entries {
		nameWidth = max(nameWidth, StringWidth(e.Name))
	}

	for i, e := range p.entries {
		if i >= inner.height {
			break
		}
		style := screen.PaletteMatchStyle()
		if i == p.selected {
			style = screen.PaletteSelectedStyle()
		}
		text := PadStringToWidth(e.Name, nameWidth) + "  " + e.Description
		end := screen.DrawString(inner.x, inner.y+i, TruncateToWidthWithEllipsis(text, inner.width), style)
		for ; end < inner.x+inner.width; end++ {
			screen.SetCell(end, inner.y+i, ' ', style)
		}
	}
	screen.ShowCursor(x+5+StringWidth(p.query), 2)
}

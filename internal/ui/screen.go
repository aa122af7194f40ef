package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/theme"
)

// Screen is a tcell screen with bounds-checked drawing and the theme's styles
type Screen struct {
	tcell.Screen
	Theme *theme.Theme
}

// NewScreen opens the terminal with theme t
func NewScreen(t *theme.Theme) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFromTCell(s, t)
}

// NewScreenFromTCell initializes s and wraps it, tests pass a simulation screen
func NewScreenFromTCell(s tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}
	return &Screen{Screen: s, Theme: t}, nil
}

// Close restores the terminal
func (s *Screen) Close() error {
	s.Fini()
	return nil
}

// GetWidth returns the width in columns
func (s *Screen) GetWidth() int {
	w, _ := s.Size()
	return w
}

// GetHeight returns the height in rows
func (s *Screen) GetHeight() int {
	_, h := s.Size()
	return h
}

// SetCell draws r at x, y. Cells outside the screen are ignored.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	w, h := s.Size()
	if x >= 0 && x < w && y >= 0 && y < h {
		s.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at x, y and returns the column after it.
// Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		if w := RuneWidth(r); w > 0 {
			s.SetCell(x, y, r, style)
			x += w
		}
	}
	return x
}

// DrawStringLimited draws at most maxWidth columns of text
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// FillLine paints the rest of row y starting at x
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for w := s.GetWidth(); x < w; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

func (s *Screen) fg(c tcell.Color) tcell.Style {
	return theme.ColorToStyle(c)
}

func (s *Screen) onHelp(c tcell.Color) tcell.Style {
	return theme.ColorPairToStyle(c, s.Theme.Colors.HelpBackground)
}

// Document styles

func (s *Screen) TextStyle() tcell.Style { return s.fg(s.Theme.Colors.Text) }
func (s *Screen) BulletStyle() tcell.Style { return s.fg(s.Theme.Colors.Bullet) }
func (s *Screen) NoteStyle() tcell.Style { return s.fg(s.Theme.Colors.Note) }
func (s *Screen) PlainStyle() tcell.Style { return s.fg(s.Theme.Colors.Plain) }
func (s *Screen) FoldMarkerStyle() tcell.Style { return s.fg(s.Theme.Colors.FoldMarker).Bold(true) }

// CheckboxStyle colors done checkboxes apart from open ones
func (s *Screen) CheckboxStyle(done bool) tcell.Style {
	if done {
		return s.fg(s.Theme.Colors.CheckboxDone)
	}
	return s.fg(s.Theme.Colors.Checkbox)
}

// WithSelection adds the selection background to style
func (s *Screen) WithSelection(style tcell.Style) tcell.Style {
	return style.Background(s.Theme.Colors.Selection)
}

// Overlay and status line styles

func (s *Screen) CommandPromptStyle() tcell.Style { return s.fg(s.Theme.Colors.CommandPrompt) }
func (s *Screen) CommandTextStyle() tcell.Style { return s.fg(s.Theme.Colors.CommandText) }
func (s *Screen) PaletteMatchStyle() tcell.Style { return s.onHelp(s.Theme.Colors.PaletteMatch) }
func (s *Screen) PaletteSelectedStyle() tcell.Style { return s.onHelp(s.Theme.Colors.PaletteSelected).Reverse(true) }
func (s *Screen) HelpStyle() tcell.Style { return s.onHelp(s.Theme.Colors.Text) }
func (s *Screen) HelpBorderStyle() tcell.Style { return s.onHelp(s.Theme.Colors.HelpBorder) }
func (s *Screen) HelpTitleStyle() tcell.Style { return s.onHelp(s.Theme.Colors.HelpTitle).Bold(true) }
func (s *Screen) StatusModeStyle() tcell.Style { return s.fg(s.Theme.Colors.StatusMode).Bold(true) }
func (s *Screen) StatusMessageStyle() tcell.Style { return s.fg(s.Theme.Colors.StatusMessage) }
func (s *Screen) StatusModifiedStyle() tcell.Style { return s.fg(s.Theme.Colors.StatusModified) }
func (s *Screen) HeaderStyle() tcell.Style { return s.fg(s.Theme.Colors.HeaderTitle).Bold(true) }

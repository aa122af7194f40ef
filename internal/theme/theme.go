package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Document colors
	Text         tcell.Color
	Bullet       tcell.Color
	Checkbox     tcell.Color
	CheckboxDone tcell.Color
	Note         tcell.Color
	FoldMarker   tcell.Color
	Selection    tcell.Color
	Plain        tcell.Color

	// Command line and palette colors
	CommandPrompt   tcell.Color
	CommandText     tcell.Color
	PaletteMatch    tcell.Color
	PaletteSelected tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Text:            tcell.ColorDefault,
			Bullet:          tcell.ColorDefault,
			Checkbox:        tcell.ColorDefault,
			CheckboxDone:    tcell.ColorDefault,
			Note:            tcell.ColorDefault,
			FoldMarker:      tcell.ColorDefault,
			Selection:       tcell.ColorGray,
			Plain:           tcell.ColorDefault,
			CommandPrompt:   tcell.ColorDefault,
			CommandText:     tcell.ColorDefault,
			PaletteMatch:    tcell.ColorDefault,
			PaletteSelected: tcell.ColorDefault,
			HelpBackground:  tcell.ColorDefault,
			HelpBorder:      tcell.ColorDefault,
			HelpTitle:       tcell.ColorDefault,
			StatusMode:      tcell.ColorDefault,
			StatusMessage:   tcell.ColorDefault,
			StatusModified:  tcell.ColorDefault,
			HeaderTitle:     tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	const (
		foreground = "#c0caf5"
		background = "#1a1b26"
		comment    = "#565f89"
		blue       = "#7aa2f7"
		cyan       = "#7dcfff"
		magenta    = "#bb9af7"
		green      = "#9ece6a"
		red        = "#f7768e"
	)
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Text:            HexToColor(foreground),
			Bullet:          HexToColor(cyan),
			Checkbox:        HexToColor(blue),
			CheckboxDone:    HexToColor(green),
			Note:            Blend(foreground, comment, 0.5),
			FoldMarker:      HexToColor(magenta),
			Selection:       Blend(background, blue, 0.35),
			Plain:           HexToColor(comment),
			CommandPrompt:   HexToColor(magenta),
			CommandText:     HexToColor(foreground),
			PaletteMatch:    HexToColor(green),
			PaletteSelected: HexToColor(blue),
			HelpBackground:  HexToColor(background),
			HelpBorder:      HexToColor(cyan),
			HelpTitle:       HexToColor(magenta),
			StatusMode:      HexToColor(magenta),
			StatusMessage:   HexToColor(green),
			StatusModified:  HexToColor(red),
			HeaderTitle:     HexToColor(magenta),
		},
	}
}

package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor parses #RRGGBB or #RGB. Anything else is the terminal default.
func HexToColor(hex string) tcell.Color {
	c, ok := parseHex(hex)
	if !ok {
		return tcell.ColorDefault
	}
	return fromColorful(c)
}

// ParseColorString accepts the theme file color forms: #RRGGBB, #RGB and rgb(r, g, b)
func ParseColorString(s string) tcell.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return HexToColor(s)
	}
	inner, ok := strings.CutPrefix(s, "rgb(")
	if !ok {
		return tcell.ColorDefault
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return tcell.ColorDefault
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return tcell.ColorDefault
	}
	var rgb [3]int32
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return tcell.ColorDefault
		}
		rgb[i] = int32(v)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2])
}

// Blend mixes two hex colors in Lab space, t=0 gives from and t=1 gives to.
// An unparsable color yields the terminal default.
func Blend(from, to string, t float64) tcell.Color {
	a, ok := parseHex(from)
	if !ok {
		return tcell.ColorDefault
	}
	b, ok := parseHex(to)
	if !ok {
		return tcell.ColorDefault
	}
	return fromColorful(a.BlendLab(b, t).Clamped())
}

func parseHex(hex string) (colorful.Color, bool) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) == 3 {
		digits = strings.Repeat(digits[0:1], 2) + strings.Repeat(digits[1:2], 2) + strings.Repeat(digits[2:3], 2)
	}
	if len(digits) != 6 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + digits)
	return c, err == nil
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ColorToStyle is the default style with fg as foreground
func ColorToStyle(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg)
}

// ColorPairToStyle is the default style with fg on bg
func ColorPairToStyle(fg, bg tcell.Color) tcell.Style {
	return ColorToStyle(fg).Background(bg)
}

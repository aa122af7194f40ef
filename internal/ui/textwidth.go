package ui

import (
	"github.com/mattn/go-runewidth"
)

// Widths are screen columns. Wide runes (CJK, emoji) take two columns,
// combining marks and control characters none.

// RuneWidth returns the columns r occupies
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 0)
}

// StringWidth returns the columns s occupies
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateToWidthWithEllipsis cuts s to maxWidth columns ending in "..."
// when it does not fit. Below four columns there is no room for the dots.
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadStringToWidth fills s with spaces up to width columns
func PadStringToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// nextColumn returns the column after drawing r at col. A tab runs to the
// next multiple of tabWidth.
func nextColumn(col int, r rune, tabWidth int) int {
	if r == '\t' {
		return col + tabWidth - col%tabWidth
	}
	return col + RuneWidth(r)
}

// DisplayColumn returns the screen column of byte offset ch in s
func DisplayColumn(s string, ch int, tabWidth int) int {
	col := 0
	for _, r := range s[:min(ch, len(s))] {
		col = nextColumn(col, r, tabWidth)
	}
	return col
}

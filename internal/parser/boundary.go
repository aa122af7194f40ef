package parser

import (
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// excludeTrailingBlankLine drops the last line of the window when it only holds
// whitespace that does not continue the indentation of the line above it.
// Hosts render such a line as the start of a new paragraph, not as a note of the
// last item. Only the final line is considered.
func excludeTrailingBlankLine(r Reader, startLine, endLine int) int {
	if endLine <= startLine {
		return endLine
	}
	last := r.Line(endLine)
	if strings.TrimSpace(last) != "" {
		return endLine
	}
	prevIndent := leadingWhitespace(r.Line(endLine - 1))
	if !strings.HasPrefix(last, prevIndent) {
		return endLine - 1
	}
	return endLine
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\n\r\f\v"))]
}

// SameWindow reports whether two parses of the same window are structurally equal:
// identical rendering and identical boundaries.
func SameWindow(a, b *model.Outline) bool {
	if a == nil || b == nil {
		return a == b
	}
	aStart, aEnd := a.Range()
	bStart, bEnd := b.Range()
	return aStart == bStart && aEnd == bEnd && a.Print() == b.Print()
}

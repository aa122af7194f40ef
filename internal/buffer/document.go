// Package buffer provides an in-memory line buffer that plays the host document
// for the outline engine: line text, selections and fold state.
package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// Document holds the lines of a text, its selections and its folded lines.
// The zero value is not usable, create one with New.
type Document struct {
	lines      []string
	selections []model.Selection
	folded     map[int]bool
}

// New creates a document from text with the cursor at the start
func New(text string) *Document {
	return &Document{
		lines:      strings.Split(text, "\n"),
		selections: []model.Selection{model.CursorAt(model.Position{})},
		folded:     make(map[int]bool),
	}
}

// Text returns the full text of the document
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Line returns the text of line n, or "" when n is out of range
func (d *Document) Line(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// LineCount returns the number of lines
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LastLine returns the index of the last line
func (d *Document) LastLine() int {
	return len(d.lines) - 1
}

// Selections returns a copy of the selections
func (d *Document) Selections() []model.Selection {
	return slices.Clone(d.selections)
}

// SetSelections replaces the selections, clamping them into the document
func (d *Document) SetSelections(selections []model.Selection) {
	if len(selections) == 0 {
		return
	}
	d.selections = make([]model.Selection, 0, len(selections))
	for _, s := range selections {
		d.selections = append(d.selections, model.Selection{
			Anchor: d.Clamp(s.Anchor),
			Head:   d.Clamp(s.Head),
		})
	}
}

// Cursor returns the head of the last selection
func (d *Document) Cursor() model.Position {
	return d.selections[len(d.selections)-1].Head
}

// SetCursor collapses the selections to a single cursor
func (d *Document) SetCursor(p model.Position) {
	d.SetSelections([]model.Selection{model.CursorAt(p)})
}

// Clamp moves p to the nearest valid position in the document
func (d *Document) Clamp(p model.Position) model.Position {
	p.Line = max(0, min(p.Line, d.LastLine()))
	p.Ch = max(0, min(p.Ch, len(d.lines[p.Line])))
	return p
}

// FoldedLines returns the folded line numbers in ascending order
func (d *Document) FoldedLines() []int {
	lines := make([]int, 0, len(d.folded))
	for line := range d.folded {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	return lines
}

// IsFolded reports whether line is a fold root
func (d *Document) IsFolded(line int) bool {
	return d.folded[line]
}

// Fold marks line as a fold root
func (d *Document) Fold(line int) {
	if line >= 0 && line < len(d.lines) {
		d.folded[line] = true
	}
}

// Unfold clears the fold at line
func (d *Document) Unfold(line int) {
	delete(d.folded, line)
}

// ReplaceRange replaces the text between from and to with text.
// Folded lines below the change follow their text.
func (d *Document) ReplaceRange(text string, from, to model.Position) {
	from, to = d.Clamp(from), d.Clamp(to)
	if to.Before(from) {
		from, to = to, from
	}

	head := d.lines[from.Line][:from.Ch]
	tail := d.lines[to.Line][to.Ch:]
	inserted := strings.Split(text, "\n")
	inserted[0] = head + inserted[0]
	inserted[len(inserted)-1] += tail

	removedCount := to.Line - from.Line + 1
	d.lines = slices.Replace(d.lines, from.Line, to.Line+1, inserted...)

	delta := len(inserted) - removedCount
	if delta == 0 {
		return
	}
	newEnd := from.Line + len(inserted) - 1
	shifted := make(map[int]bool, len(d.folded))
	for line := range d.folded {
		switch {
		case line <= from.Line:
			shifted[line] = true
		case line > to.Line:
			shifted[line+delta] = true
		case line <= newEnd:
			shifted[line] = true
		}
	}
	d.folded = shifted
}

// Insert types text at the cursor, replacing the selected text
func (d *Document) Insert(text string) {
	s := d.selections[len(d.selections)-1]
	from, to := s.From(), s.To()
	d.ReplaceRange(text, from, to)

	lines := strings.Split(text, "\n")
	end := model.Position{Line: from.Line + len(lines) - 1, Ch: len(lines[len(lines)-1])}
	if len(lines) == 1 {
		end.Ch += from.Ch
	}
	d.SetCursor(end)
}

// DeleteBackward removes the selection, or the character before the cursor
func (d *Document) DeleteBackward() {
	s := d.selections[len(d.selections)-1]
	from, to := s.From(), s.To()
	if from == to {
		switch {
		case from.Ch > 0:
			_, size := utf8.DecodeLastRuneInString(d.lines[from.Line][:from.Ch])
			from.Ch -= size
		case from.Line > 0:
			from = model.Position{Line: from.Line - 1, Ch: len(d.lines[from.Line-1])}
		default:
			return
		}
	}
	d.ReplaceRange("", from, to)
	d.SetCursor(from)
}

// DeleteForward removes the selection, or the character after the cursor
func (d *Document) DeleteForward() {
	s := d.selections[len(d.selections)-1]
	from, to := s.From(), s.To()
	if from == to {
		switch {
		case to.Ch < len(d.lines[to.Line]):
			_, size := utf8.DecodeRuneInString(d.lines[to.Line][to.Ch:])
			to.Ch += size
		case to.Line < d.LastLine():
			to = model.Position{Line: to.Line + 1, Ch: 0}
		default:
			return
		}
	}
	d.ReplaceRange("", from, to)
	d.SetCursor(from)
}

package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// CreateNoteLine splits the current line into a new continuation line of the same item (Shift-Enter)
type CreateNoteLine struct {
	result
	outline *model.Outline
}

// NewCreateNoteLine creates the operation
func NewCreateNoteLine(outline *model.Outline) *CreateNoteLine {
	return &CreateNoteLine{outline: outline}
}

// Perform inserts the line break, establishing a notes indent two columns
// deeper than the bullet when the item has none yet.
func (op *CreateNoteLine) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}

	cursor := o.Cursor()
	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	lines := o.LinesInfo(item)
	lineNo := lineIndexOf(lines, cursor.Line)
	if lineNo < 0 || cursor.Ch < lines[lineNo].From.Ch {
		return
	}

	op.handled()

	if item.NotesIndent() == "" {
		item.SetNotesIndent(item.Indent + "  ")
	}

	result := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		if i == lineNo {
			split := clampIndex(cursor.Ch-line.From.Ch, len(line.Text))
			result = append(result, line.Text[:split], line.Text[split:])
			continue
		}
		result = append(result, line.Text)
	}
	item.ReplaceLines(result)

	o.ReplaceCursor(model.Position{Line: cursor.Line + 1, Ch: len(item.NotesIndent())})
}

// lineIndexOf returns the index of the content line on host line, or -1
func lineIndexOf(lines []model.LineInfo, line int) int {
	for i, l := range lines {
		if l.From.Line == line {
			return i
		}
	}
	return -1
}

package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// EnsureCursorUnfolded moves a cursor that landed inside a folded region to
// the end of the first line of the outermost fold root.
type EnsureCursorUnfolded struct {
	result
	outline *model.Outline
}

// NewEnsureCursorUnfolded creates the operation
func NewEnsureCursorUnfolded(outline *model.Outline) *EnsureCursorUnfolded {
	return &EnsureCursorUnfolded{outline: outline}
}

// Perform is a no-op when the cursor is already on a visible line
func (op *EnsureCursorUnfolded) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	op.stopPropagation = true

	cursor := o.Cursor()
	item := o.ItemUnderCursor()
	if item == nil || !item.IsFolded() {
		return
	}

	foldRoot := item.TopFoldRoot()
	firstLineEnd := o.LinesInfo(foldRoot)[0].To
	if cursor.Line > firstLineEnd.Line {
		op.updated = true
		o.ReplaceCursor(firstLineEnd)
	}
}

// EnsureCursorInContent moves a cursor that sits on the bullet (and checkbox)
// prefix of a line forward to where the content starts.
type EnsureCursorInContent struct {
	result
	outline *model.Outline
}

// NewEnsureCursorInContent creates the operation
func NewEnsureCursorInContent(outline *model.Outline) *EnsureCursorInContent {
	return &EnsureCursorInContent{outline: outline}
}

// Perform is a no-op when the cursor is already within content
func (op *EnsureCursorInContent) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	op.stopPropagation = true

	cursor := o.Cursor()
	item := o.ItemUnderCursor()
	if item == nil {
		return
	}

	contentStart := o.FirstLineContentStartAfterCheckbox(item)
	linePrefix := len(item.NotesIndent())
	if contentStart.Line == cursor.Line {
		linePrefix = contentStart.Ch
	}
	if cursor.Ch < linePrefix {
		op.updated = true
		o.ReplaceCursor(model.Position{Line: cursor.Line, Ch: linePrefix})
	}
}

// MoveCursorToPreviousUnfoldedLine handles Left at the start of a content line:
// the cursor jumps to the end of the previous visible content line.
type MoveCursorToPreviousUnfoldedLine struct {
	result
	outline *model.Outline
}

// NewMoveCursorToPreviousUnfoldedLine creates the operation
func NewMoveCursorToPreviousUnfoldedLine(outline *model.Outline) *MoveCursorToPreviousUnfoldedLine {
	return &MoveCursorToPreviousUnfoldedLine{outline: outline}
}

// Perform moves the cursor when it sits right at the start of content
func (op *MoveCursorToPreviousUnfoldedLine) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	cursor := o.Cursor()
	lines := o.LinesInfo(item)

	lineNo := -1
	for i, l := range lines {
		start := l.From.Ch
		if i == 0 {
			start += len(item.Checkbox)
		}
		if l.From.Line == cursor.Line && start == cursor.Ch {
			lineNo = i
			break
		}
	}

	switch {
	case lineNo == 0:
		prev := o.ItemUnderLine(cursor.Line - 1)
		if prev == nil {
			return
		}
		op.handled()
		if prev.IsFolded() {
			o.ReplaceCursor(o.LinesInfo(prev.TopFoldRoot())[0].To)
		} else {
			o.ReplaceCursor(o.LastLineContentEnd(prev))
		}
	case lineNo > 0:
		op.handled()
		o.ReplaceCursor(lines[lineNo-1].To)
	}
}

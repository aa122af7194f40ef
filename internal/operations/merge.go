package operations

import (
	"slices"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// MergeWithPrevious handles Backspace at the start of an item or a note line
type MergeWithPrevious struct {
	result
	outline *model.Outline
}

// NewMergeWithPrevious creates the operation
func NewMergeWithPrevious(outline *model.Outline) *MergeWithPrevious {
	return &MergeWithPrevious{outline: outline}
}

// Perform joins a note line into the line above it, or the item into the item
// above it when their shapes allow it.
func (op *MergeWithPrevious) Perform() {
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

	lineNo := slices.IndexFunc(lines, func(l model.LineInfo) bool {
		return l.From == cursor
	})
	switch {
	case lineNo == 0:
		op.mergeWithPreviousItem(cursor, item)
	case lineNo > 0:
		op.mergeNotes(cursor, item, lines, lineNo)
	}
}

func (op *MergeWithPrevious) mergeNotes(cursor model.Position, item *model.Item, lines []model.LineInfo, lineNo int) {
	op.handled()

	prev := lines[lineNo-1]
	op.outline.ReplaceCursor(model.Position{Line: cursor.Line - 1, Ch: prev.From.Ch + len(prev.Text)})

	texts := make([]string, 0, len(lines)-1)
	for i, l := range lines {
		switch i {
		case lineNo - 1:
			texts = append(texts, l.Text+lines[lineNo].Text)
		case lineNo:
		default:
			texts = append(texts, l.Text)
		}
	}
	item.ReplaceLines(texts)
}

// mergeWithPreviousItem merges item into the item on the line above when
// both have no children, when the previous one has no children and sits at the
// same level, or when item has no children and the previous one is its parent.
func (op *MergeWithPrevious) mergeWithPreviousItem(cursor model.Position, item *model.Item) {
	o := op.outline
	if o.Root().Children[0] == item && !item.HasChildren() {
		return
	}

	prev := o.ItemUnderLine(cursor.Line - 1)
	if prev == nil {
		return
	}

	bothAreEmpty := !prev.HasChildren() && !item.HasChildren()
	prevIsEmptyAndSameLevel := !prev.HasChildren() && item.HasChildren() && prev.Level() == item.Level()
	itemIsEmptyAndPrevIsParent := !item.HasChildren() && prev.Level() == item.Level()-1
	if !bothAreEmpty && !prevIsEmptyAndSameLevel && !itemIsEmptyAndPrevIsParent {
		return
	}
	op.handled()

	parent := item.Parent
	prevEnd := o.LastLineContentEnd(prev)

	if prev.NotesIndent() == "" && item.NotesIndent() != "" {
		prev.SetNotesIndent(prev.Indent + trimIndentPrefix(item.NotesIndent(), item.Indent))
	}

	oldLines := prev.Lines()
	newLines := item.Lines()
	oldLines[len(oldLines)-1] += newLines[0]
	prev.ReplaceLines(append(oldLines, newLines[1:]...))

	parent.RemoveChild(item)
	for _, child := range slices.Clone(item.Children) {
		item.RemoveChild(child)
		prev.AddAfterAll(child)
	}

	o.ReplaceCursor(prevEnd)
	Renumber(o)
}

// MergeWithNext handles Delete at the end of an item or a note line by
// stepping onto the next line and merging backwards.
type MergeWithNext struct {
	outline *model.Outline
	merge   *MergeWithPrevious
}

// NewMergeWithNext creates the operation
func NewMergeWithNext(outline *model.Outline) *MergeWithNext {
	return &MergeWithNext{outline: outline, merge: NewMergeWithPrevious(outline)}
}

// Perform moves the cursor to the start of the next content line and delegates
func (op *MergeWithNext) Perform() {
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

	lineNo := slices.IndexFunc(lines, func(l model.LineInfo) bool {
		return l.To == cursor
	})
	switch {
	case lineNo < 0:
		return
	case lineNo == len(lines)-1:
		next := o.ItemUnderLine(lines[lineNo].To.Line + 1)
		if next == nil {
			return
		}
		o.ReplaceCursor(o.FirstLineContentStart(next))
	default:
		o.ReplaceCursor(lines[lineNo+1].From)
	}
	op.merge.Perform()
}

func (op *MergeWithNext) ShouldUpdate() bool {
	return op.merge.ShouldUpdate()
}

func (op *MergeWithNext) ShouldStopPropagation() bool {
	return op.merge.ShouldStopPropagation()
}

// DeleteTillLineStart deletes from the cursor back to the content start of the line (Meta-Backspace)
type DeleteTillLineStart struct {
	result
	outline *model.Outline
}

// NewDeleteTillLineStart creates the operation
func NewDeleteTillLineStart(outline *model.Outline) *DeleteTillLineStart {
	return &DeleteTillLineStart{outline: outline}
}

// Perform removes the text between the content start and the cursor
func (op *DeleteTillLineStart) Perform() {
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
	lineNo := lineIndexOf(lines, cursor.Line)
	if lineNo < 0 {
		return
	}
	op.handled()

	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	line := lines[lineNo]
	texts[lineNo] = line.Text[clampIndex(cursor.Ch-line.From.Ch, len(line.Text)):]
	item.ReplaceLines(texts)

	o.ReplaceCursor(line.From)
}

package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// SelectAll widens the selection step by step (Ctrl-A):
// item content, then item with its subtree, then the whole outline.
type SelectAll struct {
	result
	outline *model.Outline
}

// NewSelectAll creates the operation
func NewSelectAll(outline *model.Outline) *SelectAll {
	return &SelectAll{outline: outline}
}

// Perform picks the next widening step from the current selection bounds
func (op *SelectAll) Perform() {
	o := op.outline
	if !o.HasSingleSelection() {
		return
	}

	selection := o.Selections()[0]
	rootStart, rootEnd := o.Range()
	from, to := selection.From(), selection.To()

	if from.Line < rootStart.Line || to.Line > rootEnd.Line {
		return
	}
	if from == rootStart && to == rootEnd {
		return
	}

	item := o.ItemUnderCursor()
	itemUnderFrom := o.ItemUnderLine(from.Line)
	if item == nil || itemUnderFrom == nil {
		return
	}

	contentStart := o.FirstLineContentStartAfterCheckbox(item)
	contentEnd := o.LastLineContentEnd(item)
	subtreeStart := o.FirstLineContentStartAfterCheckbox(itemUnderFrom)
	subtreeEnd := o.ContentEndIncludingChildren(itemUnderFrom)

	wholeOutline := []model.Selection{{Anchor: rootStart, Head: rootEnd}}

	switch {
	case from == contentStart && to == contentEnd:
		if item.HasChildren() {
			o.ReplaceSelections([]model.Selection{{Anchor: contentStart, Head: o.ContentEndIncludingChildren(item)}})
		} else {
			o.ReplaceSelections(wholeOutline)
		}
	case from.Ch == subtreeStart.Ch && to == subtreeEnd:
		o.ReplaceSelections(wholeOutline)
	case !from.Before(contentStart) && !contentEnd.Before(to):
		o.ReplaceSelections([]model.Selection{{Anchor: contentStart, Head: contentEnd}})
	default:
		return
	}
	op.handled()
}

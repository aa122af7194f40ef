package operations

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// Indent makes the item under the cursor the last child of its previous sibling (Tab)
type Indent struct {
	result
	outline       *model.Outline
	defaultIndent string
}

// NewIndent creates the operation. defaultIndent is used when no existing indent can be inferred.
func NewIndent(outline *model.Outline, defaultIndent string) *Indent {
	return &Indent{outline: outline, defaultIndent: defaultIndent}
}

// Perform moves the item and grows the indent of its subtree
func (op *Indent) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	op.stopPropagation = true

	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	parent := item.Parent
	prev := parent.PrevSiblingOf(item)
	if prev == nil {
		return
	}
	op.updated = true

	lineBefore := o.FirstLineContentStart(item).Line
	indentPos := len(item.Indent)
	indentChars := op.inferIndentUnit(item, prev)

	parent.RemoveChild(item)
	prev.AddAfterAll(item)
	item.IndentContent(indentPos, indentChars)

	lineDiff := o.FirstLineContentStart(item).Line - lineBefore
	cursor := o.Cursor()
	o.ReplaceCursor(model.Position{Line: cursor.Line + lineDiff, Ch: cursor.Ch + len(indentChars)})

	Renumber(o)
}

// inferIndentUnit picks the indent step: what prev's children already use,
// then the item's own step below its parent, then its children's step,
// then the configured default.
func (op *Indent) inferIndentUnit(item, prev *model.Item) string {
	if prev.HasChildren() {
		if unit := trimIndentPrefix(prev.Children[0].Indent, prev.Indent); unit != "" {
			return unit
		}
	}
	if unit := trimIndentPrefix(item.Indent, item.Parent.Indent); unit != "" {
		return unit
	}
	if item.HasChildren() {
		if unit := trimIndentPrefix(item.Children[0].Indent, item.Indent); unit != "" {
			return unit
		}
	}
	return op.defaultIndent
}

func trimIndentPrefix(indent, prefix string) string {
	if len(prefix) > len(indent) {
		return ""
	}
	return indent[len(prefix):]
}

// Outdent moves the item under the cursor after its parent (Shift-Tab)
type Outdent struct {
	result
	outline *model.Outline
}

// NewOutdent creates the operation
func NewOutdent(outline *model.Outline) *Outdent {
	return &Outdent{outline: outline}
}

// Perform moves the item one level up and shrinks the indent of its subtree
func (op *Outdent) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	op.stopPropagation = true

	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	parent := item.Parent
	grandParent := parent.Parent
	if grandParent == nil {
		return
	}
	op.updated = true

	lineBefore := o.FirstLineContentStart(item).Line
	rmFrom := len(parent.Indent)
	rmTill := len(item.Indent)

	parent.RemoveChild(item)
	grandParent.AddAfter(parent, item)
	item.UnindentContent(rmFrom, rmTill)

	lineDiff := o.FirstLineContentStart(item).Line - lineBefore
	cursor := o.Cursor()
	o.ReplaceCursor(model.Position{Line: cursor.Line + lineDiff, Ch: max(0, cursor.Ch-(rmTill-rmFrom))})

	Renumber(o)
}

// OutdentIfEmpty outdents a nested item that has no content (Enter on an empty bullet)
type OutdentIfEmpty struct {
	outline *model.Outline
	outdent *Outdent
}

// NewOutdentIfEmpty creates the operation
func NewOutdentIfEmpty(outline *model.Outline) *OutdentIfEmpty {
	return &OutdentIfEmpty{outline: outline, outdent: NewOutdent(outline)}
}

// Perform outdents only single line empty items below the top level
func (op *OutdentIfEmpty) Perform() {
	o := op.outline
	if !o.HasSingleCursor() {
		return
	}
	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	lines := item.Lines()
	if len(lines) > 1 || !isEmptyLineOrEmptyCheckbox(lines[0]) || item.Level() == 1 {
		return
	}
	op.outdent.Perform()
}

func (op *OutdentIfEmpty) ShouldUpdate() bool {
	return op.outdent.ShouldUpdate()
}

func (op *OutdentIfEmpty) ShouldStopPropagation() bool {
	return op.outdent.ShouldStopPropagation()
}

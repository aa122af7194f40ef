package operations

import (
	"fmt"

	"github.com/pstuifzand/outline-engine/internal/model"
)

type direction int

const (
	up direction = iota
	down
)

// MoveUp moves the item under the cursor above its previous sibling
type MoveUp struct {
	move
}

// NewMoveUp creates the operation
func NewMoveUp(outline *model.Outline) *MoveUp {
	return &MoveUp{move{outline: outline, dir: up}}
}

// MoveDown moves the item under the cursor below its next sibling
type MoveDown struct {
	move
}

// NewMoveDown creates the operation
func NewMoveDown(outline *model.Outline) *MoveDown {
	return &MoveDown{move{outline: outline, dir: down}}
}

type move struct {
	result
	outline *model.Outline
	dir     direction
}

// Perform swaps the item with its sibling. Without a sibling in that direction
// the item crosses into the nearest same-depth item before or after its parent.
func (op *move) Perform() {
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
	lineBefore := o.FirstLineContentStart(item).Line
	indentBefore := len(item.Indent)

	if sibling := op.sibling(parent, item); sibling != nil {
		parent.RemoveChild(item)
		if op.dir == up {
			parent.AddBefore(sibling, item)
		} else {
			parent.AddAfter(sibling, item)
		}
	} else {
		newParent := op.adjacentContainer(parent)
		if newParent == nil {
			return
		}
		newIndent := indentForNewParent(item, parent, newParent, op.dir)
		parent.RemoveChild(item)
		if op.dir == up {
			newParent.AddAfterAll(item)
		} else {
			newParent.AddBeforeAll(item)
		}
		reindent(item, newIndent)
	}
	op.updated = true

	lineDiff := o.FirstLineContentStart(item).Line - lineBefore
	cursor := o.Cursor()
	o.ReplaceCursor(model.Position{
		Line: cursor.Line + lineDiff,
		Ch:   max(0, cursor.Ch+len(item.Indent)-indentBefore),
	})

	Renumber(o)
}

func (op *move) sibling(parent, item *model.Item) *model.Item {
	if op.dir == up {
		return parent.PrevSiblingOf(item)
	}
	return parent.NextSiblingOf(item)
}

// adjacentContainer climbs from parent until an ancestor has a sibling in the
// move direction, then descends along edge children back to the depth of parent.
// Returns nil when the climb reaches the root or the descent runs out of children.
func (op *move) adjacentContainer(parent *model.Item) *model.Item {
	climbed := 0
	for a := parent; a.Parent != nil; a = a.Parent {
		sibling := op.sibling(a.Parent, a)
		if sibling == nil {
			climbed++
			continue
		}
		target := sibling
		for range climbed {
			if !target.HasChildren() {
				return nil
			}
			if op.dir == up {
				target = target.Children[len(target.Children)-1]
			} else {
				target = target.Children[0]
			}
		}
		return target
	}
	return nil
}

// indentForNewParent returns the indent item should get under newParent:
// the indent of the children it will sit next to, or its current step below
// oldParent applied to newParent.
func indentForNewParent(item, oldParent, newParent *model.Item, dir direction) string {
	if newParent.HasChildren() {
		if dir == up {
			return newParent.Children[len(newParent.Children)-1].Indent
		}
		return newParent.Children[0].Indent
	}
	return newParent.Indent + trimIndentPrefix(item.Indent, oldParent.Indent)
}

// reindent replaces the indent of item by newIndent throughout its subtree
func reindent(item *model.Item, newIndent string) {
	if item.Indent == newIndent {
		return
	}
	item.UnindentContent(0, len(item.Indent))
	item.IndentContent(0, newIndent)
}

// Placement says where MoveToPosition puts the moved item relative to its target
type Placement int

const (
	Before Placement = iota
	After
	Inside
)

// String returns the placement name
func (p Placement) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// ParsePlacement parses "before", "after" or "inside"
func ParsePlacement(s string) (Placement, error) {
	for _, p := range []Placement{Before, After, Inside} {
		if p.String() == s {
			return p, nil
		}
	}
	return Before, fmt.Errorf("unknown placement %q", s)
}

// MoveToPosition detaches an item and places it before, after or inside a target item (drag and drop)
type MoveToPosition struct {
	result
	outline       *model.Outline
	item          *model.Item
	target        *model.Item
	placement     Placement
	defaultIndent string
}

// NewMoveToPosition creates the operation. item and target must belong to outline.
func NewMoveToPosition(outline *model.Outline, item, target *model.Item, placement Placement, defaultIndent string) *MoveToPosition {
	return &MoveToPosition{
		outline:       outline,
		item:          item,
		target:        target,
		placement:     placement,
		defaultIndent: defaultIndent,
	}
}

type cursorAnchor struct {
	item     *model.Item
	lineDiff int
	chDiff   int
}

// Perform moves the item and recomputes its indent from the target
func (op *MoveToPosition) Perform() {
	if op.item == nil || op.target == nil || op.item == op.target {
		return
	}
	if op.item.Contains(op.target) {
		return
	}
	op.handled()

	anchor := op.cursorAnchor()

	op.item.Parent.RemoveChild(op.item)
	switch op.placement {
	case Before:
		op.target.Parent.AddBefore(op.target, op.item)
	case After:
		op.target.Parent.AddAfter(op.target, op.item)
	case Inside:
		op.target.AddBeforeAll(op.item)
	}

	newIndent := op.target.Indent
	if op.placement == Inside {
		newIndent += op.defaultIndent
	}
	reindent(op.item, newIndent)

	op.restoreCursor(anchor)
	Renumber(op.outline)
}

// cursorAnchor remembers where the cursor sits relative to its item when the
// cursor is inside the span affected by the move.
func (op *MoveToPosition) cursorAnchor() *cursorAnchor {
	o := op.outline
	cursor := o.Cursor()
	lines := []int{
		o.FirstLineContentStart(op.item).Line,
		o.LastLineContentEnd(op.item).Line,
		o.FirstLineContentStart(op.target).Line,
		o.LastLineContentEnd(op.target).Line,
	}
	first, last := lines[0], lines[0]
	for _, l := range lines[1:] {
		first = min(first, l)
		last = max(last, l)
	}
	if cursor.Line < first || cursor.Line > last {
		return nil
	}
	item := o.ItemUnderLine(cursor.Line)
	if item == nil {
		return nil
	}
	start := o.FirstLineContentStart(item)
	return &cursorAnchor{item: item, lineDiff: cursor.Line - start.Line, chDiff: cursor.Ch - start.Ch}
}

func (op *MoveToPosition) restoreCursor(anchor *cursorAnchor) {
	o := op.outline
	if anchor == nil {
		// Keep the cursor next to the moved item instead of letting the host scroll away
		o.ReplaceCursor(o.LastLineContentEnd(op.item))
		return
	}
	start := o.FirstLineContentStart(anchor.item)
	o.ReplaceCursor(model.Position{Line: start.Line + anchor.lineDiff, Ch: start.Ch + anchor.chDiff})
}

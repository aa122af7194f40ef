package model

import (
	"slices"
	"strings"
)

// Outline is the tree parsed from one contiguous window of host text
type Outline struct {
	start      Position
	end        Position
	selections []Selection
	root       *Item
}

// LineInfo describes one content line of an item in host coordinates
type LineInfo struct {
	Text string
	From Position
	To   Position
}

// SelectionRange is the last selection plus its column bounds
type SelectionRange struct {
	Selection
	FromCh int
	ToCh   int
}

// NewOutline creates an empty outline covering [start, end]
func NewOutline(start, end Position, selections []Selection) *Outline {
	o := &Outline{
		start: start,
		end:   end,
		root:  newRootItem(),
	}
	o.ReplaceSelections(selections)
	return o
}

// Root returns the invisible item that owns the top level entries
func (o *Outline) Root() *Item {
	return o.root
}

// Children returns the top level items
func (o *Outline) Children() []*Item {
	return slices.Clone(o.root.Children)
}

// Range returns the first and last position covered by the outline
func (o *Outline) Range() (Position, Position) {
	return o.start, o.end
}

// Selections returns a copy of the selections
func (o *Outline) Selections() []Selection {
	return slices.Clone(o.selections)
}

// HasSingleSelection reports whether exactly one selection exists
func (o *Outline) HasSingleSelection() bool {
	return len(o.selections) == 1
}

// HasSingleCursor reports whether exactly one collapsed selection exists
func (o *Outline) HasSingleCursor() bool {
	return o.HasSingleSelection() && o.selections[0].IsCursor()
}

// Selection returns the last selection with its column bounds
func (o *Outline) Selection() SelectionRange {
	s := o.selections[len(o.selections)-1]
	from, to := s.Anchor.Ch, s.Head.Ch
	if from > to {
		from, to = to, from
	}
	return SelectionRange{Selection: s, FromCh: from, ToCh: to}
}

// Cursor returns the head of the last selection
func (o *Outline) Cursor() Position {
	return o.selections[len(o.selections)-1].Head
}

// ReplaceCursor replaces all selections with a single cursor
func (o *Outline) ReplaceCursor(p Position) {
	o.selections = []Selection{CursorAt(p)}
}

// ReplaceSelections replaces all selections
func (o *Outline) ReplaceSelections(selections []Selection) {
	if len(selections) < 1 {
		panic("model: unable to create outline without selections")
	}
	o.selections = slices.Clone(selections)
}

// walk visits items in document order with the line span of their content.
// It stops as soon as fn returns true.
func (o *Outline) walk(fn func(item *Item, fromLine, tillLine int) bool) {
	line := o.start.Line
	var visit func(items []*Item) bool
	visit = func(items []*Item) bool {
		for _, item := range items {
			from := line
			till := from + item.LineCount() - 1
			if fn(item, from, till) {
				return true
			}
			line = till + 1
			if visit(item.Children) {
				return true
			}
		}
		return false
	}
	visit(o.root.Children)
}

// Walk visits every item in document order
func (o *Outline) Walk(fn func(item *Item)) {
	o.walk(func(item *Item, _, _ int) bool {
		fn(item)
		return false
	})
}

// FindByID finds an item by its ID in the outline
func (o *Outline) FindByID(id int64) *Item {
	var found *Item
	o.walk(func(item *Item, _, _ int) bool {
		if item.ID == id {
			found = item
			return true
		}
		return false
	})
	return found
}

// ItemUnderLine returns the item whose content spans line, or nil
func (o *Outline) ItemUnderLine(line int) *Item {
	if line < o.start.Line || line > o.end.Line {
		return nil
	}
	var found *Item
	o.walk(func(item *Item, from, till int) bool {
		if line >= from && line <= till {
			found = item
			return true
		}
		return false
	})
	return found
}

// ItemUnderCursor returns the item under the cursor line
func (o *Outline) ItemUnderCursor() *Item {
	return o.ItemUnderLine(o.Cursor().Line)
}

// ContentLinesRangeOf returns the first and last line of the content of item.
// ok is false when the item does not belong to the outline.
func (o *Outline) ContentLinesRangeOf(target *Item) (from, till int, ok bool) {
	o.walk(func(item *Item, f, t int) bool {
		if item == target {
			from, till, ok = f, t, true
			return true
		}
		return false
	})
	return from, till, ok
}

func (o *Outline) startLineOf(item *Item) int {
	from, _, ok := o.ContentLinesRangeOf(item)
	if !ok {
		panic("model: item does not belong to the outline")
	}
	return from
}

// LinesInfo returns the content lines of item with their host positions
func (o *Outline) LinesInfo(item *Item) []LineInfo {
	start := o.startLineOf(item)
	infos := make([]LineInfo, 0, item.LineCount())
	for idx, text := range item.lines {
		line := start + idx
		startCh := len(item.notesIndent)
		if idx == 0 {
			startCh = item.ContentStartCh()
		}
		infos = append(infos, LineInfo{
			Text: text,
			From: Position{Line: line, Ch: startCh},
			To:   Position{Line: line, Ch: startCh + len(text)},
		})
	}
	return infos
}

// FirstLineContentStart returns where the first line content of item begins
func (o *Outline) FirstLineContentStart(item *Item) Position {
	return Position{Line: o.startLineOf(item), Ch: item.ContentStartCh()}
}

// FirstLineContentStartAfterCheckbox is FirstLineContentStart skipping the checkbox marker
func (o *Outline) FirstLineContentStartAfterCheckbox(item *Item) Position {
	p := o.FirstLineContentStart(item)
	p.Ch += len(item.Checkbox)
	return p
}

// LastLineContentEnd returns the end of the last content line of item
func (o *Outline) LastLineContentEnd(item *Item) Position {
	_, till, ok := o.ContentLinesRangeOf(item)
	if !ok {
		panic("model: item does not belong to the outline")
	}
	last := item.lines[len(item.lines)-1]
	if len(item.lines) == 1 {
		return Position{Line: till, Ch: item.ContentStartCh() + len(last)}
	}
	return Position{Line: till, Ch: len(item.notesIndent) + len(last)}
}

// ContentEndIncludingChildren returns the end of the last line of the subtree of item
func (o *Outline) ContentEndIncludingChildren(item *Item) Position {
	return o.LastLineContentEnd(item.lastDescendant())
}

// Print renders the outline exactly as host text, without a trailing newline
func (o *Outline) Print() string {
	var sb strings.Builder
	for _, child := range o.root.Children {
		child.Print(&sb)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Clone deep copies the outline. Item IDs are preserved.
func (o *Outline) Clone() *Outline {
	clone := &Outline{
		start:      o.start,
		end:        o.end,
		selections: slices.Clone(o.selections),
		root:       o.root.Clone(),
	}
	return clone
}

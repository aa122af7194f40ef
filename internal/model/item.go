// Package model contains the tree model for an outline parsed from host text
package model

import (
	"slices"
	"strings"
)

// Item represents a single bullet entry in the outline tree
type Item struct {
	ID               int64
	Indent           string // leading whitespace of the first line
	Bullet           string // "-", "*", "+" or "N."
	Checkbox         string // "[ ] " style marker, empty when absent or not part of the prefix
	SpaceAfterBullet string
	FoldRoot         bool
	Parent           *Item   // not owning
	Children         []*Item // document order

	notesIndent string
	lines       []string
}

// NewItem creates an item with a fresh ID from ids
func NewItem(ids *IDAllocator, indent, bullet, checkbox, spaceAfterBullet, firstLine string, foldRoot bool) *Item {
	return &Item{
		ID:               ids.Next(),
		Indent:           indent,
		Bullet:           bullet,
		Checkbox:         checkbox,
		SpaceAfterBullet: spaceAfterBullet,
		FoldRoot:         foldRoot,
		Children:         make([]*Item, 0),
		lines:            []string{firstLine},
	}
}

// newRootItem creates the invisible item that owns top level entries
func newRootItem() *Item {
	return &Item{Children: make([]*Item, 0)}
}

// NotesIndent returns the indentation shared by continuation lines, empty if unset
func (i *Item) NotesIndent() string {
	return i.notesIndent
}

// SetNotesIndent establishes the continuation indent. It can only be done once.
func (i *Item) SetNotesIndent(indent string) {
	if i.notesIndent != "" {
		panic("model: notes indent already provided")
	}
	if indent == "" {
		panic("model: notes indent must not be empty")
	}
	i.notesIndent = indent
}

// AddLine appends a continuation line (without its indent)
func (i *Item) AddLine(text string) {
	if i.notesIndent == "" {
		panic("model: unable to add line, notes indent should be provided first")
	}
	i.lines = append(i.lines, text)
}

// ReplaceLines replaces the content lines of the item
func (i *Item) ReplaceLines(lines []string) {
	if len(lines) > 1 && i.notesIndent == "" {
		panic("model: unable to replace lines, notes indent should be provided first")
	}
	i.lines = slices.Clone(lines)
}

// Lines returns a copy of the content lines
func (i *Item) Lines() []string {
	return slices.Clone(i.lines)
}

// LineCount returns the number of content lines (first line plus notes)
func (i *Item) LineCount() int {
	return len(i.lines)
}

// ContentStartCh returns the column where the first line content starts
func (i *Item) ContentStartCh() int {
	return len(i.Indent) + len(i.Bullet) + 1
}

// HasChildren reports whether the item owns any sub items
func (i *Item) HasChildren() bool {
	return len(i.Children) > 0
}

// IsFolded reports whether the item or any of its ancestors is folded
func (i *Item) IsFolded() bool {
	if i.FoldRoot {
		return true
	}
	if i.Parent != nil {
		return i.Parent.IsFolded()
	}
	return false
}

// TopFoldRoot returns the outermost folded ancestor (or the item itself)
func (i *Item) TopFoldRoot() *Item {
	var foldRoot *Item
	for tmp := i; tmp != nil; tmp = tmp.Parent {
		if tmp.FoldRoot {
			foldRoot = tmp
		}
	}
	return foldRoot
}

// Level returns the depth of the item, top level items are at level 1
func (i *Item) Level() int {
	if i.Parent == nil {
		return 0
	}
	return i.Parent.Level() + 1
}

// IndentContent inserts chars at column pos of the indent of the item and its subtree
func (i *Item) IndentContent(pos int, chars string) {
	i.Indent = i.Indent[:pos] + chars + i.Indent[pos:]
	if i.notesIndent != "" {
		i.notesIndent = i.notesIndent[:pos] + chars + i.notesIndent[pos:]
	}
	for _, child := range i.Children {
		child.IndentContent(pos, chars)
	}
}

// UnindentContent removes columns [from, till) from the indent of the item and its subtree
func (i *Item) UnindentContent(from, till int) {
	i.Indent = i.Indent[:from] + i.Indent[till:]
	if i.notesIndent != "" {
		i.notesIndent = i.notesIndent[:from] + i.notesIndent[till:]
	}
	for _, child := range i.Children {
		child.UnindentContent(from, till)
	}
}

// AddBeforeAll inserts child as the first child
func (i *Item) AddBeforeAll(child *Item) {
	child.Parent = i
	i.Children = slices.Insert(i.Children, 0, child)
}

// AddAfterAll appends child as the last child
func (i *Item) AddAfterAll(child *Item) {
	child.Parent = i
	i.Children = append(i.Children, child)
}

// AddBefore inserts child right before the existing child before
func (i *Item) AddBefore(before, child *Item) {
	idx := i.indexOf(before)
	child.Parent = i
	i.Children = slices.Insert(i.Children, idx, child)
}

// AddAfter inserts child right after the existing child after
func (i *Item) AddAfter(after, child *Item) {
	idx := i.indexOf(after)
	child.Parent = i
	i.Children = slices.Insert(i.Children, idx+1, child)
}

// RemoveChild removes a child item from this item
func (i *Item) RemoveChild(child *Item) {
	idx := i.indexOf(child)
	if idx < 0 {
		return
	}
	i.Children = slices.Delete(i.Children, idx, idx+1)
	child.Parent = nil
}

// PrevSiblingOf returns the child right before child, or nil
func (i *Item) PrevSiblingOf(child *Item) *Item {
	idx := i.indexOf(child)
	if idx <= 0 {
		return nil
	}
	return i.Children[idx-1]
}

// NextSiblingOf returns the child right after child, or nil
func (i *Item) NextSiblingOf(child *Item) *Item {
	idx := i.indexOf(child)
	if idx < 0 || idx+1 >= len(i.Children) {
		return nil
	}
	return i.Children[idx+1]
}

// Contains reports whether other is the item itself or one of its descendants
func (i *Item) Contains(other *Item) bool {
	for tmp := other; tmp != nil; tmp = tmp.Parent {
		if tmp == i {
			return true
		}
	}
	return false
}

func (i *Item) indexOf(child *Item) int {
	return slices.Index(i.Children, child)
}

// lastDescendant follows last children down to a leaf
func (i *Item) lastDescendant() *Item {
	last := i
	for last.HasChildren() {
		last = last.Children[len(last.Children)-1]
	}
	return last
}

// Print writes the item and its subtree exactly as it appears in the host text
func (i *Item) Print(sb *strings.Builder) {
	for idx, line := range i.lines {
		if idx == 0 {
			sb.WriteString(i.Indent)
			sb.WriteString(i.Bullet)
			sb.WriteString(i.SpaceAfterBullet)
		} else {
			sb.WriteString(i.notesIndent)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for _, child := range i.Children {
		child.Print(sb)
	}
}

// Clone deep copies the item and its subtree, keeping IDs
func (i *Item) Clone() *Item {
	clone := &Item{
		ID:               i.ID,
		Indent:           i.Indent,
		Bullet:           i.Bullet,
		Checkbox:         i.Checkbox,
		SpaceAfterBullet: i.SpaceAfterBullet,
		FoldRoot:         i.FoldRoot,
		Children:         make([]*Item, 0, len(i.Children)),
		notesIndent:      i.notesIndent,
		lines:            slices.Clone(i.lines),
	}
	for _, child := range i.Children {
		clone.AddAfterAll(child.Clone())
	}
	return clone
}

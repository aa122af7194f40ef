package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample builds:
//
//	- a
//	  note
//	  - b
//	- c
func buildSample(ids *IDAllocator) *Outline {
	o := NewOutline(Position{0, 0}, Position{3, 3}, []Selection{CursorAt(Position{0, 2})})
	a := NewItem(ids, "", "-", "", " ", "a", false)
	a.SetNotesIndent("  ")
	a.AddLine("note")
	b := NewItem(ids, "  ", "-", "", " ", "b", false)
	c := NewItem(ids, "", "-", "", " ", "c", false)
	a.AddAfterAll(b)
	o.Root().AddAfterAll(a)
	o.Root().AddAfterAll(c)
	return o
}

func TestOutlinePrint(t *testing.T) {
	o := buildSample(NewIDAllocator())
	assert.Equal(t, "- a\n  note\n  - b\n- c", o.Print())
}

func TestItemUnderLine(t *testing.T) {
	o := buildSample(NewIDAllocator())

	a := o.ItemUnderLine(0)
	require.NotNil(t, a)
	assert.Same(t, a, o.ItemUnderLine(1), "note line belongs to its item")
	assert.Equal(t, "b", o.ItemUnderLine(2).Lines()[0])
	assert.Equal(t, "c", o.ItemUnderLine(3).Lines()[0])
	assert.Nil(t, o.ItemUnderLine(4))
	assert.Nil(t, o.ItemUnderLine(-1))
}

func TestContentPositions(t *testing.T) {
	o := buildSample(NewIDAllocator())
	a := o.Children()[0]

	assert.Equal(t, Position{0, 2}, o.FirstLineContentStart(a))
	assert.Equal(t, Position{1, 6}, o.LastLineContentEnd(a))
	assert.Equal(t, Position{2, 5}, o.ContentEndIncludingChildren(a))

	infos := o.LinesInfo(a)
	require.Len(t, infos, 2)
	assert.Equal(t, LineInfo{Text: "note", From: Position{1, 2}, To: Position{1, 6}}, infos[1])
}

func TestCloneKeepsIDs(t *testing.T) {
	o := buildSample(NewIDAllocator())
	clone := o.Clone()

	var check func(a, b []*Item)
	check = func(a, b []*Item) {
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
			assert.NotSame(t, a[i], b[i])
			assert.Same(t, b[i].Parent.Children[i], b[i])
			check(a[i].Children, b[i].Children)
		}
	}
	check(o.Children(), clone.Children())
	assert.Equal(t, o.Print(), clone.Print())

	// Mutating the clone leaves the original alone
	clone.Children()[0].ReplaceLines([]string{"changed", "note"})
	assert.Equal(t, "- a\n  note\n  - b\n- c", o.Print())
}

func TestFoldState(t *testing.T) {
	o := buildSample(NewIDAllocator())
	a := o.Children()[0]
	b := a.Children[0]

	assert.False(t, b.IsFolded())
	a.FoldRoot = true
	assert.True(t, b.IsFolded())
	assert.Same(t, a, b.TopFoldRoot())
	assert.Nil(t, o.Children()[1].TopFoldRoot())
}

func TestIndentAndUnindentContent(t *testing.T) {
	o := buildSample(NewIDAllocator())
	a := o.Children()[0]

	a.IndentContent(0, "\t")
	assert.Equal(t, "\t- a\n\t  note\n\t  - b\n- c", o.Print())

	a.UnindentContent(0, 1)
	assert.Equal(t, "- a\n  note\n  - b\n- c", o.Print())
}

func TestInvariantViolationsPanic(t *testing.T) {
	ids := NewIDAllocator()
	item := NewItem(ids, "", "-", "", " ", "x", false)

	assert.Panics(t, func() { item.AddLine("no notes indent") })
	assert.Panics(t, func() { item.ReplaceLines([]string{"a", "b"}) })

	item.SetNotesIndent("  ")
	assert.Panics(t, func() { item.SetNotesIndent("    ") })

	assert.Panics(t, func() { NewOutline(Position{}, Position{}, nil) })
}

func TestIDAllocatorIsMonotonic(t *testing.T) {
	ids := NewIDAllocator()
	first := ids.Next()
	second := ids.Next()
	assert.Greater(t, second, first)
}

func TestSiblingNavigation(t *testing.T) {
	o := buildSample(NewIDAllocator())
	root := o.Root()
	a, c := root.Children[0], root.Children[1]

	assert.Same(t, c, root.NextSiblingOf(a))
	assert.Nil(t, root.NextSiblingOf(c))
	assert.Same(t, a, root.PrevSiblingOf(c))
	assert.Nil(t, root.PrevSiblingOf(a))
	assert.True(t, a.Contains(a.Children[0]))
	assert.False(t, a.Contains(c))
	assert.Equal(t, 2, a.Children[0].Level())
}

func TestDumpTree(t *testing.T) {
	o := buildSample(NewIDAllocator())
	o.Children()[0].FoldRoot = true
	out := DumpTree(o)
	assert.Contains(t, out, `#1 "a" [folded]`)
	assert.Contains(t, out, `  #2 "b"`)
}

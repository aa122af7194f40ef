package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pstuifzand/outline-engine/internal/model"
)

func pos(line, ch int) model.Position {
	return model.Position{Line: line, Ch: ch}
}

func TestNew(t *testing.T) {
	d := New("- a\n- b")

	assert.Equal(t, 2, d.LineCount())
	assert.Equal(t, 1, d.LastLine())
	assert.Equal(t, "- b", d.Line(1))
	assert.Equal(t, "", d.Line(2))
	assert.Equal(t, "", d.Line(-1))
	assert.Equal(t, pos(0, 0), d.Cursor())
	assert.Equal(t, "- a\n- b", d.Text())
}

func TestSetSelectionsClamps(t *testing.T) {
	d := New("ab\ncde")

	d.SetCursor(pos(10, 10))
	assert.Equal(t, pos(1, 3), d.Cursor())

	d.SetCursor(pos(0, -4))
	assert.Equal(t, pos(0, 0), d.Cursor())

	d.SetSelections(nil)
	assert.Len(t, d.Selections(), 1)
}

func TestFolds(t *testing.T) {
	d := New("a\nb\nc")
	d.Fold(2)
	d.Fold(0)
	d.Fold(7)

	assert.Equal(t, []int{0, 2}, d.FoldedLines())
	assert.True(t, d.IsFolded(2))

	d.Unfold(2)
	assert.Equal(t, []int{0}, d.FoldedLines())
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		folded   []int
		insert   string
		from, to model.Position
		want     string
		wantFold []int
	}{
		{"within line", "- abc", nil, "X", pos(0, 3), pos(0, 4), "- aXc", []int{}},
		{"grow keeps folds above", "a\nb\nc\nd", []int{0, 3}, "x\ny", pos(1, 0), pos(1, 1), "a\nx\ny\nc\nd", []int{0, 4}},
		{"shrink drops folds in removed lines", "a\nb\nc\nd\ne", []int{2, 4}, "", pos(1, 1), pos(3, 1), "a\nb\ne", []int{2}},
		{"same line count", "a\nb\nc", []int{2}, "z", pos(1, 0), pos(1, 1), "a\nz\nc", []int{2}},
		{"reversed bounds", "abc", nil, "", pos(0, 2), pos(0, 1), "ac", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.text)
			for _, line := range tt.folded {
				d.Fold(line)
			}
			d.ReplaceRange(tt.insert, tt.from, tt.to)

			assert.Equal(t, tt.want, d.Text())
			assert.Equal(t, tt.wantFold, d.FoldedLines())
		})
	}
}

func TestInsert(t *testing.T) {
	d := New("ab")
	d.SetCursor(pos(0, 1))

	d.Insert("Z")
	assert.Equal(t, "aZb", d.Text())
	assert.Equal(t, pos(0, 2), d.Cursor())

	d.Insert("X\nY")
	assert.Equal(t, "aZX\nYb", d.Text())
	assert.Equal(t, pos(1, 1), d.Cursor())
}

func TestInsertReplacesSelection(t *testing.T) {
	d := New("abcd")
	d.SetSelections([]model.Selection{{Anchor: pos(0, 3), Head: pos(0, 1)}})

	d.Insert("-")
	assert.Equal(t, "a-d", d.Text())
	assert.Equal(t, pos(0, 2), d.Cursor())
}

func TestDeleteBackward(t *testing.T) {
	d := New("héllo\nx")
	d.SetCursor(pos(0, 3))

	d.DeleteBackward()
	assert.Equal(t, "hllo\nx", d.Text())
	assert.Equal(t, pos(0, 1), d.Cursor())

	d.SetCursor(pos(1, 0))
	d.DeleteBackward()
	assert.Equal(t, "hllox", d.Text())
	assert.Equal(t, pos(0, 4), d.Cursor())

	d.SetCursor(pos(0, 0))
	d.DeleteBackward()
	assert.Equal(t, "hllox", d.Text())
}

func TestDeleteForward(t *testing.T) {
	d := New("éa\nb")

	d.DeleteForward()
	assert.Equal(t, "a\nb", d.Text())

	d.SetCursor(pos(0, 1))
	d.DeleteForward()
	assert.Equal(t, "ab", d.Text())
	assert.Equal(t, pos(0, 1), d.Cursor())

	d.SetCursor(pos(0, 2))
	d.DeleteForward()
	assert.Equal(t, "ab", d.Text())
}

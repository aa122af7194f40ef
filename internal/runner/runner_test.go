package runner

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/parser"
)

func pos(line, ch int) model.Position {
	return model.Position{Line: line, Ch: ch}
}

func newRunner(opts Options) *Runner {
	return New(parser.New(model.NewIDAllocator(), parser.Options{}), opts)
}

func enter(r *Runner) Builder {
	return func(o *model.Outline) operations.Operation {
		return operations.NewEnter(o, r.Parser().IDs(), "\t", nil)
	}
}

func TestDebugLogsTrees(t *testing.T) {
	var logs bytes.Buffer
	r := newRunner(Options{Logger: log.New(&logs, "", 0), Debug: true})
	doc := buffer.New("- a\n- b")
	doc.SetCursor(pos(1, 3))

	res := r.Run(func(o *model.Outline) operations.Operation { return operations.NewIndent(o, "\t") }, doc, doc.Cursor())
	require.True(t, res.Updated)

	out := logs.String()
	assert.Contains(t, out, "before:\noutline")
	assert.Contains(t, out, "#2 \"b\"")
	assert.Contains(t, out, "after:\noutline")
	assert.Contains(t, out, "  #2 \"b\"", "b is a child after indenting")
}

func TestRunWritesPatch(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("intro\n- a\nafter")
	doc.SetCursor(pos(1, 3))

	res := r.Run(enter(r), doc, doc.Cursor())

	assert.True(t, res.Updated)
	assert.True(t, res.StopPropagation)
	require.NotNil(t, res.Patch)
	assert.Equal(t, pos(1, 0), res.Patch.From)
	assert.Equal(t, "- a\n- ", res.Patch.Text)
	assert.Equal(t, "intro\n- a\n- \nafter", doc.Text())
	assert.Equal(t, pos(2, 2), doc.Cursor())
}

func TestRunIndent(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n  - b\n- c")
	doc.SetCursor(pos(2, 3))

	res := r.Run(func(o *model.Outline) operations.Operation {
		return operations.NewIndent(o, "\t")
	}, doc, doc.Cursor())

	assert.True(t, res.Updated)
	assert.Equal(t, "- a\n  - b\n  - c", doc.Text())
	assert.Equal(t, pos(2, 5), doc.Cursor())
}

func TestRunMergeEmptyItems(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- \n- ")
	doc.SetCursor(pos(1, 2))

	res := r.Run(func(o *model.Outline) operations.Operation {
		return operations.NewMergeWithPrevious(o)
	}, doc, doc.Cursor())

	assert.True(t, res.Updated)
	assert.Equal(t, "- ", doc.Text())
	assert.Equal(t, pos(0, 2), doc.Cursor())
}

func TestRunOutsideList(t *testing.T) {
	var logs bytes.Buffer
	r := newRunner(Options{Logger: log.New(&logs, "", 0)})
	doc := buffer.New("just text")

	res := r.Run(enter(r), doc, doc.Cursor())

	assert.Equal(t, Result{}, res)
	assert.Equal(t, "just text", doc.Text())
	assert.Contains(t, logs.String(), "no outline at (0:0)")
}

func TestRunNotEditable(t *testing.T) {
	r := newRunner(Options{Mode: ModeFunc(func() bool { return false })})
	doc := buffer.New("- a")
	doc.SetCursor(pos(0, 3))

	res := r.Run(enter(r), doc, doc.Cursor())

	assert.Equal(t, Result{}, res)
	assert.Equal(t, "- a", doc.Text())
}

func TestRunLogsOperation(t *testing.T) {
	var logs bytes.Buffer
	r := newRunner(Options{Logger: log.New(&logs, "", 0)})
	doc := buffer.New("- a")
	doc.SetCursor(pos(0, 3))

	r.Run(enter(r), doc, doc.Cursor())

	assert.Contains(t, logs.String(), "*operations.Enter")
}

func TestEvalSelectionOnly(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n- bc")
	doc.SetCursor(pos(1, 3))

	res := r.Run(func(o *model.Outline) operations.Operation {
		return operations.NewSelectAll(o)
	}, doc, doc.Cursor())

	assert.True(t, res.Updated)
	assert.Equal(t, "- a\n- bc", doc.Text())
	assert.Equal(t, []model.Selection{{Anchor: pos(1, 2), Head: pos(1, 4)}}, doc.Selections())
}

func TestRunWithZoom(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a")
	doc.SetCursor(pos(0, 3))
	zoom := StaticZoom{Range: model.Range{From: pos(0, 0), To: pos(0, 3)}, Active: true}

	r.Run(func(o *model.Outline) operations.Operation {
		return operations.NewCreateItem(o, r.Parser().IDs(), "  ", zoom)
	}, doc, doc.Cursor())

	assert.Equal(t, "- a\n  - ", doc.Text())
}

func TestMove(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n- b\n- c")

	snapshot, err := r.Snapshot(doc, 0)
	require.NoError(t, err)

	res, err := r.Move(doc, snapshot, snapshot.ItemUnderLine(2), snapshot.ItemUnderLine(0), operations.Before, "  ")

	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, "- c\n- a\n- b", doc.Text())
}

func TestMoveStaleSnapshot(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n- b\n- c")

	snapshot, err := r.Snapshot(doc, 0)
	require.NoError(t, err)

	doc.SetCursor(pos(1, 3))
	doc.Insert("x")

	res, err := r.Move(doc, snapshot, snapshot.ItemUnderLine(2), snapshot.ItemUnderLine(0), operations.Before, "  ")

	assert.True(t, errors.Is(err, ErrStaleSnapshot))
	assert.Equal(t, Result{}, res)
	assert.Equal(t, "- a\n- bx\n- c", doc.Text())
}

func TestMoveListRemoved(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n- b")

	snapshot, err := r.Snapshot(doc, 0)
	require.NoError(t, err)

	doc.ReplaceRange("plain", pos(0, 0), pos(1, 3))

	_, err = r.Move(doc, snapshot, snapshot.ItemUnderLine(1), snapshot.ItemUnderLine(0), operations.Before, "  ")
	assert.ErrorIs(t, err, ErrStaleSnapshot)
}

func TestQueueDrain(t *testing.T) {
	var q Queue
	var order []int

	q.Defer(func() {
		order = append(order, 1)
		q.Defer(func() { order = append(order, 3) })
	})
	q.Defer(func() { order = append(order, 2) })

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Drain())
}

func TestGuardCursor(t *testing.T) {
	r := newRunner(Options{})
	doc := buffer.New("- a\n  - b\n- c")
	doc.Fold(0)
	doc.SetCursor(pos(1, 5))

	var q Queue
	r.GuardCursor(&q, doc, true)

	assert.Equal(t, pos(1, 5), doc.Cursor(), "guards wait for the queue")
	require.Equal(t, 1, q.Drain())
	assert.Equal(t, pos(0, 3), doc.Cursor())

	r.GuardCursor(&q, doc, true)
	q.Drain()
	assert.Equal(t, pos(0, 3), doc.Cursor())
	assert.Equal(t, "- a\n  - b\n- c", doc.Text())
	assert.Equal(t, []int{0}, doc.FoldedLines())
}

func TestGuardCursorKeepInContent(t *testing.T) {
	r := newRunner(Options{})

	doc := buffer.New("- a")
	var q Queue
	r.GuardCursor(&q, doc, true)
	q.Drain()
	assert.Equal(t, pos(0, 2), doc.Cursor())

	doc = buffer.New("- a")
	r.GuardCursor(&q, doc, false)
	q.Drain()
	assert.Equal(t, pos(0, 0), doc.Cursor())
}

func TestAlwaysEditable(t *testing.T) {
	assert.True(t, AlwaysEditable{}.Editable())
	assert.True(t, ModeFunc(func() bool { return true }).Editable())

	_, active := StaticZoom{}.ZoomRange()
	assert.False(t, active)
}

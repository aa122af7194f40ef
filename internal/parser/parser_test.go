package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/model"
)

func newParser() *Parser {
	return New(model.NewIDAllocator(), Options{CheckboxInPrefix: true})
}

func TestParseSimpleTree(t *testing.T) {
	doc := buffer.New("- a\n  - b\n- c")

	outline, err := newParser().Parse(doc, 0)
	require.NoError(t, err)

	children := outline.Children()
	require.Len(t, children, 2)
	assert.Equal(t, []string{"a"}, children[0].Lines())
	require.Len(t, children[0].Children, 1)
	assert.Equal(t, []string{"b"}, children[0].Children[0].Lines())
	assert.Equal(t, []string{"c"}, children[1].Lines())
	assert.Equal(t, "- a\n  - b\n- c", outline.Print(), model.DumpTree(outline))
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"single empty item", "- "},
		{"notes", "- a\n  first note\n  second note\n- b"},
		{"tabs", "- a\n\t- b\n\t\t- c\n\t- d"},
		{"mixed bullets", "* a\n  + b\n  1. c\n  2. d\n- e"},
		{"checkboxes", "- [ ] todo\n  - [x] done\n- [ ] "},
		{"tab after bullet", "-\ta\n  -\tb"},
		{"trailing note line", "- a\n  "},
		{"deep then shallow", "- a\n    - b\n      - c\n    - d\n- e"},
		{"notes with children", "- a\n  note\n  - b\n    note b\n- c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.New(tt.text)
			outline, err := newParser().Parse(doc, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.text, outline.Print())
		})
	}
}

func TestParseFromNoteLine(t *testing.T) {
	doc := buffer.New("text\n- a\n  note\n- b")

	outline, err := newParser().Parse(doc, 2)
	require.NoError(t, err)

	start, end := outline.Range()
	assert.Equal(t, model.Position{Line: 1, Ch: 0}, start)
	assert.Equal(t, model.Position{Line: 3, Ch: 3}, end)
	assert.Equal(t, []string{"a", "note"}, outline.ItemUnderLine(2).Lines())
}

func TestParseWindowBoundaries(t *testing.T) {
	doc := buffer.New("intro\n- a\n- b\n\nafter\n- c")

	outline, err := newParser().Parse(doc, 2)
	require.NoError(t, err)
	start, end := outline.Range()
	assert.Equal(t, 1, start.Line)
	assert.Equal(t, 2, end.Line)
	assert.Equal(t, "- a\n- b", outline.Print())
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   int
		reason string
	}{
		{"plain paragraph", "hello", 0, "no list item above line"},
		{"mixed indentation", "- a\n\t- b\n  - c", 0, `expected indent "T", got "S"`},
		{"note with wrong indent", "- a\n    - b\n      note\n    bad", 0, `expected indent "SSSSSS", got "SSSS"`},
		{"blank line without deeper indent", "- a\n  - b\n  \n  - c", 0, "expected some indent, got no indent"},
		{"indented start", "  - a", 0, "no outdented list item found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.New(tt.text)
			outline, err := newParser().Parse(doc, tt.line)
			assert.Nil(t, outline)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Reason, tt.reason)
		})
	}
}

func TestTrailingBlankLineIsExcluded(t *testing.T) {
	doc := buffer.New("- a\n  - b\n ")

	outline, err := newParser().Parse(doc, 0)
	require.NoError(t, err)

	_, end := outline.Range()
	assert.Equal(t, 1, end.Line)
	assert.Equal(t, "- a\n  - b", outline.Print())
}

func TestTrailingBlankLineMatchingIndentIsKept(t *testing.T) {
	doc := buffer.New("- a\n  - b\n    ")

	outline, err := newParser().Parse(doc, 0)
	require.NoError(t, err)

	_, end := outline.Range()
	assert.Equal(t, 2, end.Line)
	assert.Equal(t, "- a\n  - b\n    ", outline.Print())
}

func TestParseFoldedLines(t *testing.T) {
	doc := buffer.New("- a\n  - b\n- c\n  - d")
	doc.Fold(2)

	outline, err := newParser().Parse(doc, 0)
	require.NoError(t, err)

	assert.False(t, outline.ItemUnderLine(0).FoldRoot)
	assert.True(t, outline.ItemUnderLine(2).FoldRoot)
	assert.True(t, outline.ItemUnderLine(3).IsFolded())
}

func TestCheckboxPrefixOption(t *testing.T) {
	doc := buffer.New("- [ ] task")

	with, err := New(model.NewIDAllocator(), Options{CheckboxInPrefix: true}).Parse(doc, 0)
	require.NoError(t, err)
	item := with.Children()[0]
	assert.Equal(t, "[ ] ", item.Checkbox)
	assert.Equal(t, model.Position{Line: 0, Ch: 6}, with.FirstLineContentStartAfterCheckbox(item))

	without, err := New(model.NewIDAllocator(), Options{}).Parse(doc, 0)
	require.NoError(t, err)
	item = without.Children()[0]
	assert.Equal(t, "", item.Checkbox)
	assert.Equal(t, []string{"[ ] task"}, item.Lines())
	assert.Equal(t, model.Position{Line: 0, Ch: 2}, without.FirstLineContentStartAfterCheckbox(item))
}

func TestParseRange(t *testing.T) {
	doc := buffer.New("- a\n  - b\n\npara\n\n- c\n- d")

	outlines := newParser().ParseRange(doc, 0, doc.LastLine())
	require.Len(t, outlines, 2)
	assert.Equal(t, "- a\n  - b", outlines[0].Print())
	assert.Equal(t, "- c\n- d", outlines[1].Print())
}

func TestParseWithLimitsTruncates(t *testing.T) {
	doc := buffer.New("- a\n- b\n- c\n- d")

	outline, err := newParser().ParseWithLimits(doc, 1, 1, 2)
	require.NoError(t, err)
	start, end := outline.Range()
	assert.Equal(t, 1, start.Line)
	assert.Equal(t, 2, end.Line)
	assert.Equal(t, "- b\n- c", outline.Print())
}

func TestIDsAreUniqueAcrossParses(t *testing.T) {
	p := newParser()
	doc := buffer.New("- a\n- b")

	first, err := p.Parse(doc, 0)
	require.NoError(t, err)
	second, err := p.Parse(doc, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first.Children()[0].ID, second.Children()[0].ID)
}

func TestSameWindow(t *testing.T) {
	p := newParser()
	doc := buffer.New("- a\n- b")

	first, err := p.Parse(doc, 0)
	require.NoError(t, err)
	second, err := p.Parse(doc, 1)
	require.NoError(t, err)
	assert.True(t, SameWindow(first, second))

	doc.ReplaceRange("- x", model.Position{Line: 1, Ch: 0}, model.Position{Line: 1, Ch: 3})
	third, err := p.Parse(doc, 0)
	require.NoError(t, err)
	assert.False(t, SameWindow(first, third))
}

func TestSplitListLine(t *testing.T) {
	l, ok := SplitListLine("\t12.\t[x] done")
	require.True(t, ok)
	assert.Equal(t, ListLine{Indent: "\t", Bullet: "12.", Space: "\t", Checkbox: "[x] ", Content: "done"}, l)

	l, ok = SplitListLine("* plain")
	require.True(t, ok)
	assert.Equal(t, "", l.Checkbox)
	assert.Equal(t, "plain", l.Content)

	_, ok = SplitListLine("  note line")
	assert.False(t, ok)
}

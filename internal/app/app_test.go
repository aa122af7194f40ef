package app

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/history"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/socket"
	"github.com/pstuifzand/outline-engine/internal/theme"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

func newTestApp(t *testing.T, text string, readOnly bool) *App {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.md")
	if text != "" {
		require.NoError(t, os.WriteFile(path, []byte(text+"\n"), 0644))
	}

	cfg, err := config.LoadFromFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFromTCell(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(40, 10)

	a, err := NewApp(Options{
		FilePath:   path,
		Config:     cfg,
		Screen:     screen,
		BackupDir:  filepath.Join(dir, "backups"),
		HistoryDir: filepath.Join(dir, "history"),
		Logger:     log.New(io.Discard, "", 0),
		ReadOnly:   readOnly,
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func at(line, ch int) model.Position {
	return model.Position{Line: line, Ch: ch}
}

// press handles a key and then the interrupt that runs deferred cursor guards
func press(a *App, k tcell.Key, mod tcell.ModMask) {
	a.handleRawEvent(tcell.NewEventKey(k, 0, mod))
	a.handleRawEvent(tcell.NewEventInterrupt(nil))
}

func typeRunes(a *App, text string) {
	for _, r := range text {
		a.handleRawEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	a.handleRawEvent(tcell.NewEventInterrupt(nil))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "save",
			expected: []string{"save"},
		},
		{
			name:     "command with arguments",
			input:    "move 3 inside",
			expected: []string{"move", "3", "inside"},
		},
		{
			name:     "double quoted string",
			input:    `write "my file.md"`,
			expected: []string{"write", "my file.md"},
		},
		{
			name:     "single quoted string",
			input:    "write 'my file.md'",
			expected: []string{"write", "my file.md"},
		},
		{
			name:     "mixed quotes",
			input:    `set indent "  " now`,
			expected: []string{"set", "indent", "  ", "now"},
		},
		{
			name:     "escaped quotes",
			input:    `set name "value with \"quotes\""`,
			expected: []string{"set", "name", `value with "quotes"`},
		},
		{
			name:     "escaped backslash",
			input:    `path "C:\\Users\\test"`,
			expected: []string{"path", `C:\Users\test`},
		},
		{
			name:     "multiple spaces",
			input:    "command    with    spaces",
			expected: []string{"command", "with", "spaces"},
		},
		{
			name:     "tabs and spaces",
			input:    "command\twith\t  mixed",
			expected: []string{"command", "with", "mixed"},
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "empty quoted string",
			input:    `command ""`,
			expected: []string{"command", ""},
		},
		{
			name:     "quoted string with special characters",
			input:    `set url "https://example.com/path?query=value&other=123"`,
			expected: []string{"set", "url", "https://example.com/path?query=value&other=123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommand(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected %d parts, got %d. Input: %q", len(tt.expected), len(result), tt.input)
				return
			}
			for i, part := range result {
				if part != tt.expected[i] {
					t.Errorf("Part %d: expected %q, got %q. Input: %q", i, tt.expected[i], part, tt.input)
				}
			}
		})
	}
}

func TestNewAppMissingFile(t *testing.T) {
	a := newTestApp(t, "", false)

	assert.Equal(t, "- ", a.Document().Text())
	assert.False(t, a.dirty)
}

func TestEnterCreatesItem(t *testing.T) {
	a := newTestApp(t, "- a", false)
	a.doc.SetCursor(at(0, 3))

	press(a, tcell.KeyEnter, tcell.ModNone)

	assert.Equal(t, "- a\n- ", a.doc.Text())
	assert.Equal(t, at(1, 2), a.doc.Cursor())
	assert.True(t, a.dirty)
}

func TestTabIndentsWithDefaultIndent(t *testing.T) {
	a := newTestApp(t, "- a\n- b", false)
	a.doc.SetCursor(at(1, 3))

	press(a, tcell.KeyTab, tcell.ModNone)

	assert.Equal(t, "- a\n\t- b", a.doc.Text())
}

func TestHostFallbackOutsideList(t *testing.T) {
	a := newTestApp(t, "hello", false)
	a.doc.SetCursor(at(0, 5))

	press(a, tcell.KeyEnter, tcell.ModNone)
	typeRunes(a, "x")

	assert.Equal(t, "hello\nx", a.doc.Text())
	assert.Equal(t, at(1, 1), a.doc.Cursor())
}

func TestTypingInsertsText(t *testing.T) {
	a := newTestApp(t, "- ", false)
	a.doc.SetCursor(at(0, 2))

	typeRunes(a, "héllo")

	assert.Equal(t, "- héllo", a.doc.Text())
	assert.Equal(t, len("- héllo"), a.doc.Cursor().Ch)
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	a := newTestApp(t, "- a\n- b", true)
	a.doc.SetCursor(at(1, 3))

	press(a, tcell.KeyTab, tcell.ModNone)
	typeRunes(a, "x")

	assert.Equal(t, "- a\n- b", a.doc.Text())
	assert.False(t, a.dirty)
	assert.Equal(t, "Document is read-only", a.status.Current())
	assert.Error(t, a.Save())
}

func TestCursorGuardRunsAfterEvent(t *testing.T) {
	a := newTestApp(t, "- a", false)
	a.doc.SetCursor(at(0, 3))

	a.handleRawEvent(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	assert.Equal(t, at(0, 0), a.doc.Cursor())
	assert.Equal(t, 1, a.queue.Len())

	a.handleRawEvent(tcell.NewEventInterrupt(nil))
	assert.Equal(t, at(0, 2), a.doc.Cursor())
	assert.Equal(t, 0, a.queue.Len())
}

func TestToggleFold(t *testing.T) {
	a := newTestApp(t, "- a\n  - b\n- c", false)
	a.doc.SetCursor(at(0, 3))

	press(a, tcell.KeyCtrlF, tcell.ModNone)
	assert.True(t, a.doc.IsFolded(0))

	lines, _ := a.visibleIndex()
	assert.Equal(t, []int{0, 2}, lines)

	press(a, tcell.KeyDown, tcell.ModNone)
	assert.Equal(t, 2, a.doc.Cursor().Line)

	a.doc.SetCursor(at(0, 3))
	press(a, tcell.KeyCtrlF, tcell.ModNone)
	assert.False(t, a.doc.IsFolded(0))
}

func TestAltUpMovesItem(t *testing.T) {
	a := newTestApp(t, "- a\n- b", false)
	a.doc.SetCursor(at(1, 3))

	press(a, tcell.KeyUp, tcell.ModAlt)

	assert.Equal(t, "- b\n- a", a.doc.Text())
	assert.Equal(t, at(0, 3), a.doc.Cursor())
}

func TestMoveCommand(t *testing.T) {
	a := newTestApp(t, "- a\n- b\n- c", false)
	a.doc.SetCursor(at(2, 3))

	a.handleCommand("move 1 before")

	assert.Equal(t, "- c\n- a\n- b", a.doc.Text())
	assert.True(t, a.dirty)

	a.handleCommand("move 9")
	assert.Equal(t, "Invalid line: 9", a.status.Current())

	a.handleCommand("move 1 below")
	assert.Contains(t, a.status.Current(), "unknown placement")
}

func TestSetIndent(t *testing.T) {
	a := newTestApp(t, "- a\n- b", false)

	a.handleCommand(`set indent "  "`)
	assert.Equal(t, "  ", a.settings.DefaultIndent)

	a.doc.SetCursor(at(1, 3))
	press(a, tcell.KeyTab, tcell.ModNone)
	assert.Equal(t, "- a\n  - b", a.doc.Text())

	a.handleCommand(`set indent \\t`)
	assert.Equal(t, "\t", a.settings.DefaultIndent)
}

func TestEngineCommandFromCommandLine(t *testing.T) {
	a := newTestApp(t, "- a\n  - b", false)
	a.doc.SetCursor(at(1, 5))

	a.handleCommand("outdent")
	assert.Equal(t, "- a\n- b", a.doc.Text())

	a.handleCommand("frobnicate")
	assert.Equal(t, "Unknown command: frobnicate", a.status.Current())
}

func TestPaletteRunsCommand(t *testing.T) {
	a := newTestApp(t, "- a\n- b", false)
	a.doc.SetCursor(at(1, 3))

	press(a, tcell.KeyCtrlP, tcell.ModNone)
	require.True(t, a.palette.IsActive())
	typeRunes(a, "indent")
	press(a, tcell.KeyEnter, tcell.ModNone)

	assert.False(t, a.palette.IsActive())
	assert.Equal(t, "- a\n\t- b", a.doc.Text())
}

func TestQuitWithUnsavedChanges(t *testing.T) {
	a := newTestApp(t, "- a", false)
	a.markDirty()

	a.handleCommand("q")
	assert.False(t, a.quit)

	a.handleCommand("q!")
	assert.True(t, a.quit)
}

func TestSaveWritesFileAndBackup(t *testing.T) {
	a := newTestApp(t, "- a", false)
	a.doc.SetCursor(at(0, 3))
	press(a, tcell.KeyEnter, tcell.ModNone)

	a.handleCommand("w")
	assert.False(t, a.dirty)

	data, err := os.ReadFile(a.store.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "- a\n- \n", string(data))

	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRestoreBackup(t *testing.T) {
	a := newTestApp(t, "- a", false)
	require.NoError(t, a.Save())

	a.doc.SetCursor(at(0, 3))
	typeRunes(a, "bc")
	live := a.doc

	a.handleCommand("restore 1")
	assert.Equal(t, "- a", a.doc.Text())
	assert.True(t, a.readOnly)

	a.handleCommand("backup-prev")
	assert.Equal(t, "No older backups", a.status.Current())

	a.handleCommand("live")
	assert.Same(t, live, a.doc)
	assert.False(t, a.readOnly)

	a.handleCommand("restore")
	a.handleCommand("edit")
	assert.Equal(t, "- a", a.doc.Text())
	assert.False(t, a.readOnly)
	assert.Nil(t, a.live)
}

func TestViewStatePersists(t *testing.T) {
	a := newTestApp(t, "- a\n  - b", false)
	a.doc.Fold(0)
	a.doc.SetCursor(at(0, 3))
	require.NoError(t, a.store.SaveState(a.doc))

	doc, err := a.store.Load()
	require.NoError(t, err)
	require.NoError(t, a.store.LoadState(doc))

	assert.True(t, doc.IsFolded(0))
	assert.Equal(t, at(0, 3), doc.Cursor())
}

func TestAddToInbox(t *testing.T) {
	a := newTestApp(t, "- a", false)

	created, err := a.addToInbox("first")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "- a\n- Inbox\n\t- first", a.doc.Text())

	created, err = a.addToInbox("second")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "- a\n- Inbox\n\t- first\n\t- second", a.doc.Text())

	_, err = a.addToInbox("  ")
	assert.Error(t, err)
}

func TestAddToInboxKeepsCursorOnItsLine(t *testing.T) {
	a := newTestApp(t, "- Inbox\n  * x\n- b", false)
	a.doc.SetCursor(at(2, 3))

	_, err := a.addToInbox("y")
	require.NoError(t, err)

	assert.Equal(t, "- Inbox\n  * x\n  * y\n- b", a.doc.Text())
	assert.Equal(t, at(3, 3), a.doc.Cursor())
}

func TestAddToInboxEmptyDocument(t *testing.T) {
	a := newTestApp(t, "", false)

	_, err := a.addToInbox("idea")
	require.NoError(t, err)
	assert.Equal(t, "- Inbox\n\t- idea", a.doc.Text())
}

func TestSocketMessages(t *testing.T) {
	a := newTestApp(t, "- a\n- b", false)

	resp := a.handleAddItemCommand(socket.Message{Command: socket.CommandAddItem, Text: "note", Target: "elsewhere"})
	assert.False(t, resp.Success)

	resp = a.handleAddItemCommand(socket.Message{Command: socket.CommandAddItem, Text: "note"})
	assert.True(t, resp.Success)
	assert.Equal(t, "Added to new inbox item", resp.Message)

	a.doc.SetCursor(at(1, 3))
	resp = a.handleRunCommand(socket.Message{Command: socket.CommandRun, Text: "indent"})
	assert.True(t, resp.Success)
	assert.Equal(t, "- a\n\t- b\n- Inbox\n\t- note", a.doc.Text())

	resp = a.handleRunCommand(socket.Message{Command: socket.CommandRun, Text: "zzz"})
	assert.False(t, resp.Success)
}

func TestRender(t *testing.T) {
	a := newTestApp(t, "- a\n  - b", false)
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFromTCell(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(40, 10)
	a.screen.Close()
	a.screen = screen

	a.doc.Fold(0)
	a.render()

	cells, width, _ := sim.GetContents()
	var first []rune
	for x := 0; x < width; x++ {
		first = append(first, cells[x].Runes...)
	}
	assert.Contains(t, string(first), "- a [+1]")
}

func TestCommandHistoryPersists(t *testing.T) {
	a := newTestApp(t, "- a", false)

	press(a, tcell.KeyCtrlG, tcell.ModNone)
	require.True(t, a.command.IsActive())
	typeRunes(a, "set indent x")
	press(a, tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "x", a.settings.DefaultIndent)

	require.NoError(t, a.Close())
	loaded, err := a.history.Load(history.CommandFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"set indent x"}, loaded)
}

func TestBackspaceFallsBackWhenMergeDeclines(t *testing.T) {
	a := newTestApp(t, "- a\n  - b\n- c\n  - d", false)
	a.doc.SetCursor(at(2, 2))

	press(a, tcell.KeyBackspace2, tcell.ModNone)
	assert.Equal(t, "- a\n  - b\n-c\n  - d", a.doc.Text())
}

func TestCloseTwice(t *testing.T) {
	a := newTestApp(t, "- a", false)

	require.NoError(t, a.Close())
	assert.NotPanics(t, func() { assert.NoError(t, a.Close()) })
}

func TestSearchMovesToNextMatch(t *testing.T) {
	a := newTestApp(t, "- [ ] alpha\n  - beta\n- [x] gamma\n- [ ] delta", false)

	a.handleCommand("search is:todo")
	assert.Equal(t, at(3, 11), a.doc.Cursor())
	assert.Equal(t, "Match 2/2", a.status.Current())

	press(a, tcell.KeyCtrlN, tcell.ModNone)
	assert.Equal(t, at(0, 11), a.doc.Cursor())
	assert.Equal(t, "Match 1/2", a.status.Current())

	a.handleCommand("search zzz")
	assert.Equal(t, "No match for zzz", a.status.Current())
	assert.Equal(t, at(0, 11), a.doc.Cursor())

	a.handleCommand("search (beta")
	assert.Contains(t, a.status.Current(), "Invalid query")
}

func TestSearchUnfoldsAncestors(t *testing.T) {
	a := newTestApp(t, "- a\n  - b\n    - target\n- c", false)
	a.doc.Fold(0)
	a.doc.Fold(1)

	a.handleCommand(`search "target"`)
	assert.Equal(t, at(2, 12), a.doc.Cursor())
	assert.False(t, a.doc.IsFolded(0))
	assert.False(t, a.doc.IsFolded(1))
}

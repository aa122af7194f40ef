package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/model"
)

func TestTextStoreLoadMissing(t *testing.T) {
	store := NewTextStore(filepath.Join(t.TempDir(), "missing.md"))

	doc, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, EmptyOutline, doc.Text())
	assert.False(t, store.FileExists())
}

func TestTextStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes", "todo.md")
	store := NewTextStore(path)

	require.NoError(t, store.Save(buffer.New("- a\n\t- b")))
	assert.True(t, store.FileExists())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- a\n\t- b\n", string(data))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "- a\n\t- b", doc.Text())
}

func TestTextStoreLoadCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.md")
	require.NoError(t, os.WriteFile(path, []byte("- a\r\n- b\r\n"), 0644))

	doc, err := NewTextStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", doc.Text())
}

func TestViewStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	store := NewTextStore(path)

	doc := buffer.New("- a\n  - b\n- c\n  - d")
	doc.Fold(0)
	doc.Fold(2)
	doc.SetCursor(model.Position{Line: 2, Ch: 3})
	require.NoError(t, store.SaveState(doc))
	assert.Equal(t, filepath.Join(filepath.Dir(path), ".todo.md.state.json"), store.StatePath())

	restored := buffer.New("- a\n  - b\n- c")
	require.NoError(t, store.LoadState(restored))

	assert.Equal(t, []int{0, 2}, restored.FoldedLines())
	assert.Equal(t, model.Position{Line: 2, Ch: 3}, restored.Cursor())
}

func TestLoadStateMissing(t *testing.T) {
	store := NewTextStore(filepath.Join(t.TempDir(), "todo.md"))
	doc := buffer.New("- a")

	require.NoError(t, store.LoadState(doc))
	assert.Empty(t, doc.FoldedLines())
}

func TestBackupManagerCreateBackup(t *testing.T) {
	bm, err := NewBackupManagerIn(filepath.Join(t.TempDir(), "backups"))
	require.NoError(t, err)

	original := filepath.Join(t.TempDir(), "todo.md")
	path, err := bm.CreateBackup(buffer.New("- backed up"), original, "test1234")
	require.NoError(t, err)
	assert.Equal(t, bm.Dir(), filepath.Dir(path))

	doc, backup, err := LoadBackup(path)
	require.NoError(t, err)
	assert.Equal(t, "- backed up", doc.Text())
	assert.Equal(t, original, backup.OriginalFile)
}

func TestBackupFilenameFormat(t *testing.T) {
	now := time.Date(2025, 11, 3, 15, 4, 5, 0, time.Local)

	name := generateBackupFilename(now, "abc12345")
	assert.Equal(t, "20251103_150405_abc12345.tuo", name)

	meta, err := parseBackupFilename(name, filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	assert.Equal(t, "abc12345", meta.SessionID)
	assert.Equal(t, 2025, meta.Timestamp.Year())
	assert.Empty(t, meta.OriginalFile)

	_, err = parseBackupFilename("short.tuo", "short.tuo")
	assert.Error(t, err)
}

func TestFindBackupsForFile(t *testing.T) {
	dir := t.TempDir()
	bm, err := NewBackupManagerIn(dir)
	require.NoError(t, err)

	first := filepath.Join(t.TempDir(), "first.md")
	second := filepath.Join(t.TempDir(), "second.md")
	write := func(name, original string) {
		data := `{"original_file": "` + original + `", "text": "- x"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	write("20250102_000000_bbbbbbbb.tuo", first)
	write("20250101_000000_aaaaaaaa.tuo", first)
	write("20250103_000000_cccccccc.tuo", second)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	backups, err := bm.FindBackupsForFile(first)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, "aaaaaaaa", backups[0].SessionID)
	assert.Equal(t, "bbbbbbbb", backups[1].SessionID)

	all, err := bm.FindBackupsForFile("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID()

	assert.Len(t, id, 8)
	for _, ch := range id {
		assert.Contains(t, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(ch))
	}
}

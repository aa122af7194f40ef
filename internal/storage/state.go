package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/model"
)

// ViewState is the editor state kept next to a file: folds and cursor
type ViewState struct {
	Folded []int          `json:"folded"`
	Cursor model.Position `json:"cursor"`
}

// StatePath returns the sidecar path for the file, a hidden file in the same directory
func (s *TextStore) StatePath() string {
	return stateFilePath(s.FilePath)
}

// SaveState records the folds and cursor of doc
func (s *TextStore) SaveState(doc *buffer.Document) error {
	state := ViewState{
		Folded: doc.FoldedLines(),
		Cursor: doc.Cursor(),
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.StatePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// LoadState restores folds and cursor into doc. A missing sidecar is not an
// error. Lines past the end of doc are ignored.
func (s *TextStore) LoadState(doc *buffer.Document) error {
	data, err := os.ReadFile(s.StatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read state: %w", err)
	}

	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}

	for _, line := range state.Folded {
		doc.Fold(line)
	}
	doc.SetCursor(state.Cursor)
	return nil
}

func stateFilePath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+".state.json")
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/buffer"
)

// EmptyOutline is the text of a new file, a single empty item
const EmptyOutline = "- "

// TextStore handles plain text file persistence
type TextStore struct {
	FilePath string
}

// NewTextStore creates a new text store for the given file path
func NewTextStore(filePath string) *TextStore {
	return &TextStore{
		FilePath: filePath,
	}
}

// Load reads the file into a document. A missing file gives a document
// holding a single empty item.
func (s *TextStore) Load() (*buffer.Document, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return buffer.New(EmptyOutline), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return buffer.New(text), nil
}

// Save writes the document text followed by a final newline
func (s *TextStore) Save(doc *buffer.Document) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(s.FilePath, []byte(doc.Text()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the outline file exists
func (s *TextStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// Package history keeps command line input between sessions
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// CommandFile is the history file of the command line
	CommandFile = "commands.toml"
	// MaxEntries is the number of entries kept on disk, newest last
	MaxEntries = 200
)

// Manager reads and writes history files in one directory
type Manager struct {
	dir string
}

type entriesFile struct {
	Entries []string `toml:"entries"`
}

// DefaultDir returns ~/.local/share/outline-engine/history
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no home directory for history: %w", err)
	}
	return filepath.Join(home, ".local", "share", "outline-engine", "history"), nil
}

// NewManager creates a manager in DefaultDir
func NewManager() (*Manager, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewManagerIn(dir)
}

// NewManagerIn creates a manager that keeps its files in dir
func NewManagerIn(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Path returns the location of the named history file
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// Load returns the entries of the named file. A missing or unreadable TOML
// file is an empty history.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(m.Path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f entriesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, nil
	}
	return f.Entries, nil
}

// Save writes the last MaxEntries entries, replacing the file in one rename
func (m *Manager) Save(name string, entries []string) error {
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	data, err := toml.Marshal(entriesFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, name+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), m.Path(name))
}

package storage

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pstuifzand/outline-engine/internal/buffer"
)

// Backup files are named <time>_<session>.tuo, for example
// 20251103_150405_abc12345.tuo
const (
	backupTimeLayout = "20060102_150405"
	backupExt        = ".tuo"
	sessionChars     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Backup is the JSON content of a backup file
type Backup struct {
	OriginalFile string `json:"original_file"`
	Text         string `json:"text"`
}

// BackupMetadata describes a backup file found on disk
type BackupMetadata struct {
	FilePath     string
	Timestamp    time.Time
	SessionID    string
	OriginalFile string
}

// BackupManager writes and lists backups in one directory
type BackupManager struct {
	dir string
}

// NewBackupManager uses ~/.local/share/outline-engine/backups
func NewBackupManager() (*BackupManager, error) {
	base := os.TempDir()
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".local", "share")
	}
	return NewBackupManagerIn(filepath.Join(base, "outline-engine", "backups"))
}

// NewBackupManagerIn uses dir, creating it when needed
func NewBackupManagerIn(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &BackupManager{dir: dir}, nil
}

// Dir returns the directory backups are written to
func (bm *BackupManager) Dir() string {
	return bm.dir
}

// GenerateSessionID returns 8 random letters and digits
func GenerateSessionID() string {
	id := make([]byte, 8)
	for i := range id {
		id[i] = sessionChars[rand.Intn(len(sessionChars))]
	}
	return string(id)
}

func generateBackupFilename(now time.Time, sessionID string) string {
	return now.Format(backupTimeLayout) + "_" + sessionID + backupExt
}

func parseBackupFilename(name, path string) (BackupMetadata, error) {
	stem, ok := strings.CutSuffix(name, backupExt)
	if !ok || len(stem) < len(backupTimeLayout)+2 || stem[len(backupTimeLayout)] != '_' {
		return BackupMetadata{}, fmt.Errorf("not a backup file name: %s", name)
	}
	ts, err := time.Parse(backupTimeLayout, stem[:len(backupTimeLayout)])
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}
	meta := BackupMetadata{
		FilePath:  path,
		Timestamp: ts,
		SessionID: stem[len(backupTimeLayout)+1:],
	}
	if _, backup, err := LoadBackup(path); err == nil {
		meta.OriginalFile = backup.OriginalFile
	}
	return meta, nil
}

// CreateBackup writes the document text and the absolute path of
// originalPath to a new backup file and returns its path
func (bm *BackupManager) CreateBackup(doc *buffer.Document, originalPath string, sessionID string) (string, error) {
	data, err := json.MarshalIndent(Backup{OriginalFile: absolute(originalPath), Text: doc.Text()}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}
	path := filepath.Join(bm.dir, generateBackupFilename(time.Now(), sessionID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// LoadBackup reads a backup file into a document
func LoadBackup(path string) (*buffer.Document, Backup, error) {
	var backup Backup
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, backup, fmt.Errorf("failed to read backup: %w", err)
	}
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, backup, fmt.Errorf("failed to parse backup: %w", err)
	}
	return buffer.New(backup.Text), backup, nil
}

// FindBackupsForFile lists the backups of originalPath, oldest first. An
// empty path lists every backup.
func (bm *BackupManager) FindBackupsForFile(originalPath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	want := ""
	if originalPath != "" {
		want = absolute(originalPath)
	}

	var backups []BackupMetadata
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		meta, err := parseBackupFilename(e.Name(), filepath.Join(bm.dir, e.Name()))
		if err != nil {
			continue
		}
		if want != "" && filepath.Clean(meta.OriginalFile) != want {
			continue
		}
		backups = append(backups, meta)
	}
	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

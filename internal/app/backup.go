package app

import (
	"fmt"
	"strconv"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

const backupTimeFormat = "2006-01-02 15:04:05"

// findBackups returns the backups of the open file, oldest first
func (a *App) findBackups() ([]storage.BackupMetadata, bool) {
	if a.backups == nil {
		a.SetStatus("Backups disabled")
		return nil, false
	}
	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil {
		a.SetStatus("Failed to list backups: " + err.Error())
		return nil, false
	}
	if len(backups) == 0 {
		a.SetStatus("No backups found")
		return nil, false
	}
	return backups, true
}

func (a *App) handleBackups() {
	backups, ok := a.findBackups()
	if !ok {
		return
	}
	latest := backups[len(backups)-1]
	a.SetStatus(fmt.Sprintf("%d backups, latest %s", len(backups), latest.Timestamp.Format(backupTimeFormat)))
}

// handleRestore opens the n-th newest backup read-only
func (a *App) handleRestore(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			a.SetStatus("Invalid backup number: " + args[0])
			return
		}
		n = v
	}
	backups, ok := a.findBackups()
	if !ok {
		return
	}
	if n > len(backups) {
		a.SetStatus(fmt.Sprintf("Only %d backups", len(backups)))
		return
	}
	a.showBackup(backups[len(backups)-n])
}

// stepBackup shows the backup delta steps away from the one on screen. When
// not viewing a backup, it starts from the newest. With sameSession only
// backups written by this session are considered.
func (a *App) stepBackup(delta int, sameSession bool) bool {
	backups, ok := a.findBackups()
	if !ok {
		return false
	}

	current := len(backups)
	for i, b := range backups {
		if b.FilePath == a.backupPath {
			current = i
			break
		}
	}

	for i := current + delta; i >= 0 && i < len(backups); i += delta {
		if sameSession && backups[i].SessionID != a.sessionID {
			continue
		}
		return a.showBackup(backups[i])
	}

	if delta < 0 {
		a.SetStatus("No older backups")
	} else {
		a.SetStatus("No newer backups")
	}
	return false
}

// showBackup replaces the document on screen with a backup, read-only.
// The live document is kept until leaveBackup or keepBackup.
func (a *App) showBackup(backup storage.BackupMetadata) bool {
	doc, _, err := storage.LoadBackup(backup.FilePath)
	if err != nil {
		a.SetStatus("Failed to load backup: " + err.Error())
		return false
	}
	if a.live == nil {
		a.live = &liveState{doc: a.doc, readOnly: a.readOnly}
	}
	a.doc = doc
	a.readOnly = true
	a.backupPath = backup.FilePath
	a.SetStatus(fmt.Sprintf("Backup: %s (%s), :live to return, :edit to keep it", backup.Timestamp.Format(backupTimeFormat), backup.SessionID))
	return true
}

// leaveBackup returns to the live document
func (a *App) leaveBackup() {
	if a.live == nil {
		a.SetStatus("Not viewing a backup")
		return
	}
	a.doc = a.live.doc
	a.readOnly = a.live.readOnly
	a.live = nil
	a.backupPath = ""
	a.SetStatus("Back to the live document")
}

// keepBackup makes the backup on screen the live document
func (a *App) keepBackup() {
	a.live = nil
	a.backupPath = ""
	a.readOnly = false
	a.markDirty()
	a.SetStatus("Restored backup, save to keep it")
}

// liveDocument is the document that belongs to the file, even while a backup is shown
func (a *App) liveDocument() *buffer.Document {
	if a.live != nil {
		return a.live.doc
	}
	return a.doc
}

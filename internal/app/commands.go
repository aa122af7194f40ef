package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/commands"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/runner"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

// handleCommand runs a line typed on the command line
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		if a.dirty {
			a.SetStatus("Unsaved changes! Use :q! to force quit or :w to save")
		} else {
			a.quit = true
		}
	case "q!", "quit!":
		a.quit = true
	case "w", "write":
		if len(parts) > 1 && !a.readOnly {
			a.store = storage.NewTextStore(parts[1])
		}
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved " + filepath.Base(a.store.FilePath))
		}
	case "wq":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.quit = true
		}
	case "help":
		a.help.Toggle()
	case "debug":
		a.SetDebugMode(!a.debugMode)
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	case "set":
		a.handleSet(parts[1:])
	case "readonly":
		a.readOnly = true
		a.SetStatus("Read-only")
	case "edit":
		if a.live != nil {
			a.keepBackup()
			return
		}
		a.readOnly = false
		a.SetStatus("Editing")
	case "move":
		a.handleMove(parts[1:])
	case "backups":
		a.handleBackups()
	case "restore":
		a.handleRestore(parts[1:])
	case "backup-prev":
		a.stepBackup(-1, len(parts) > 1 && parts[1] == "session")
	case "backup-next":
		a.stepBackup(1, len(parts) > 1 && parts[1] == "session")
	case "live":
		a.leaveBackup()
	case "search":
		a.handleSearch(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), parts[0])))
	default:
		cmd, ok := commands.Resolve(parts[0])
		if !ok {
			a.SetStatus("Unknown command: " + parts[0])
			return
		}
		if !a.runCommand(cmd.Name) {
			a.SetStatus(cmd.Name + ": not in a list")
		}
		a.guardCursor()
	}
}

func (a *App) handleSet(args []string) {
	switch len(args) {
	case 0:
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + strconv.Quote(all[k])
		}
		if len(pairs) == 0 {
			a.SetStatus("No settings")
			return
		}
		a.SetStatus(strings.Join(pairs, " "))
	case 1:
		a.SetStatus(fmt.Sprintf("%s=%q", args[0], a.cfg.Get(args[0])))
	default:
		value := strings.Join(args[1:], " ")
		if args[0] == "indent" {
			value = unescapeIndent(value)
		}
		a.cfg.Set(args[0], value)
		a.applySettings()
		a.SetStatus(fmt.Sprintf("%s=%q", args[0], value))
	}
}

// unescapeIndent turns a typed "\t" into a tab
func unescapeIndent(s string) string {
	return strings.ReplaceAll(s, `\t`, "\t")
}

// handleMove moves the item under the cursor relative to the item on a 1-based line
func (a *App) handleMove(args []string) {
	if len(args) == 0 {
		a.SetStatus("Usage: move <line> [before|after|inside]")
		return
	}
	line, err := strconv.Atoi(args[0])
	if err != nil || line < 1 || line > a.doc.LineCount() {
		a.SetStatus("Invalid line: " + args[0])
		return
	}
	placement := operations.Before
	if len(args) > 1 {
		placement, err = operations.ParsePlacement(args[1])
		if err != nil {
			a.SetStatus(err.Error())
			return
		}
	}

	cursor := a.doc.Cursor()
	snapshot, err := a.runner.Snapshot(a.doc, cursor.Line)
	if err != nil {
		a.SetStatus("Not in a list")
		return
	}
	item := snapshot.ItemUnderLine(cursor.Line)
	target := snapshot.ItemUnderLine(line - 1)
	if item == nil || target == nil {
		a.SetStatus("No item on line " + args[0])
		return
	}

	res, err := a.runner.Move(a.doc, snapshot, item, target, placement, a.settings.DefaultIndent)
	switch {
	case errors.Is(err, runner.ErrStaleSnapshot):
		a.SetStatus("Document changed, move discarded")
	case err != nil:
		a.SetStatus("Move failed: " + err.Error())
	case res.Updated:
		a.markDirty()
		a.SetStatus(fmt.Sprintf("Moved %s line %d", placement, line))
	default:
		a.SetStatus("Nothing moved")
	}
	a.guardCursor()
}

// parseCommand splits a command line into words. Single and double quotes
// group words, a backslash escapes the next character.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
		inWord  bool
		escaped bool
	)

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

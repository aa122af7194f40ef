package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/ui"
)

// KeyBinding binds a key to an outliner command and a host handler.
// The command runs first; the handler runs when the command does not apply.
type KeyBinding struct {
	Keys        []tcell.Key
	Mod         tcell.ModMask // only ModAlt and ModShift are compared, Ctrl is part of the key
	Label       string
	Description string
	Command     string
	Handler     func(*App)
	KeepGoal    bool // vertical motion keeps the remembered column
}

func (kb *KeyBinding) matches(ev *tcell.EventKey) bool {
	const compared = tcell.ModAlt | tcell.ModShift
	if ev.Modifiers()&compared != kb.Mod&compared {
		return false
	}
	for _, k := range kb.Keys {
		if ev.Key() == k {
			return true
		}
	}
	return false
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Keys:        []tcell.Key{tcell.KeyEnter},
			Label:       "Enter",
			Description: "New item, outdent when empty",
			Command:     "enter",
			Handler: func(app *App) {
				app.edit(func() { app.doc.Insert("\n") })
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyEnter},
			Mod:         tcell.ModShift,
			Label:       "Shift-Enter",
			Description: "New note line in the item",
			Command:     "create-note-line",
			Handler: func(app *App) {
				app.edit(func() { app.doc.Insert("\n") })
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyEnter},
			Mod:         tcell.ModAlt,
			Label:       "Alt-Enter",
			Description: "New note line in the item",
			Command:     "create-note-line",
			Handler: func(app *App) {
				app.edit(func() { app.doc.Insert("\n") })
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyTab},
			Label:       "Tab",
			Description: "Indent item",
			Command:     "indent",
			Handler: func(app *App) {
				app.edit(func() { app.doc.Insert("\t") })
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyBacktab},
			Label:       "Shift-Tab",
			Description: "Outdent item",
			Command:     "outdent",
		},
		{
			Keys:        []tcell.Key{tcell.KeyBackspace, tcell.KeyBackspace2},
			Label:       "Backspace",
			Description: "Delete, joins with the line above at item start",
			Command:     "merge-with-previous",
			Handler: func(app *App) {
				app.edit(app.doc.DeleteBackward)
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyBackspace, tcell.KeyBackspace2},
			Mod:         tcell.ModAlt,
			Label:       "Alt-Backspace",
			Description: "Delete to the start of the line",
			Command:     "delete-till-line-start",
			Handler: func(app *App) {
				app.edit(app.deleteToLineStart)
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyDelete},
			Label:       "Delete",
			Description: "Delete, joins the next item at item end",
			Command:     "merge-with-next",
			Handler: func(app *App) {
				app.edit(app.doc.DeleteForward)
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlA},
			Label:       "Ctrl-A",
			Description: "Select item, subtree, then the list",
			Command:     "select-all",
			Handler:     (*App).selectDocument,
		},
		{
			Keys:        []tcell.Key{tcell.KeyUp},
			Mod:         tcell.ModAlt,
			Label:       "Alt-Up",
			Description: "Move item up",
			Command:     "move-up",
		},
		{
			Keys:        []tcell.Key{tcell.KeyDown},
			Mod:         tcell.ModAlt,
			Label:       "Alt-Down",
			Description: "Move item down",
			Command:     "move-down",
		},
		{
			Keys:        []tcell.Key{tcell.KeyLeft},
			Label:       "Left",
			Description: "Cursor left, to the previous visible line at content start",
			Command:     "move-cursor-to-previous-unfolded-line",
			Handler:     (*App).cursorLeft,
		},
		{
			Keys:        []tcell.Key{tcell.KeyRight},
			Label:       "Right",
			Description: "Cursor right",
			Handler:     (*App).cursorRight,
		},
		{
			Keys:        []tcell.Key{tcell.KeyUp},
			Label:       "Up",
			Description: "Previous visible line",
			Handler:     func(app *App) { app.cursorVertical(-1) },
			KeepGoal:    true,
		},
		{
			Keys:        []tcell.Key{tcell.KeyDown},
			Label:       "Down",
			Description: "Next visible line",
			Handler:     func(app *App) { app.cursorVertical(1) },
			KeepGoal:    true,
		},
		{
			Keys:        []tcell.Key{tcell.KeyPgUp},
			Label:       "PgUp",
			Description: "Page up",
			Handler:     func(app *App) { app.cursorVertical(-app.pageSize()) },
			KeepGoal:    true,
		},
		{
			Keys:        []tcell.Key{tcell.KeyPgDn},
			Label:       "PgDn",
			Description: "Page down",
			Handler:     func(app *App) { app.cursorVertical(app.pageSize()) },
			KeepGoal:    true,
		},
		{
			Keys:        []tcell.Key{tcell.KeyPgUp},
			Mod:         tcell.ModAlt,
			Label:       "Alt-PgUp",
			Description: "Show the previous backup",
			Handler:     func(app *App) { app.stepBackup(-1, false) },
		},
		{
			Keys:        []tcell.Key{tcell.KeyPgDn},
			Mod:         tcell.ModAlt,
			Label:       "Alt-PgDn",
			Description: "Show the next backup",
			Handler:     func(app *App) { app.stepBackup(1, false) },
		},
		{
			Keys:        []tcell.Key{tcell.KeyHome},
			Label:       "Home",
			Description: "Start of line",
			Handler:     (*App).cursorHome,
		},
		{
			Keys:        []tcell.Key{tcell.KeyEnd},
			Label:       "End",
			Description: "End of line",
			Handler:     (*App).cursorEnd,
		},
		{
			Keys:        []tcell.Key{tcell.KeyEscape},
			Label:       "Esc",
			Description: "Clear selection",
			Handler:     (*App).clearSelection,
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlF},
			Label:       "Ctrl-F",
			Description: "Fold or unfold item",
			Handler:     (*App).toggleFold,
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlP},
			Label:       "Ctrl-P",
			Description: "Command palette",
			Handler: func(app *App) {
				app.palette.Start()
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlG},
			Label:       "Ctrl-G",
			Description: "Command line (:w, :q, :set, :move, :search, :restore, :live)",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlN},
			Label:       "Ctrl-N",
			Description: "Next match of the last search",
			Handler: func(app *App) {
				app.handleSearch("")
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlS},
			Label:       "Ctrl-S",
			Description: "Save",
			Handler: func(app *App) {
				app.handleCommand("w")
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyCtrlQ},
			Label:       "Ctrl-Q",
			Description: "Quit",
			Handler: func(app *App) {
				app.handleCommand("q")
			},
		},
		{
			Keys:        []tcell.Key{tcell.KeyF1},
			Label:       "F1",
			Description: "Toggle this help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
	}
}

// findBinding returns the binding for ev, or nil
func (a *App) findBinding(ev *tcell.EventKey) *KeyBinding {
	for i := range a.bindings {
		if a.bindings[i].matches(ev) {
			return &a.bindings[i]
		}
	}
	return nil
}

func helpEntries(bindings []KeyBinding) []ui.HelpEntry {
	entries := make([]ui.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		entries = append(entries, ui.HelpEntry{Key: b.Label, Description: b.Description})
	}
	return entries
}

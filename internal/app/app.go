package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/commands"
	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/history"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/parser"
	"github.com/pstuifzand/outline-engine/internal/runner"
	"github.com/pstuifzand/outline-engine/internal/socket"
	"github.com/pstuifzand/outline-engine/internal/storage"
	"github.com/pstuifzand/outline-engine/internal/theme"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

const (
	autoSaveDelay = 5 * time.Second
	statusTTL     = 4 * time.Second
	tabWidth      = 4
)

// Status line mode labels
const (
	EditMode     = "EDIT"
	ReadOnlyMode = "READONLY"
)

// Options configures NewApp
type Options struct {
	FilePath string
	Config   *config.Config
	// Screen is used instead of opening the terminal when set
	Screen *ui.Screen
	// BackupDir overrides the default backup directory
	BackupDir string
	// HistoryDir overrides the default command history directory
	HistoryDir string
	// Logger receives engine diagnostics when debug is on
	Logger *log.Logger
	// ReadOnly opens the file without allowing edits
	ReadOnly bool
	// Socket starts a Unix socket server so other processes can add items
	Socket bool
}

// App is the main application controller
type App struct {
	screen    *ui.Screen
	doc       *buffer.Document
	store     *storage.TextStore
	backups   *storage.BackupManager
	server    *socket.Server
	history   *history.Manager
	sessionID string
	cfg       *config.Config
	settings  config.Snapshot
	logger    *log.Logger

	ids    *model.IDAllocator
	runner *runner.Runner
	queue  runner.Queue
	env    commands.Env

	view     *ui.DocumentView
	help     *ui.HelpScreen
	command  *ui.CommandLine
	palette  *ui.Palette
	status   *ui.StatusLine
	bindings []KeyBinding

	live       *liveState // set while a backup is shown
	backupPath string

	dirty     bool
	changedAt time.Time
	quit      bool
	debugMode bool
	readOnly  bool
	goalCh    int // column kept while moving up and down

	lastSearch string

	closeOnce sync.Once
	closeErr  error
}

// liveState is what showing a backup replaced
type liveState struct {
	doc      *buffer.Document
	readOnly bool
}

// NewApp creates a new App instance
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	store := storage.NewTextStore(opts.FilePath)
	doc, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load outline: %w", err)
	}
	if err := store.LoadState(doc); err != nil {
		log.Printf("ignoring view state: %v", err)
	}

	var backups *storage.BackupManager
	if opts.BackupDir != "" {
		backups, err = storage.NewBackupManagerIn(opts.BackupDir)
	} else {
		backups, err = storage.NewBackupManager()
	}
	if err != nil {
		log.Printf("backups disabled: %v", err)
		backups = nil
	}

	var hist *history.Manager
	if opts.HistoryDir != "" {
		hist, err = history.NewManagerIn(opts.HistoryDir)
	} else {
		hist, err = history.NewManager()
	}
	if err != nil {
		log.Printf("command history disabled: %v", err)
		hist = nil
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	a := &App{
		screen:    screen,
		doc:       doc,
		store:     store,
		backups:   backups,
		history:   hist,
		sessionID: storage.GenerateSessionID(),
		cfg:       cfg,
		logger:    logger,
		ids:       model.NewIDAllocator(),
		help:      ui.NewHelpScreen(),
		command:   ui.NewCommandLine(),
		status:    ui.NewStatusLine(50, statusTTL),
		readOnly:  opts.ReadOnly,
	}
	a.palette = ui.NewPalette(paletteEntries)
	if hist != nil {
		if entries, err := hist.Load(history.CommandFile); err == nil {
			a.command.SetHistory(entries)
		}
	}
	a.applySettings()
	a.bindings = a.InitializeKeybindings()
	a.help.SetEntries(helpEntries(a.bindings))
	a.SetStatus("Press F1 for help")

	if opts.Socket {
		server, err := socket.NewServer(socket.Dir(), os.Getpid())
		if err != nil {
			log.Printf("socket server disabled: %v", err)
		} else {
			server.Start()
			a.server = server
		}
	}

	return a, nil
}

// applySettings rebuilds the engine from the current configuration
func (a *App) applySettings() {
	a.settings = a.cfg.Snapshot()
	a.debugMode = a.debugMode || a.settings.Debug

	out := io.Discard
	if a.debugMode {
		out = a.logger.Writer()
	}

	p := parser.New(a.ids, parser.Options{
		CheckboxInPrefix: a.settings.CheckboxInPrefix,
		Logger:           log.New(out, "[PARSER] ", log.LstdFlags),
	})
	a.runner = runner.New(p, runner.Options{
		Logger: log.New(out, "[RUNNER] ", log.LstdFlags),
		Mode:   runner.ModeFunc(func() bool { return !a.readOnly }),
		Debug:  a.debugMode,
	})
	a.env = commands.Env{
		IDs:           a.ids,
		DefaultIndent: a.settings.DefaultIndent,
		Zoom:          operations.NoZoom{},
	}
	a.view = ui.NewDocumentView(p, tabWidth)
}

func paletteEntries(query string) []ui.PaletteEntry {
	found := commands.Find(query)
	entries := make([]ui.PaletteEntry, len(found))
	for i, c := range found {
		entries[i] = ui.PaletteEntry{Name: c.Name, Description: c.Description}
	}
	return entries
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)

	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var messages <-chan socket.Message
	if a.server != nil {
		messages = a.server.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
			a.render()
		case msg := <-messages:
			a.handleSocketMessage(msg)
			a.render()
		case <-ticker.C:
			a.render()

			if a.dirty && time.Since(a.changedAt) > autoSaveDelay {
				if err := a.Save(); err != nil {
					a.SetStatus("Failed to save: " + err.Error())
				} else {
					a.SetStatus("Saved")
				}
			}
		}
	}

	return nil
}

// Close saves the view state, stops the socket server and closes the screen.
// Calls after the first return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if a.server != nil {
			a.server.Stop()
			a.server = nil
		}
		if err := a.store.SaveState(a.liveDocument()); err != nil {
			log.Printf("failed to save view state: %v", err)
		}
		if a.history != nil {
			if err := a.history.Save(history.CommandFile, a.command.History()); err != nil {
				log.Printf("failed to save command history: %v", err)
			}
		}
		if a.screen != nil {
			a.closeErr = a.screen.Close()
		}
	})
	return a.closeErr
}

// render renders the current state to the screen
func (a *App) render() {
	width, height := a.screen.Size()
	a.screen.HideCursor()

	a.view.Render(a.screen, a.doc, 0, height-1)

	mode := EditMode
	if a.readOnly {
		mode = ReadOnlyMode
	}
	if a.command.IsActive() {
		a.command.Render(a.screen, height-1)
	} else {
		a.status.Render(a.screen, height-1, mode, filepath.Base(a.store.FilePath), a.dirty)
	}

	a.palette.Render(a.screen)
	a.help.Render(a.screen)

	if width > 0 {
		a.screen.Show()
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		a.queue.Drain()
		return
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventKey:
		a.handleKey(ev)
	}

	a.scheduleDrain()
}

// scheduleDrain lets queued cursor guards run once the current event is done
func (a *App) scheduleDrain() {
	if a.queue.Len() == 0 {
		return
	}
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		a.queue.Drain()
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.command.IsActive() {
		cmd, done := a.command.HandleKey(ev)
		if done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.palette.IsActive() {
		name, done := a.palette.HandleKey(ev)
		if done && name != "" {
			a.runCommand(name)
			a.guardCursor()
		}
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 {
			a.help.Hide()
		}
		return
	}

	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	a.handleKeypress(ev)
}

// handleKeypress dispatches a key to its binding or inserts the typed rune
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if b := a.findBinding(ev); b != nil {
		a.dispatch(b)
		if !b.KeepGoal {
			a.goalCh = a.doc.Cursor().Ch
		}
		a.guardCursor()
		return
	}

	if ev.Key() == tcell.KeyRune {
		a.edit(func() { a.doc.Insert(string(ev.Rune())) })
		a.goalCh = a.doc.Cursor().Ch
		a.guardCursor()
	}
}

// dispatch tries the outliner command first and falls back to the host handler
func (a *App) dispatch(b *KeyBinding) {
	if b.Command != "" && a.runCommand(b.Command) {
		return
	}
	if b.Handler != nil {
		b.Handler(a)
	}
}

// runCommand runs a named outliner command at the cursor. It reports whether
// the command handled the key.
func (a *App) runCommand(name string) bool {
	cmd, ok := commands.Lookup(name)
	if !ok {
		a.SetStatus("Unknown command: " + name)
		return false
	}

	before := a.doc.Text()
	res := a.runner.Run(cmd.Builder(a.env), a.doc, a.doc.Cursor())
	if a.doc.Text() != before {
		a.markDirty()
	}
	return res.StopPropagation
}

func (a *App) guardCursor() {
	a.runner.GuardCursor(&a.queue, a.doc, a.settings.KeepInContent)
}

// edit runs a plain text change unless the document is read-only
func (a *App) edit(fn func()) {
	if a.readOnly {
		a.SetStatus("Document is read-only")
		return
	}
	fn()
	a.markDirty()
}

func (a *App) markDirty() {
	a.dirty = true
	a.changedAt = time.Now()
}

// Save writes a backup and the document to disk
func (a *App) Save() error {
	if a.readOnly {
		return fmt.Errorf("document is read-only")
	}
	if a.backups != nil {
		if _, err := a.backups.CreateBackup(a.doc, a.store.FilePath, a.sessionID); err != nil {
			log.Printf("backup failed: %v", err)
		}
	}
	if err := a.store.Save(a.doc); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.status.Set(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
	a.applySettings()
}

// Document returns the document being edited
func (a *App) Document() *buffer.Document {
	return a.doc
}

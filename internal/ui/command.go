package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

const commandHistorySize = 50

// CommandLine manages command line input (`:command`)
type CommandLine struct {
	active    bool
	input     string
	cursorPos int // byte offset into input

	history   []string
	histIndex int
	pending   string
}

// NewCommandLine creates an inactive command line
func NewCommandLine() *CommandLine {
	return &CommandLine{}
}

// Start enters command mode
func (c *CommandLine) Start() {
	c.active = true
	c.input = ""
	c.cursorPos = 0
	c.histIndex = len(c.history)
}

// Stop exits command mode
func (c *CommandLine) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandLine) IsActive() bool {
	return c.active
}

// History returns the entered commands, oldest first
func (c *CommandLine) History() []string {
	return append([]string(nil), c.history...)
}

// SetHistory replaces the history, keeping the newest entries
func (c *CommandLine) SetHistory(entries []string) {
	c.history = nil
	for _, e := range entries {
		c.remember(e)
	}
	c.histIndex = len(c.history)
}

func (c *CommandLine) remember(cmd string) {
	if cmd == "" {
		return
	}
	if n := len(c.history); n > 0 && c.history[n-1] == cmd {
		return
	}
	c.history = append(c.history, cmd)
	if len(c.history) > commandHistorySize {
		c.history = c.history[len(c.history)-commandHistorySize:]
	}
}

func (c *CommandLine) recall(delta int) {
	if c.histIndex == len(c.history) {
		c.pending = c.input
	}
	idx := c.histIndex + delta
	if idx < 0 || idx > len(c.history) {
		return
	}
	c.histIndex = idx
	if idx == len(c.history) {
		c.input = c.pending
	} else {
		c.input = c.history[idx]
	}
	c.cursorPos = len(c.input)
}

// DeleteWordBackwards removes the word before the cursor and the blanks after it
func (c *CommandLine) DeleteWordBackwards() {
	before := strings.TrimRightFunc(c.input[:c.cursorPos], unicode.IsSpace)
	start := strings.LastIndexFunc(before, unicode.IsSpace) + 1
	c.input = c.input[:start] + c.input[c.cursorPos:]
	c.cursorPos = start
}

func (c *CommandLine) insert(s string) {
	c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
	c.cursorPos += len(s)
}

// runeBefore and runeAfter return the byte size of the rune next to the cursor
func (c *CommandLine) runeBefore() int {
	_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
	return size
}

func (c *CommandLine) runeAfter() int {
	_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
	return size
}

// HandleKey processes a key press in command mode. done is true when the
// command line closed, command is empty when it was cancelled.
func (c *CommandLine) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input)
		c.remember(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input == "" {
			c.Stop()
			return "", true
		}
		n := c.runeBefore()
		c.input = c.input[:c.cursorPos-n] + c.input[c.cursorPos:]
		c.cursorPos -= n
	case tcell.KeyDelete:
		n := c.runeAfter()
		c.input = c.input[:c.cursorPos] + c.input[c.cursorPos+n:]
	case tcell.KeyLeft:
		c.cursorPos -= c.runeBefore()
	case tcell.KeyRight:
		c.cursorPos += c.runeAfter()
	case tcell.KeyHome, tcell.KeyCtrlA:
		c.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlW:
		c.DeleteWordBackwards()
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursorPos]
	case tcell.KeyUp:
		c.recall(-1)
	case tcell.KeyDown:
		c.recall(1)
	case tcell.KeyRune:
		c.insert(string(ev.Rune()))
	}
	return "", false
}

// GetInput returns the current command input
func (c *CommandLine) GetInput() string {
	return strings.TrimSpace(c.input)
}

// Render renders the command line
func (c *CommandLine) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	x := screen.DrawString(0, y, ":", screen.CommandPromptStyle())
	end := screen.DrawString(x, y, c.input, screen.CommandTextStyle())
	screen.FillLine(end, y, screen.CommandTextStyle())
	screen.ShowCursor(x+StringWidth(c.input[:c.cursorPos]), y)
}

package app

import (
	"errors"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/operations"
	"github.com/pstuifzand/outline-engine/internal/parser"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

const inboxTitle = "Inbox"

// findInbox returns the line of the top level "Inbox" item
func (a *App) findInbox() (int, bool) {
	for l := 0; l < a.doc.LineCount(); l++ {
		li, ok := parser.SplitListLine(a.doc.Line(l))
		if ok && li.Indent == "" && li.Checkbox == "" && strings.TrimSpace(li.Content) == inboxTitle {
			return l, true
		}
	}
	return 0, false
}

// createInbox appends an "Inbox" item at the end of the document
func (a *App) createInbox() int {
	last := a.doc.LastLine()
	end := model.Position{Line: last, Ch: len(a.doc.Line(last))}
	if a.doc.Text() == storage.EmptyOutline || a.doc.Text() == "" {
		a.doc.ReplaceRange("- "+inboxTitle, model.Position{}, end)
		return 0
	}
	a.doc.ReplaceRange("\n- "+inboxTitle, end, end)
	return last + 1
}

// addToInbox adds text as the last child of the inbox item.
// If no inbox exists, one will be created.
func (a *App) addToInbox(text string) (created bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, errors.New("item text cannot be empty")
	}
	if strings.Contains(text, "\n") {
		return false, errors.New("item text must be a single line")
	}
	if a.readOnly {
		return false, errors.New("document is read-only")
	}

	line, ok := a.findInbox()
	if !ok {
		line = a.createInbox()
		created = true
	}

	outline, err := a.runner.Parser().Parse(a.doc, line)
	if err != nil {
		return created, err
	}
	inbox := outline.ItemUnderLine(line)
	if inbox == nil {
		return created, errors.New("inbox is not a list item")
	}

	indent := inbox.Indent + a.settings.DefaultIndent
	bullet := "-"
	if n := len(inbox.Children); n > 0 {
		last := inbox.Children[n-1]
		indent = last.Indent
		if !operations.IsNumberedBullet(last.Bullet) {
			bullet = last.Bullet
		}
	}

	end := outline.ContentEndIncludingChildren(inbox)
	a.doc.ReplaceRange("\n"+indent+bullet+" "+text, end, end)
	a.doc.Unfold(line)
	a.shiftSelectionsBelow(end.Line, 1)
	a.markDirty()
	return created, nil
}

// shiftSelectionsBelow moves selections after line down by delta lines
func (a *App) shiftSelectionsBelow(line, delta int) {
	selections := a.doc.Selections()
	shift := func(p model.Position) model.Position {
		if p.Line > line {
			p.Line += delta
		}
		return p
	}
	for i := range selections {
		selections[i].Anchor = shift(selections[i].Anchor)
		selections[i].Head = shift(selections[i].Head)
	}
	a.doc.SetSelections(selections)
}

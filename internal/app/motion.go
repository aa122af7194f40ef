package app

import (
	"unicode/utf8"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// visibleIndex returns the visible rows and the index of the row holding the cursor
func (a *App) visibleIndex() ([]int, int) {
	rows := a.view.Rows(a.doc)
	lines := make([]int, len(rows))
	cursorLine := a.doc.Cursor().Line
	idx := 0
	for i, row := range rows {
		lines[i] = row.Line
		if row.Line <= cursorLine {
			idx = i
		}
	}
	return lines, idx
}

func (a *App) cursorLeft() {
	cur := a.doc.Cursor()
	if cur.Ch > 0 {
		_, size := utf8.DecodeLastRuneInString(a.doc.Line(cur.Line)[:cur.Ch])
		a.doc.SetCursor(model.Position{Line: cur.Line, Ch: cur.Ch - size})
		return
	}
	lines, idx := a.visibleIndex()
	if idx > 0 {
		prev := lines[idx-1]
		a.doc.SetCursor(model.Position{Line: prev, Ch: len(a.doc.Line(prev))})
	}
}

func (a *App) cursorRight() {
	cur := a.doc.Cursor()
	text := a.doc.Line(cur.Line)
	if cur.Ch < len(text) {
		_, size := utf8.DecodeRuneInString(text[cur.Ch:])
		a.doc.SetCursor(model.Position{Line: cur.Line, Ch: cur.Ch + size})
		return
	}
	lines, idx := a.visibleIndex()
	if idx < len(lines)-1 {
		a.doc.SetCursor(model.Position{Line: lines[idx+1], Ch: 0})
	}
}

// cursorVertical moves by delta visible rows, keeping the goal column
func (a *App) cursorVertical(delta int) {
	lines, idx := a.visibleIndex()
	if len(lines) == 0 {
		return
	}
	idx = max(0, min(idx+delta, len(lines)-1))
	line := lines[idx]
	a.doc.SetCursor(model.Position{Line: line, Ch: min(a.goalCh, len(a.doc.Line(line)))})
}

func (a *App) pageSize() int {
	return max(1, a.screen.GetHeight()-2)
}

func (a *App) cursorHome() {
	a.doc.SetCursor(model.Position{Line: a.doc.Cursor().Line})
}

func (a *App) cursorEnd() {
	line := a.doc.Cursor().Line
	a.doc.SetCursor(model.Position{Line: line, Ch: len(a.doc.Line(line))})
}

func (a *App) clearSelection() {
	selections := a.doc.Selections()
	a.doc.SetCursor(selections[len(selections)-1].Head)
}

// selectDocument selects the whole document, used outside of lists
func (a *App) selectDocument() {
	last := a.doc.LastLine()
	a.doc.SetSelections([]model.Selection{{
		Anchor: model.Position{},
		Head:   model.Position{Line: last, Ch: len(a.doc.Line(last))},
	}})
}

func (a *App) deleteToLineStart() {
	cur := a.doc.Cursor()
	a.doc.ReplaceRange("", model.Position{Line: cur.Line}, cur)
}

// toggleFold folds or unfolds the item under the cursor
func (a *App) toggleFold() {
	cur := a.doc.Cursor()
	outline, err := a.runner.Parser().Parse(a.doc, cur.Line)
	if err != nil {
		a.SetStatus("Not in a list")
		return
	}
	item := outline.ItemUnderLine(cur.Line)
	if item == nil || !item.HasChildren() {
		a.SetStatus("Nothing to fold")
		return
	}

	line := outline.FirstLineContentStart(item).Line
	if a.doc.IsFolded(line) {
		a.doc.Unfold(line)
		a.SetStatus("Unfolded")
	} else {
		a.doc.Fold(line)
		a.SetStatus("Folded")
	}
}

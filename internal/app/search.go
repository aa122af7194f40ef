package app

import (
	"fmt"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
)

// handleSearch moves the cursor to the next item matching query, wrapping
// around at the end. An empty query repeats the last search.
func (a *App) handleSearch(query string) {
	if query == "" {
		query = a.lastSearch
	}
	if query == "" {
		a.SetStatus("No previous search")
		return
	}
	a.lastSearch = query

	outlines := a.runner.Parser().ParseRange(a.doc, 0, a.doc.LastLine())
	matches, err := search.Query(outlines, query)
	if err != nil {
		a.SetStatus("Invalid query: " + err.Error())
		return
	}
	if len(matches) == 0 {
		a.SetStatus("No match for " + query)
		return
	}

	cursorLine := a.doc.Cursor().Line
	next := 0
	for i, m := range matches {
		if m.Line > cursorLine {
			next = i
			break
		}
	}
	m := matches[next]

	a.revealItem(outlines, m.Item)
	a.doc.SetCursor(model.Position{Line: m.Line, Ch: len(a.doc.Line(m.Line))})
	a.goalCh = a.doc.Cursor().Ch
	a.SetStatus(fmt.Sprintf("Match %d/%d", next+1, len(matches)))
}

// revealItem unfolds the folded ancestors of item
func (a *App) revealItem(outlines []*model.Outline, item *model.Item) {
	for _, outline := range outlines {
		if _, _, ok := outline.ContentLinesRangeOf(item); !ok {
			continue
		}
		for p := item.Parent; p != nil && p.Parent != nil; p = p.Parent {
			line := outline.FirstLineContentStart(p).Line
			if a.doc.IsFolded(line) {
				a.doc.Unfold(line)
			}
		}
		return
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/buffer"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/parser"
)

// Row is a document line shown on screen
type Row struct {
	Line   int
	Hidden int // lines folded away directly below this one
}

// DocumentView renders a document with the descendants of folded items hidden
type DocumentView struct {
	parser   *parser.Parser
	tabWidth int
	top      int
}

// NewDocumentView creates a view that uses p to find folded subtrees
func NewDocumentView(p *parser.Parser, tabWidth int) *DocumentView {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &DocumentView{parser: p, tabWidth: tabWidth}
}

// Rows returns the lines of doc that are not hidden under a fold
func (v *DocumentView) Rows(doc *buffer.Document) []Row {
	hidden := make(map[int]bool)
	counts := make(map[int]int)

	for _, outline := range v.parser.ParseRange(doc, 0, doc.LastLine()) {
		outline.Walk(func(item *model.Item) {
			if !item.FoldRoot || !item.HasChildren() {
				return
			}
			_, till, _ := outline.ContentLinesRangeOf(item)
			end := outline.ContentEndIncludingChildren(item).Line
			for l := till + 1; l <= end; l++ {
				hidden[l] = true
			}
			counts[till] = end - till
		})
	}

	rows := make([]Row, 0, doc.LineCount())
	for l := 0; l < doc.LineCount(); l++ {
		if hidden[l] {
			continue
		}
		rows = append(rows, Row{Line: l, Hidden: counts[l]})
	}
	return rows
}

// rowOf returns the index of the row showing line, or of the closest row above it
func rowOf(rows []Row, line int) int {
	idx := 0
	for i, row := range rows {
		if row.Line > line {
			break
		}
		idx = i
	}
	return idx
}

// Render draws the document into rows [y, y+height) and places the cursor
func (v *DocumentView) Render(screen *Screen, doc *buffer.Document, y, height int) {
	if height <= 0 {
		return
	}
	rows := v.Rows(doc)
	cursor := doc.Cursor()
	cursorRow := rowOf(rows, cursor.Line)

	if cursorRow < v.top {
		v.top = cursorRow
	}
	if cursorRow >= v.top+height {
		v.top = cursorRow - height + 1
	}
	v.top = max(0, min(v.top, len(rows)-1))

	width := screen.GetWidth()
	for i := 0; i < height; i++ {
		screenY := y + i
		idx := v.top + i
		if idx >= len(rows) {
			screen.FillLine(0, screenY, tcell.StyleDefault)
			continue
		}
		row := rows[idx]
		x := v.drawLine(screen, doc, row.Line, screenY, width)
		if row.Hidden > 0 {
			x = screen.DrawStringLimited(x, screenY, fmt.Sprintf(" [+%d]", row.Hidden), width-x, screen.FoldMarkerStyle())
		}
		screen.FillLine(x, screenY, tcell.StyleDefault)

		if idx == cursorRow && row.Line == cursor.Line {
			screen.ShowCursor(DisplayColumn(doc.Line(row.Line), cursor.Ch, v.tabWidth), screenY)
		}
	}
}

type segment struct {
	end   int
	style tcell.Style
}

// lineSegments splits a line into styled byte ranges
func lineSegments(screen *Screen, text string) []segment {
	l, ok := parser.SplitListLine(text)
	if !ok {
		style := screen.PlainStyle()
		if strings.TrimLeft(text, " \t") != text {
			style = screen.NoteStyle()
		}
		return []segment{{end: len(text), style: style}}
	}

	var segments []segment
	pos := 0
	add := func(part string, style tcell.Style) {
		pos += len(part)
		segments = append(segments, segment{end: pos, style: style})
	}
	add(l.Indent, screen.TextStyle())
	add(l.Bullet, screen.BulletStyle())
	add(l.Space, screen.TextStyle())
	if l.Checkbox != "" {
		add(l.Checkbox, screen.CheckboxStyle(strings.HasPrefix(l.Checkbox, "[x]") || strings.HasPrefix(l.Checkbox, "[X]")))
	}
	add(l.Content, screen.TextStyle())
	return segments
}

// selectedRange returns the selected byte range of line, if any
func selectedRange(doc *buffer.Document, line int) (from, to int, ok bool) {
	for _, sel := range doc.Selections() {
		if sel.IsCursor() {
			continue
		}
		start, end := sel.From(), sel.To()
		if line < start.Line || line > end.Line {
			continue
		}
		from, to = 0, len(doc.Line(line))
		if line == start.Line {
			from = start.Ch
		}
		if line == end.Line {
			to = end.Ch
		}
		return from, to, true
	}
	return 0, 0, false
}

func (v *DocumentView) drawLine(screen *Screen, doc *buffer.Document, line, y, width int) int {
	text := doc.Line(line)
	segments := lineSegments(screen, text)
	selFrom, selTo, hasSel := selectedRange(doc, line)

	x, seg := 0, 0
	for i, r := range text {
		for seg < len(segments)-1 && i >= segments[seg].end {
			seg++
		}
		style := segments[seg].style
		if hasSel && i >= selFrom && i < selTo {
			style = screen.WithSelection(style)
		}

		if r == '\t' {
			for end := min(nextColumn(x, r, v.tabWidth), width); x < end; x++ {
				screen.SetCell(x, y, ' ', style)
			}
			continue
		}
		w := RuneWidth(r)
		if x+w > width {
			break
		}
		if w > 0 {
			screen.SetCell(x, y, r, style)
			x += w
		}
	}
	return x
}

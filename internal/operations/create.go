package operations

import (
	"regexp"
	"slices"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

var checkboxPrefixRe = regexp.MustCompile(`^\[[^\[\]]\][ \t]`)

// CreateItem splits the item under the cursor into two items (Enter)
type CreateItem struct {
	result
	outline       *model.Outline
	ids           *model.IDAllocator
	defaultIndent string
	zoom          ZoomPort
}

// NewCreateItem creates the operation. zoom may be nil.
func NewCreateItem(outline *model.Outline, ids *model.IDAllocator, defaultIndent string, zoom ZoomPort) *CreateItem {
	if zoom == nil {
		zoom = NoZoom{}
	}
	return &CreateItem{outline: outline, ids: ids, defaultIndent: defaultIndent, zoom: zoom}
}

// Perform splits the content at the selection: the left part stays, the right
// part becomes a new sibling, or a new first child when the cursor is at the
// end of an unfolded item that has children.
func (op *CreateItem) Perform() {
	o := op.outline
	if !o.HasSingleSelection() {
		return
	}
	selection := o.Selection()
	if selection.Anchor.Line != selection.Head.Line {
		return
	}

	item := o.ItemUnderCursor()
	if item == nil {
		return
	}
	lines := o.LinesInfo(item)
	if len(lines) == 1 && isEmptyLineOrEmptyCheckbox(lines[0].Text) {
		return
	}

	cursor := o.Cursor()
	var lineUnderCursor *model.LineInfo
	for i := range lines {
		if lines[i].From.Line == cursor.Line {
			lineUnderCursor = &lines[i]
			break
		}
	}
	if lineUnderCursor == nil || cursor.Ch < lineUnderCursor.From.Ch {
		return
	}

	var oldLines, newLines []string
	for _, line := range lines {
		switch {
		case cursor.Line > line.From.Line:
			oldLines = append(oldLines, line.Text)
		case cursor.Line == line.From.Line:
			left := line.Text[:clampIndex(selection.FromCh-line.From.Ch, len(line.Text))]
			right := line.Text[clampIndex(selection.ToCh-line.From.Ch, len(line.Text)):]
			oldLines = append(oldLines, left)
			newLines = append(newLines, right)
		default:
			newLines = append(newLines, line.Text)
		}
	}

	fences := strings.Count(strings.Join(oldLines, "\n"), "```")
	if fences%2 != 0 {
		return
	}

	op.handled()

	listIsZoomingRoot := false
	if zoomRange, ok := op.zoom.ZoomRange(); ok {
		listIsZoomingRoot = o.FirstLineContentStart(item).Line >= zoomRange.From.Line &&
			o.LastLineContentEnd(item).Line <= zoomRange.From.Line
	}

	hasChildren := item.HasChildren()
	childIsFolded := item.FoldRoot
	endOfLine := cursor == o.LastLineContentEnd(item)
	onChildLevel := listIsZoomingRoot || (hasChildren && !childIsFolded && endOfLine)

	indent := item.Indent
	bullet := item.Bullet
	spaceAfterBullet := item.SpaceAfterBullet
	if onChildLevel {
		if hasChildren {
			first := item.Children[0]
			indent = first.Indent
			bullet = first.Bullet
			spaceAfterBullet = first.SpaceAfterBullet
		} else {
			indent = item.Indent + op.defaultIndent
		}
	}

	prefix := ""
	if checkboxPrefixRe.MatchString(oldLines[0]) {
		prefix = "[ ] "
	}

	checkbox := ""
	if item.Checkbox != "" {
		checkbox = prefix
	}
	newItem := model.NewItem(op.ids, indent, bullet, checkbox, spaceAfterBullet, prefix+newLines[0], false)
	if len(newLines) > 1 {
		newItem.SetNotesIndent(item.NotesIndent())
		for _, line := range newLines[1:] {
			newItem.AddLine(line)
		}
	}

	if onChildLevel {
		item.AddBeforeAll(newItem)
	} else {
		if !childIsFolded || !endOfLine {
			for _, child := range slices.Clone(item.Children) {
				item.RemoveChild(child)
				newItem.AddAfterAll(child)
			}
		}
		item.Parent.AddAfter(item, newItem)
	}

	item.ReplaceLines(oldLines)

	start := o.FirstLineContentStart(newItem)
	o.ReplaceCursor(model.Position{Line: start.Line, Ch: start.Ch + len(prefix)})

	Renumber(o)
}

func clampIndex(i, n int) int {
	return max(0, min(i, n))
}

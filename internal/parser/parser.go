// Package parser builds outline trees from windows of host text
package parser

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"slices"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

const (
	bulletSignRe = `(?:[-*+]|\d+\.)`
	checkboxRe   = `\[[^\[\]]\][ \t]`
)

var (
	listItemWithoutSpacesRe = regexp.MustCompile(`^` + bulletSignRe + `( |\t)`)
	listItemRe              = regexp.MustCompile(`^[ \t]*` + bulletSignRe + `( |\t)`)
	stringWithSpacesRe      = regexp.MustCompile(`^[ \t]+`)
	parseListItemRe         = regexp.MustCompile(`^([ \t]*)(` + bulletSignRe + `)( |\t)((?:` + checkboxRe + `)?)(.*)$`)
	checkboxPrefixRe        = regexp.MustCompile(`^` + checkboxRe)
)

// Reader is the read side of a host document
type Reader interface {
	Line(n int) string
	LastLine() int
	Selections() []model.Selection
	FoldedLines() []int
}

// ParseError explains why a window of text is not an outline
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse list at line %d: %s", e.Line, e.Reason)
}

// Options configures the parser
type Options struct {
	// CheckboxInPrefix makes "[ ] " part of the prefix that precedes item content
	CheckboxInPrefix bool
	// Logger receives parse diagnostics, nil discards them
	Logger *log.Logger
}

// Parser turns host lines into outlines
type Parser struct {
	ids  *model.IDAllocator
	opts Options
	log  *log.Logger
}

// New creates a parser that numbers items with ids
func New(ids *model.IDAllocator, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{ids: ids, opts: opts, log: logger}
}

// IDs returns the allocator used for new items
func (p *Parser) IDs() *model.IDAllocator {
	return p.ids
}

// Parse parses the outline that contains anchorLine
func (p *Parser) Parse(r Reader, anchorLine int) (*model.Outline, error) {
	return p.ParseWithLimits(r, anchorLine, 0, r.LastLine())
}

// ParseRange parses every outline that starts between fromLine and toLine
func (p *Parser) ParseRange(r Reader, fromLine, toLine int) []*model.Outline {
	var outlines []*model.Outline
	for i := fromLine; i <= toLine; i++ {
		if i != fromLine && !IsListItem(r.Line(i)) {
			continue
		}
		outline, err := p.ParseWithLimits(r, i, fromLine, toLine)
		if err != nil {
			continue
		}
		outlines = append(outlines, outline)
		_, end := outline.Range()
		i = end.Line
	}
	return outlines
}

// ParseWithLimits parses the outline around anchorLine, not looking past limitFrom/limitTo
// when a viewport only materializes part of the document.
func (p *Parser) ParseWithLimits(r Reader, anchorLine, limitFrom, limitTo int) (*model.Outline, error) {
	fail := func(line int, format string, args ...any) (*model.Outline, error) {
		err := &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
		p.log.Printf("parse: %v", err)
		return nil, err
	}

	lookingPos, ok := findListLine(r, anchorLine)
	if !ok {
		return fail(anchorLine, "no list item above line")
	}

	startLine := -1
	for l := lookingPos; l >= 0; l-- {
		line := r.Line(l)
		if !IsListItem(line) && !isLineWithIndent(line) {
			break
		}
		if isListItemWithoutSpaces(line) {
			startLine = l
			if l <= limitFrom {
				break
			}
		}
	}
	if startLine < 0 {
		return fail(anchorLine, "no outdented list item found")
	}

	endLine := lookingPos
	for l := lookingPos; l <= r.LastLine(); l++ {
		line := r.Line(l)
		if !IsListItem(line) && !isLineWithIndent(line) {
			break
		}
		endLine = l
		if l >= limitTo {
			endLine = limitTo
			break
		}
	}

	if startLine > anchorLine || endLine < anchorLine {
		return fail(anchorLine, "line is outside of the list")
	}

	endLine = excludeTrailingBlankLine(r, startLine, endLine)

	outline := model.NewOutline(
		model.Position{Line: startLine, Ch: 0},
		model.Position{Line: endLine, Ch: len(r.Line(endLine))},
		r.Selections(),
	)

	parent := outline.Root()
	var current *model.Item
	currentIndent := ""
	folded := r.FoldedLines()

	for l := startLine; l <= endLine; l++ {
		line := r.Line(l)

		if m := parseListItemRe.FindStringSubmatch(line); m != nil {
			indent, bullet, spaceAfterBullet, checkbox, rest := m[1], m[2], m[3], m[4], m[5]
			content := checkbox + rest
			if !p.opts.CheckboxInPrefix {
				checkbox = ""
			}

			compareLength := min(len(currentIndent), len(indent))
			if indent[:compareLength] != currentIndent[:compareLength] {
				return fail(l, "expected indent %q, got %q",
					visibleIndent(currentIndent[:compareLength]), visibleIndent(indent[:compareLength]))
			}

			if len(indent) > len(currentIndent) {
				parent = current
				currentIndent = indent
			} else if len(indent) < len(currentIndent) {
				for len(parent.Indent) >= len(indent) && parent.Parent != nil {
					parent = parent.Parent
				}
				currentIndent = indent
			}

			current = model.NewItem(p.ids, indent, bullet, checkbox, spaceAfterBullet, content, slices.Contains(folded, l))
			parent.AddAfterAll(current)
			continue
		}

		if isLineWithIndent(line) {
			if current == nil {
				return fail(l, "expected list item, got empty line")
			}

			indentToCheck := current.NotesIndent()
			if indentToCheck == "" {
				indentToCheck = currentIndent
			}
			if !strings.HasPrefix(line, indentToCheck) {
				got := stringWithSpacesRe.FindString(line)
				return fail(l, "expected indent %q, got %q", visibleIndent(indentToCheck), visibleIndent(got))
			}

			if current.NotesIndent() == "" {
				notesIndent := stringWithSpacesRe.FindString(line)
				if len(notesIndent) <= len(currentIndent) {
					return fail(l, "expected some indent, got no indent")
				}
				current.SetNotesIndent(notesIndent)
			}

			current.AddLine(line[len(current.NotesIndent()):])
			continue
		}

		return fail(l, "expected list item or note, got %q", line)
	}

	return outline, nil
}

// findListLine finds the list item line that owns line, looking upwards over notes
func findListLine(r Reader, line int) (int, bool) {
	text := r.Line(line)
	if IsListItem(text) {
		return line, true
	}
	if !isLineWithIndent(text) {
		return 0, false
	}
	for l := line - 1; l >= 0; l-- {
		text := r.Line(l)
		if IsListItem(text) {
			return l, true
		}
		if !isLineWithIndent(text) {
			break
		}
	}
	return 0, false
}

// IsListItem reports whether line starts with an (indented) bullet
func IsListItem(line string) bool {
	return listItemRe.MatchString(line)
}

// ListLine is a list item line split into its parts
type ListLine struct {
	Indent   string
	Bullet   string
	Space    string
	Checkbox string
	Content  string
}

// SplitListLine splits a list item line. ok is false for other lines.
func SplitListLine(line string) (l ListLine, ok bool) {
	m := parseListItemRe.FindStringSubmatch(line)
	if m == nil {
		return ListLine{}, false
	}
	return ListLine{Indent: m[1], Bullet: m[2], Space: m[3], Checkbox: m[4], Content: m[5]}, true
}

// HasCheckboxPrefix reports whether content starts with a checkbox marker
func HasCheckboxPrefix(content string) bool {
	return checkboxPrefixRe.MatchString(content)
}

// CheckboxPrefix returns the checkbox marker content starts with, such as
// "[x] ", or "" when there is none
func CheckboxPrefix(content string) string {
	return checkboxPrefixRe.FindString(content)
}

func isListItemWithoutSpaces(line string) bool {
	return listItemWithoutSpacesRe.MatchString(line)
}

func isLineWithIndent(line string) bool {
	return stringWithSpacesRe.MatchString(line)
}

// visibleIndent spells whitespace as S and T for diagnostics
func visibleIndent(s string) string {
	return strings.NewReplacer(" ", "S", "\t", "T").Replace(s)
}

// Package export renders parsed outlines in other shapes: markdown with one
// indent unit per level, or a JSON tree.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/parser"
)

// Markdown renders the items of outline with indent repeated once per level.
// Notes stay under their item, aligned with its content.
func Markdown(outline *model.Outline, indent string) string {
	var sb strings.Builder
	for _, item := range outline.Children() {
		writeItemAsMarkdown(&sb, item, 0, indent)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// writeItemAsMarkdown recursively writes an item and its children as markdown bullets.
// depth determines the indentation level.
func writeItemAsMarkdown(sb *strings.Builder, item *model.Item, depth int, indent string) {
	if item == nil {
		return
	}

	prefix := strings.Repeat(indent, depth)
	lines := item.Lines()
	sb.WriteString(prefix)
	sb.WriteString(item.Bullet)
	sb.WriteString(" ")
	sb.WriteString(lines[0])
	sb.WriteString("\n")

	notesPrefix := prefix + strings.Repeat(" ", len(item.Bullet)+1)
	for _, note := range lines[1:] {
		if note != "" {
			sb.WriteString(notesPrefix)
		}
		sb.WriteString(note)
		sb.WriteString("\n")
	}

	for _, child := range item.Children {
		writeItemAsMarkdown(sb, child, depth+1, indent)
	}
}

// lineSpan returns the first and last host line the outline was parsed from
func lineSpan(outline *model.Outline) (from, to int) {
	start, _ := outline.Range()
	return start.Line, start.Line + strings.Count(outline.Print(), "\n")
}

// Document rewrites every outline of r with Markdown, leaving other lines alone
func Document(p *parser.Parser, r parser.Reader, indent string) string {
	var out []string
	next := 0
	for _, outline := range p.ParseRange(r, 0, r.LastLine()) {
		from, to := lineSpan(outline)
		for ; next < from; next++ {
			out = append(out, r.Line(next))
		}
		out = append(out, Markdown(outline, indent))
		next = to + 1
	}
	for ; next <= r.LastLine(); next++ {
		out = append(out, r.Line(next))
	}
	return strings.Join(out, "\n")
}

// Node is the JSON shape of an item
type Node struct {
	ID       int64    `json:"id"`
	Bullet   string   `json:"bullet"`
	Checkbox string   `json:"checkbox,omitempty"`
	Text     string   `json:"text"`
	Notes    []string `json:"notes,omitempty"`
	Folded   bool     `json:"folded,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// List is one outline of a document
type List struct {
	FromLine int     `json:"from_line"`
	ToLine   int     `json:"to_line"`
	Items    []*Node `json:"items"`
}

func toNode(item *model.Item) *Node {
	lines := item.Lines()
	node := &Node{
		ID:       item.ID,
		Bullet:   item.Bullet,
		Checkbox: strings.TrimSpace(item.Checkbox),
		Text:     strings.TrimPrefix(lines[0], item.Checkbox),
		Notes:    lines[1:],
		Folded:   item.FoldRoot,
	}
	if len(node.Notes) == 0 {
		node.Notes = nil
	}
	for _, child := range item.Children {
		node.Children = append(node.Children, toNode(child))
	}
	return node
}

// Lists converts every outline of r to its JSON shape. Line numbers start at 1.
func Lists(p *parser.Parser, r parser.Reader) []List {
	lists := []List{}
	for _, outline := range p.ParseRange(r, 0, r.LastLine()) {
		from, to := lineSpan(outline)
		list := List{FromLine: from + 1, ToLine: to + 1}
		for _, item := range outline.Children() {
			list.Items = append(list.Items, toNode(item))
		}
		lists = append(lists, list)
	}
	return lists
}

// JSON renders the outlines of r as an indented JSON array
func JSON(p *parser.Parser, r parser.Reader) ([]byte, error) {
	data, err := json.MarshalIndent(Lists(p, r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode outline: %w", err)
	}
	return data, nil
}

package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/parser"
)

// FilterExpr represents a filter expression that can match items
type FilterExpr interface {
	Matches(item *model.Item) bool
	String() string // For debug output
}

// Quantifier represents how many related items must match (children, ancestors, siblings)
type Quantifier int

const (
	QuantifierSome Quantifier = iota // At least one must match (default)
	QuantifierAll                    // All must match
	QuantifierNone                   // None must match
)

func (q Quantifier) String() string {
	switch q {
	case QuantifierSome:
		return "some"
	case QuantifierAll:
		return "all"
	case QuantifierNone:
		return "none"
	default:
		return "unknown"
	}
}

// TextExpr matches items whose content contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(item *model.Item) bool {
	return strings.Contains(strings.ToLower(content(item)), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches items whose first line fuzzy-matches the search term
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term)}
}

func (e *FuzzyExpr) Matches(item *model.Item) bool {
	return fuzzy.MatchFold(e.term, firstLine(item))
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches items whose content matches a regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(item *model.Item) bool {
	return e.re.MatchString(content(item))
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches all items (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(item *model.Item) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(item *model.Item) bool {
	return e.left.Matches(item) && e.right.Matches(item)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(item *model.Item) bool {
	return e.left.Matches(item) || e.right.Matches(item)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(item *model.Item) bool {
	return !e.expr.Matches(item)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// Measure is a number computed from an item
type Measure int

const (
	MeasureDepth    Measure = iota // top level items have depth 0
	MeasureChildren                // number of direct children
)

func (m Measure) String() string {
	if m == MeasureDepth {
		return "depth"
	}
	return "children"
}

func (m Measure) of(item *model.Item) int {
	if m == MeasureDepth {
		return depth(item)
	}
	return len(item.Children)
}

// CountFilter compares a measure of the item with a number, as in d:>1
type CountFilter struct {
	measure Measure
	op      ComparisonOp
	value   int
}

func NewCountFilter(m Measure, op ComparisonOp, value string) (*CountFilter, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", m, value)
	}
	return &CountFilter{measure: m, op: op, value: n}, nil
}

func (e *CountFilter) Matches(item *model.Item) bool {
	return compare(e.measure.of(item), e.op, e.value)
}

func (e *CountFilter) String() string {
	return fmt.Sprintf("%s(%s%d)", e.measure, e.op, e.value)
}

// StateFilter matches items by list marker state: todo, done, checkbox,
// folded, numbered or notes
type StateFilter struct {
	state string
}

var states = map[string]func(*model.Item) bool{
	"todo": func(item *model.Item) bool {
		mark, ok := checkbox(item)
		return ok && mark == ' '
	},
	"done": func(item *model.Item) bool {
		mark, ok := checkbox(item)
		return ok && mark != ' '
	},
	"checkbox": func(item *model.Item) bool {
		_, ok := checkbox(item)
		return ok
	},
	"folded": func(item *model.Item) bool {
		return item.FoldRoot && item.HasChildren()
	},
	"numbered": func(item *model.Item) bool {
		return strings.HasSuffix(item.Bullet, ".")
	},
	"notes": func(item *model.Item) bool {
		return item.LineCount() > 1
	},
}

func NewStateFilter(state string) (*StateFilter, error) {
	if _, ok := states[state]; !ok {
		return nil, fmt.Errorf("unknown state: %s", state)
	}
	return &StateFilter{state: state}, nil
}

func (e *StateFilter) Matches(item *model.Item) bool {
	return states[e.state](item)
}

func (e *StateFilter) String() string {
	return fmt.Sprintf("is(%s)", e.state)
}

// ParentFilter matches items whose parent matches the inner filter
type ParentFilter struct {
	inner FilterExpr
}

func NewParentFilter(inner FilterExpr) *ParentFilter {
	return &ParentFilter{inner: inner}
}

func (e *ParentFilter) Matches(item *model.Item) bool {
	p := parent(item)
	return p != nil && e.inner.Matches(p)
}

func (e *ParentFilter) String() string {
	return fmt.Sprintf("parent(%s)", e.inner.String())
}

// Relation selects the items related to an item
type Relation int

const (
	Ancestors   Relation = iota // parent*, ancestor
	Children                    // child
	Descendants                 // child*
	Siblings                    // sibling, excluding the item itself
)

var relationNames = [...]string{"ancestor", "child", "descendant", "sibling"}

func (r Relation) String() string {
	return relationNames[r]
}

func (r Relation) of(item *model.Item) []*model.Item {
	var related []*model.Item
	switch r {
	case Ancestors:
		for p := parent(item); p != nil; p = parent(p) {
			related = append(related, p)
		}
	case Children:
		related = item.Children
	case Descendants:
		var walk func(*model.Item)
		walk = func(i *model.Item) {
			for _, child := range i.Children {
				related = append(related, child)
				walk(child)
			}
		}
		walk(item)
	case Siblings:
		if item.Parent != nil {
			for _, sibling := range item.Parent.Children {
				if sibling != item {
					related = append(related, sibling)
				}
			}
		}
	}
	return related
}

// RelationFilter matches items by how many of their related items match inner
type RelationFilter struct {
	relation   Relation
	inner      FilterExpr
	quantifier Quantifier
}

func NewRelationFilter(r Relation, inner FilterExpr, q Quantifier) *RelationFilter {
	return &RelationFilter{relation: r, inner: inner, quantifier: q}
}

func (e *RelationFilter) Matches(item *model.Item) bool {
	related := e.relation.of(item)
	// A top level item has no ancestors, so all of them match
	if e.relation == Ancestors && e.quantifier == QuantifierAll && len(related) == 0 {
		return true
	}
	return quantify(related, e.inner, e.quantifier)
}

func (e *RelationFilter) String() string {
	if e.quantifier == QuantifierSome {
		return fmt.Sprintf("%s(%s)", e.relation, e.inner.String())
	}
	return fmt.Sprintf("%s(%s,%s)", e.relation, e.quantifier, e.inner.String())
}

// quantify applies inner to items. QuantifierAll is false for an empty set.
func quantify(items []*model.Item, inner FilterExpr, q Quantifier) bool {
	switch q {
	case QuantifierSome:
		for _, item := range items {
			if inner.Matches(item) {
				return true
			}
		}
		return false
	case QuantifierAll:
		if len(items) == 0 {
			return false
		}
		for _, item := range items {
			if !inner.Matches(item) {
				return false
			}
		}
		return true
	case QuantifierNone:
		for _, item := range items {
			if inner.Matches(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// parent returns the parent item, nil for top level items
func parent(item *model.Item) *model.Item {
	if item.Parent == nil || item.Parent.Parent == nil {
		return nil
	}
	return item.Parent
}

func depth(item *model.Item) int {
	d := 0
	for p := parent(item); p != nil; p = parent(p) {
		d++
	}
	return d
}

// content is the item text without its checkbox marker
func content(item *model.Item) string {
	lines := item.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(append([]string{firstLine(item)}, lines[1:]...), "\n")
}

// firstLine is the first line of the item without its checkbox marker
func firstLine(item *model.Item) string {
	lines := item.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimPrefix(lines[0], checkboxMarker(item))
}

func checkboxMarker(item *model.Item) string {
	if item.Checkbox != "" {
		return item.Checkbox
	}
	lines := item.Lines()
	if len(lines) == 0 {
		return ""
	}
	return parser.CheckboxPrefix(lines[0])
}

// checkbox returns the mark inside "[ ]" when the item starts with a checkbox
func checkbox(item *model.Item) (rune, bool) {
	r := []rune(checkboxMarker(item))
	if len(r) < 3 {
		return 0, false
	}
	return r[1], true
}

// compare performs a comparison between two integers based on the operator
func compare(a int, op ComparisonOp, b int) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}

// Match is an item that matched a query and the document line it starts on
type Match struct {
	Item *model.Item
	Line int
}

// FindMatches returns the matching items of outlines in document order
func FindMatches(outlines []*model.Outline, expr FilterExpr) []Match {
	var matches []Match
	for _, outline := range outlines {
		outline.Walk(func(item *model.Item) {
			if expr.Matches(item) {
				matches = append(matches, Match{
					Item: item,
					Line: outline.FirstLineContentStart(item).Line,
				})
			}
		})
	}
	return matches
}

// Query parses query and returns the matches in outlines
func Query(outlines []*model.Outline, query string) ([]Match, error) {
	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return FindMatches(outlines, expr), nil
}

package search

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// isRelation reports whether key filters on related items, which take a
// + (all) or - (none) quantifier
func isRelation(key string) bool {
	switch key {
	case "parent", "p", "ancestor", "a", "child", "sibling", "s":
		return true
	}
	return false
}

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) && strings.IndexByte(" \t\n", t.input[t.pos]) >= 0 {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch ch := t.input[t.pos]; ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '"':
		return t.quoted()
	case '~':
		return t.fuzzy()
	case '/':
		return t.regex()
	case '+', '-':
		if key, end, ok := t.scanFilter(t.pos + 1); ok && (ch == '-' || isRelation(key)) {
			return t.take(TokenFilter, end)
		}
		t.pos++
		if ch == '+' {
			return Token{Type: TokenAnd, Value: "+"}
		}
		return Token{Type: TokenNot, Value: "-"}
	}

	if _, end, ok := t.scanFilter(t.pos); ok {
		return t.take(TokenFilter, end)
	}
	return t.word()
}

// AllTokens returns all tokens in the input, ending with TokenEOF
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (t *Tokenizer) take(typ TokenType, end int) Token {
	tok := Token{Type: typ, Value: t.input[t.pos:end]}
	t.pos = end
	return tok
}

// scanFilter recognizes key[*]:criteria starting at from. It returns the key
// and the end of the criteria.
func (t *Tokenizer) scanFilter(from int) (key string, end int, ok bool) {
	i := from
	if i >= len(t.input) || !isAlpha(t.input[i]) {
		return "", 0, false
	}
	for i < len(t.input) && isAlphaNumeric(t.input[i]) {
		i++
	}
	key = t.input[from:i]
	if i < len(t.input) && t.input[i] == '*' {
		i++
	}
	if i >= len(t.input) || t.input[i] != ':' {
		return "", 0, false
	}
	i++
	for i < len(t.input) && strings.IndexByte(" \t|)", t.input[i]) < 0 {
		i++
	}
	return key, i, true
}

func (t *Tokenizer) word() Token {
	end := t.pos
	for end < len(t.input) && strings.IndexByte(" \t|+()", t.input[end]) < 0 {
		end++
	}
	return t.take(TokenText, end)
}

func (t *Tokenizer) quoted() Token {
	start := t.pos + 1
	end := strings.IndexByte(t.input[start:], '"')
	if end < 0 {
		t.pos = len(t.input)
		return Token{Type: TokenText, Value: t.input[start:]}
	}
	t.pos = start + end + 1
	return Token{Type: TokenText, Value: t.input[start : start+end]}
}

func (t *Tokenizer) fuzzy() Token {
	end := t.pos + 1
	for end < len(t.input) && strings.IndexByte(" \t|+()-", t.input[end]) < 0 {
		end++
	}
	if end == t.pos+1 {
		t.pos = end
		return Token{Type: TokenText, Value: "~"}
	}
	return t.take(TokenFilter, end)
}

// regex reads /pattern/, where \/ does not close the pattern. An unterminated
// pattern runs to the end of the input.
func (t *Tokenizer) regex() Token {
	start := t.pos + 1
	for i := start; i < len(t.input); i++ {
		switch t.input[i] {
		case '\\':
			i++
		case '/':
			t.pos = i + 1
			return Token{Type: TokenRegex, Value: t.input[start:i]}
		}
	}
	if start == len(t.input) {
		return t.word()
	}
	t.pos = len(t.input)
	return Token{Type: TokenRegex, Value: t.input[start:]}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

// Parser converts tokens into a FilterExpr tree.
// Precedence from low to high: or, and (explicit + or adjacent terms), not.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery parses a complete search query. An empty query matches every item.
func ParseQuery(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()
	if len(tokens) == 1 {
		return NewAlwaysMatchExpr(), nil
	}

	p := NewParser(tokens)
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
	return expr, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if p.current().Type == TokenAnd {
			p.advance()
		}
		switch p.current().Type {
		case TokenEOF, TokenRParen, TokenOr:
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.current().Type != TokenNot {
		return p.parseAtom()
	}
	p.advance()
	expr, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return NewNotExpr(expr), nil
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", closing.Value)
		}
		return expr, nil
	case TokenText:
		return NewTextExpr(tok.Value), nil
	case TokenFilter:
		return parseFilter(tok.Value)
	case TokenRegex:
		return NewRegexExpr(tok.Value)
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	default:
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
}

// parseFilter builds the expression for a filter token such as d:>1,
// -is:todo, +child:done or ~term
func parseFilter(value string) (FilterExpr, error) {
	quantifier := QuantifierSome
	switch value[0] {
	case '-':
		quantifier = QuantifierNone
		value = value[1:]
	case '+':
		quantifier = QuantifierAll
		value = value[1:]
	}

	if term, ok := strings.CutPrefix(value, "~"); ok {
		return negate(NewFuzzyExpr(term), quantifier), nil
	}

	key, criteria, _ := strings.Cut(value, ":")
	key, closure := strings.CutSuffix(key, "*")

	var (
		expr FilterExpr
		err  error
	)
	switch key {
	case "d":
		expr, err = countFilter(MeasureDepth, criteria)
	case "children":
		expr, err = countFilter(MeasureChildren, criteria)
	case "is":
		expr, err = NewStateFilter(criteria)
	case "parent", "p", "ancestor", "a", "child", "sibling", "s":
		inner, innerErr := ParseQuery(criteria)
		if innerErr != nil {
			return nil, innerErr
		}
		expr = relation(key, closure, inner, quantifier)
		if isQuantified(key, closure) {
			return expr, nil
		}
	default:
		expr = NewTextExpr(value)
	}
	if err != nil {
		return nil, err
	}
	return negate(expr, quantifier), nil
}

// isQuantified reports whether the filter applies its quantifier to related items.
// A plain parent filter has a single related item and is negated instead.
func isQuantified(key string, closure bool) bool {
	return closure || key != "parent" && key != "p"
}

func relation(key string, closure bool, inner FilterExpr, q Quantifier) FilterExpr {
	switch key {
	case "parent", "p":
		if closure {
			return NewRelationFilter(Ancestors, inner, q)
		}
		return NewParentFilter(inner)
	case "ancestor", "a":
		return NewRelationFilter(Ancestors, inner, q)
	case "child":
		if closure {
			return NewRelationFilter(Descendants, inner, q)
		}
		return NewRelationFilter(Children, inner, q)
	default:
		return NewRelationFilter(Siblings, inner, q)
	}
}

// negate wraps expr in a NotExpr for the - prefix of filters without a quantifier
func negate(expr FilterExpr, q Quantifier) FilterExpr {
	if q == QuantifierNone {
		return NewNotExpr(expr)
	}
	return expr
}

func countFilter(m Measure, criteria string) (FilterExpr, error) {
	op, val, err := parseComparison(criteria)
	if err != nil {
		return nil, err
	}
	return NewCountFilter(m, op, val)
}

// parseComparison splits criteria into operator and value: "5" -> (=, 5), ">2" -> (>, 2)
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}
	for _, op := range []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual} {
		if val, ok := strings.CutPrefix(criteria, string(op)); ok {
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}
	return OpEqual, criteria, nil
}

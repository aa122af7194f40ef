package search

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// ExpressionString returns a pretty-printed representation of the filter expression
func ExpressionString(expr FilterExpr) string {
	return prettyPrintExpr(expr, 0)
}

func prettyPrintExpr(expr FilterExpr, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch e := expr.(type) {
	case *AndExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(and\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *OrExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(or\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *NotExpr:
		inner := prettyPrintExpr(e.expr, indent+1)
		return fmt.Sprintf("%s(not\n%s\n%s)", indentStr, inner, indentStr)

	default:
		return indentStr + expr.String()
	}
}

// Explain returns a short reason why item matched or did not match expr
func Explain(item *model.Item, expr FilterExpr) string {
	switch e := expr.(type) {
	case *TextExpr:
		if e.Matches(item) {
			return fmt.Sprintf("text contains %q", e.term)
		}
		return fmt.Sprintf("text does not contain %q", e.term)

	case *CountFilter:
		verb := "matches"
		if !e.Matches(item) {
			verb = "does not match"
		}
		n := e.measure.of(item)
		if e.measure == MeasureDepth {
			return fmt.Sprintf("depth %d %s %s%d", n, verb, e.op, e.value)
		}
		return fmt.Sprintf("has %d children, %s %s%d", n, verb, e.op, e.value)

	case *RelationFilter:
		related := e.relation.of(item)
		n := 0
		for _, r := range related {
			if e.inner.Matches(r) {
				n++
			}
		}
		return fmt.Sprintf("%d of %d %s items match %s", n, len(related), e.relation, e.inner.String())

	case *StateFilter:
		if e.Matches(item) {
			return "is " + e.state
		}
		return "is not " + e.state

	case *ParentFilter:
		p := parent(item)
		if p == nil {
			return "no parent"
		}
		return "parent: " + Explain(p, e.inner)

	case *AndExpr:
		if !e.left.Matches(item) {
			return Explain(item, e.left)
		}
		if !e.right.Matches(item) {
			return Explain(item, e.right)
		}
		return Explain(item, e.left) + " and " + Explain(item, e.right)

	case *OrExpr:
		if e.left.Matches(item) {
			return Explain(item, e.left)
		}
		return Explain(item, e.right)

	case *NotExpr:
		return "not (" + Explain(item, e.expr) + ")"

	default:
		if expr.Matches(item) {
			return expr.String() + " matches"
		}
		return expr.String() + " does not match"
	}
}

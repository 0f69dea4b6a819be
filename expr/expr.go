// Package expr evaluates predicates over table rows and applies them as
// filters.  Comparisons involving Missing evaluate false rather than
// erroring: missingness propagates through the dataflow as a value, and
// a filter simply never keeps a row on the strength of a missing value.
package expr

import (
	"fmt"

	"github.com/wrangledata/wrangle"
)

// Evaluator computes a cell from a row view.  Predicates yield Bool
// cells; a Missing result is treated as false by the filter.
type Evaluator interface {
	Eval(row wrangle.Row) (wrangle.Cell, error)
}

// Func adapts a plain function to an Evaluator.
type Func func(row wrangle.Row) (wrangle.Cell, error)

func (f Func) Eval(row wrangle.Row) (wrangle.Cell, error) { return f(row) }

// Field evaluates to the row's cell in the named column.
type Field string

func (f Field) Eval(row wrangle.Row) (wrangle.Cell, error) {
	return row.Cell(string(f))
}

// Literal evaluates to a fixed cell.
type Literal wrangle.Cell

func (l Literal) Eval(wrangle.Row) (wrangle.Cell, error) {
	return wrangle.Cell(l), nil
}

type comparison struct {
	lhs Evaluator
	rhs Evaluator
	op  string
}

var compareOps = map[string]func(int) bool{
	"==": func(c int) bool { return c == 0 },
	"!=": func(c int) bool { return c != 0 },
	"<":  func(c int) bool { return c < 0 },
	"<=": func(c int) bool { return c <= 0 },
	">":  func(c int) bool { return c > 0 },
	">=": func(c int) bool { return c >= 0 },
}

// Compare returns a predicate applying op, one of == != < <= > >=, to
// the named column and a literal.  If either side is Missing, or the
// two sides are of incomparable classes (say a string against a
// number), the predicate evaluates false.
func Compare(field, op string, literal wrangle.Cell) (Evaluator, error) {
	return CompareEval(Field(field), op, Literal(literal))
}

// CompareEval is Compare over arbitrary operand evaluators.
func CompareEval(lhs Evaluator, op string, rhs Evaluator) (Evaluator, error) {
	if _, ok := compareOps[op]; !ok {
		return nil, fmt.Errorf("unknown comparator: %s", op)
	}
	return &comparison{lhs: lhs, rhs: rhs, op: op}, nil
}

func (c *comparison) Eval(row wrangle.Row) (wrangle.Cell, error) {
	lhs, err := c.lhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	rhs, err := c.rhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	if lhs.IsMissing() || rhs.IsMissing() {
		return wrangle.Bool(false), nil
	}
	if sameClass(lhs, rhs) {
		return wrangle.Bool(compareOps[c.op](wrangle.CompareCells(lhs, rhs))), nil
	}
	return wrangle.Bool(false), nil
}

func sameClass(a, b wrangle.Cell) bool {
	return class(a) == class(b)
}

func class(c wrangle.Cell) int {
	switch c.Kind() {
	case wrangle.KindInt, wrangle.KindFloat:
		return 0
	case wrangle.KindString:
		return 1
	default:
		return 2
	}
}

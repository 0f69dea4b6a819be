package expr

import "github.com/wrangledata/wrangle"

type andExpr struct {
	lhs, rhs Evaluator
}

type orExpr struct {
	lhs, rhs Evaluator
}

type notExpr struct {
	expr Evaluator
}

// And returns a predicate that is true when both operands are true.
// It short-circuits: the right side is not evaluated when the left is
// false or Missing.
func And(lhs, rhs Evaluator) Evaluator { return &andExpr{lhs, rhs} }

// Or returns a predicate that is true when either operand is true.
// It short-circuits: the right side is not evaluated when the left is
// true.
func Or(lhs, rhs Evaluator) Evaluator { return &orExpr{lhs, rhs} }

// Not returns the negation of a predicate.  A Missing operand stays
// Missing, so filtering on it still drops the row.
func Not(e Evaluator) Evaluator { return &notExpr{e} }

// truth reduces a predicate result to a boolean, with Missing and
// non-bool cells counting as false.
func truth(c wrangle.Cell) bool {
	b, ok := c.Bool()
	return ok && b
}

func (a *andExpr) Eval(row wrangle.Row) (wrangle.Cell, error) {
	lhs, err := a.lhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	if !truth(lhs) {
		return wrangle.Bool(false), nil
	}
	rhs, err := a.rhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	return wrangle.Bool(truth(rhs)), nil
}

func (o *orExpr) Eval(row wrangle.Row) (wrangle.Cell, error) {
	lhs, err := o.lhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	if truth(lhs) {
		return wrangle.Bool(true), nil
	}
	rhs, err := o.rhs.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	return wrangle.Bool(truth(rhs)), nil
}

func (n *notExpr) Eval(row wrangle.Row) (wrangle.Cell, error) {
	val, err := n.expr.Eval(row)
	if err != nil {
		return wrangle.Missing, err
	}
	if val.IsMissing() {
		return wrangle.Missing, nil
	}
	return wrangle.Bool(!truth(val)), nil
}

package expr

import "github.com/wrangledata/wrangle"

// Apply filters a table down to the rows for which the predicate
// evaluates true, preserving their relative order.  The derived index
// is the subsequence of the original index at the kept positions.
func Apply(t *wrangle.Table, pred Evaluator) (*wrangle.Table, error) {
	rows, _ := t.Shape()
	var keep []int
	for pos := 0; pos < rows; pos++ {
		row, err := t.RowView(pos)
		if err != nil {
			return nil, err
		}
		val, err := pred.Eval(row)
		if err != nil {
			return nil, err
		}
		if truth(val) {
			keep = append(keep, pos)
		}
	}
	return t.Take(keep)
}

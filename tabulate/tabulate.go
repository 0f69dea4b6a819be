// Package tabulate counts things: frequency tables over one column and
// cross-tabulations of one column against another, with optional
// marginal totals and conversion of counts to proportions.
package tabulate

import (
	"fmt"

	"github.com/wrangledata/wrangle"
)

// MarginLabel names the marginal total row and column added by
// CrossTab.
const MarginLabel = "All"

// Frequency counts the distinct values of a column.  The result has a
// "value" column of the observed cells (including one Missing bucket
// when missing values occur) and an int "count" column, with rows in
// order of first appearance.  That order is stable: tabulating the same
// column always yields the same table.
func Frequency(col wrangle.Column) (*wrangle.Table, error) {
	counts := make(map[string]int64)
	var order []wrangle.Cell
	for i := 0; i < col.Len(); i++ {
		cell, err := col.At(i)
		if err != nil {
			return nil, err
		}
		key := wrangle.KeyOf(cell)
		if _, ok := counts[key]; !ok {
			order = append(order, cell)
		}
		counts[key]++
	}
	values := make([]wrangle.Cell, len(order))
	tallies := make([]wrangle.Cell, len(order))
	for i, cell := range order {
		values[i] = cell
		tallies[i] = wrangle.Int(counts[wrangle.KeyOf(cell)])
	}
	return wrangle.New(
		wrangle.NewColumn("value", values),
		wrangle.NewColumn("count", tallies),
	)
}

// CrossTab counts co-occurrences of rowKey and colKey values.  The
// result's row index holds the distinct rowKey values and there is one
// int column per distinct colKey value, both in order of first
// appearance; cell (r, c) is the number of positions where rowKey had
// value r and colKey had value c.  With margins, an "All" row and
// column of totals and a grand-total cell are appended.
func CrossTab(rowKey, colKey wrangle.Column, margins bool) (*wrangle.Table, error) {
	if rowKey.Len() != colKey.Len() {
		return nil, fmt.Errorf("%w: row key %q has %d values, column key %q has %d", wrangle.ErrShapeMismatch, rowKey.Name(), rowKey.Len(), colKey.Name(), colKey.Len())
	}
	var rowVals, colVals []wrangle.Cell
	rowPos := make(map[string]int)
	colPos := make(map[string]int)
	type pair struct{ r, c int }
	counts := make(map[pair]int64)
	for i := 0; i < rowKey.Len(); i++ {
		rv, _ := rowKey.At(i)
		cv, _ := colKey.At(i)
		rkey, ckey := wrangle.KeyOf(rv), wrangle.KeyOf(cv)
		r, ok := rowPos[rkey]
		if !ok {
			r = len(rowVals)
			rowPos[rkey] = r
			rowVals = append(rowVals, rv)
		}
		c, ok := colPos[ckey]
		if !ok {
			c = len(colVals)
			colPos[ckey] = c
			colVals = append(colVals, cv)
		}
		counts[pair{r, c}]++
	}
	nrows, ncols := len(rowVals), len(colVals)
	grid := make([][]int64, nrows)
	rowTotals := make([]int64, nrows)
	colTotals := make([]int64, ncols)
	var grand int64
	for r := range grid {
		grid[r] = make([]int64, ncols)
		for c := 0; c < ncols; c++ {
			n := counts[pair{r, c}]
			grid[r][c] = n
			rowTotals[r] += n
			colTotals[c] += n
			grand += n
		}
	}
	labels := rowVals
	if margins {
		labels = append(labels, wrangle.String(MarginLabel))
	}
	cols := make([]wrangle.Column, 0, ncols+1)
	for c := 0; c < ncols; c++ {
		cells := make([]wrangle.Cell, 0, nrows+1)
		for r := 0; r < nrows; r++ {
			cells = append(cells, wrangle.Int(grid[r][c]))
		}
		if margins {
			cells = append(cells, wrangle.Int(colTotals[c]))
		}
		cols = append(cols, wrangle.NewColumn(colVals[c].String(), cells))
	}
	if margins {
		cells := make([]wrangle.Cell, 0, nrows+1)
		for r := 0; r < nrows; r++ {
			cells = append(cells, wrangle.Int(rowTotals[r]))
		}
		cells = append(cells, wrangle.Int(grand))
		cols = append(cols, wrangle.NewColumn(MarginLabel, cells))
	}
	return wrangle.NewIndexed(wrangle.NewIndex(labels), cols...)
}

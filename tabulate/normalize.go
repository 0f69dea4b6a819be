package tabulate

import (
	"fmt"

	"github.com/wrangledata/wrangle"
)

// Axis selects the totals Normalize divides by.
type Axis int

const (
	// Rows divides each cell by its row total: rows sum to 1.
	Rows Axis = iota
	// Columns divides each cell by its column total: columns sum to 1.
	Columns
	// Total divides each cell by the grand total.
	Total
)

func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	case Total:
		return "total"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Normalize converts a table of counts, such as a margin-free CrossTab
// result, into proportions of the chosen axis.  Every cell is divided
// by its row total, its column total, or the grand total.  A zero
// divisor never raises: the affected cells become Missing instead, so
// a column whose total is 0 normalizes to all Missing.  All columns
// must be numeric.
func Normalize(tab *wrangle.Table, axis Axis) (*wrangle.Table, error) {
	rows, ncols := tab.Shape()
	grid := make([][]float64, ncols)
	missing := make([][]bool, ncols)
	rowTotals := make([]float64, rows)
	colTotals := make([]float64, ncols)
	var grand float64
	for i := 0; i < ncols; i++ {
		col, err := tab.ColumnAt(i)
		if err != nil {
			return nil, err
		}
		grid[i], missing[i], err = col.Floats()
		if err != nil {
			return nil, err
		}
		for j := 0; j < rows; j++ {
			if missing[i][j] {
				continue
			}
			rowTotals[j] += grid[i][j]
			colTotals[i] += grid[i][j]
			grand += grid[i][j]
		}
	}
	cols := make([]wrangle.Column, ncols)
	for i := 0; i < ncols; i++ {
		src, _ := tab.ColumnAt(i)
		cells := make([]wrangle.Cell, rows)
		for j := 0; j < rows; j++ {
			if missing[i][j] {
				cells[j] = wrangle.Missing
				continue
			}
			var total float64
			switch axis {
			case Rows:
				total = rowTotals[j]
			case Columns:
				total = colTotals[i]
			default:
				total = grand
			}
			if total == 0 {
				cells[j] = wrangle.Missing
				continue
			}
			cells[j] = wrangle.Float(grid[i][j] / total)
		}
		cols[i] = wrangle.NewColumn(src.Name(), cells)
	}
	return wrangle.NewIndexed(tab.Index(), cols...)
}

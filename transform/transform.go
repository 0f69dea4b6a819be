// Package transform recodes columns: per-cell maps, derived columns
// computed from whole rows, and table-wide column transforms.  The
// table-wide form fans out across columns, which is safe because every
// operation here is pure and columns are independent.
package transform

import (
	"math"

	"github.com/wrangledata/wrangle"
	"golang.org/x/sync/errgroup"
)

// CellFunc transforms one cell into another.
type CellFunc func(wrangle.Cell) wrangle.Cell

// Map applies fn to every cell of a column, producing a new column of
// the same name and length.
func Map(col wrangle.Column, fn CellFunc) wrangle.Column {
	cells := col.Cells()
	for i, cell := range cells {
		cells[i] = fn(cell)
	}
	return wrangle.NewColumn(col.Name(), cells)
}

// Derive appends a column computed row-by-row, returning a new table.
func Derive(t *wrangle.Table, name string, fn func(wrangle.Row) (wrangle.Cell, error)) (*wrangle.Table, error) {
	rows, _ := t.Shape()
	cells := make([]wrangle.Cell, rows)
	for pos := 0; pos < rows; pos++ {
		row, err := t.RowView(pos)
		if err != nil {
			return nil, err
		}
		if cells[pos], err = fn(row); err != nil {
			return nil, err
		}
	}
	cols := append(t.Columns(), wrangle.NewColumn(name, cells))
	return wrangle.NewIndexed(t.Index(), cols...)
}

// MapColumns applies fn to every column of the table concurrently, one
// goroutine per column, and assembles the results in declared order.
// fn must preserve column length; the table constructor enforces it.
func MapColumns(t *wrangle.Table, fn func(wrangle.Column) (wrangle.Column, error)) (*wrangle.Table, error) {
	cols := t.Columns()
	out := make([]wrangle.Column, len(cols))
	var g errgroup.Group
	for i, col := range cols {
		i, col := i, col
		g.Go(func() error {
			mapped, err := fn(col)
			if err != nil {
				return err
			}
			out[i] = mapped
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return wrangle.NewIndexed(t.Index(), out...)
}

// numeric lifts a float function to a CellFunc: ints and floats pass
// through the function (ints yielding floats), everything else becomes
// Missing.
func numeric(fn func(float64) float64) CellFunc {
	return func(c wrangle.Cell) wrangle.Cell {
		f, ok := c.Float()
		if !ok {
			return wrangle.Missing
		}
		return wrangle.Float(fn(f))
	}
}

// Shift recodes a numeric column by adding delta, the usual centering
// move (subtract the scale midpoint by passing a negative delta).
func Shift(delta float64) CellFunc {
	return numeric(func(f float64) float64 { return f + delta })
}

// Abs recodes a numeric column to absolute values, e.g. turning a
// centered opinion score into an opinion strength.
func Abs() CellFunc {
	return numeric(math.Abs)
}

// Sign recodes a numeric column to -1, 0, or 1, keeping only the
// direction of a centered score.
func Sign() CellFunc {
	return numeric(func(f float64) float64 {
		switch {
		case f < 0:
			return -1
		case f > 0:
			return 1
		default:
			return 0
		}
	})
}

package wrangle

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Column is a named, length-fixed sequence of cells.  The backing slice
// is never exposed: derived tables share columns freely because nothing
// can mutate one after construction.
type Column struct {
	name  string
	cells []Cell
}

// NewColumn returns a column holding a copy of cells.  Mutating the
// caller's slice afterward does not affect the column.
func NewColumn(name string, cells []Cell) Column {
	return Column{name: name, cells: slices.Clone(cells)}
}

// NewIntColumn, NewFloatColumn, NewStringColumn, and NewBoolColumn are
// conveniences for building a column from raw Go values.
func NewIntColumn(name string, vals []int64) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = Int(v)
	}
	return Column{name: name, cells: cells}
}

func NewFloatColumn(name string, vals []float64) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = Float(v)
	}
	return Column{name: name, cells: cells}
}

func NewStringColumn(name string, vals []string) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = String(v)
	}
	return Column{name: name, cells: cells}
}

func NewBoolColumn(name string, vals []bool) Column {
	cells := make([]Cell, len(vals))
	for i, v := range vals {
		cells[i] = Bool(v)
	}
	return Column{name: name, cells: cells}
}

// newSharedColumn wraps cells without copying.  The caller must not
// retain a mutable reference to the slice.
func newSharedColumn(name string, cells []Cell) Column {
	return Column{name: name, cells: cells}
}

func (c Column) Name() string { return c.name }
func (c Column) Len() int     { return len(c.cells) }

// At returns the cell at position i.
func (c Column) At(i int) (Cell, error) {
	if i < 0 || i >= len(c.cells) {
		return Missing, fmt.Errorf("%w: position %d in column %q of length %d", ErrIndexOutOfRange, i, c.name, len(c.cells))
	}
	return c.cells[i], nil
}

// WithName returns a column with the given name sharing this column's
// storage.
func (c Column) WithName(name string) Column {
	return Column{name: name, cells: c.cells}
}

// Cells returns a copy of the column's cells.
func (c Column) Cells() []Cell {
	return slices.Clone(c.cells)
}

// Kind returns the column's dtype: the kind shared by all non-missing
// cells, with ints widening to float when both appear.  A column with
// no non-missing cells is KindMissing; any other mixture is KindString,
// the catch-all in which every cell has a rendering.
func (c Column) Kind() Kind {
	kind := KindMissing
	for _, cell := range c.cells {
		k := cell.Kind()
		if k == KindMissing || k == kind {
			continue
		}
		switch {
		case kind == KindMissing:
			kind = k
		case (kind == KindInt || kind == KindFloat) && (k == KindInt || k == KindFloat):
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

// Floats materializes the column as float64s with a parallel missing
// mask.  Int cells coerce to float.  Any non-missing, non-numeric cell
// is a type mismatch.
func (c Column) Floats() ([]float64, []bool, error) {
	vals := make([]float64, len(c.cells))
	missing := make([]bool, len(c.cells))
	for i, cell := range c.cells {
		if cell.IsMissing() {
			missing[i] = true
			continue
		}
		f, ok := cell.Float()
		if !ok {
			return nil, nil, fmt.Errorf("%w: column %q has %s value at position %d where a number is required", ErrTypeMismatch, c.name, cell.Kind(), i)
		}
		vals[i] = f
	}
	return vals, missing, nil
}

// pick returns a column holding the cells at the given positions, which
// must all be in range.
func (c Column) pick(positions []int) Column {
	cells := make([]Cell, len(positions))
	for i, pos := range positions {
		cells[i] = c.cells[pos]
	}
	return newSharedColumn(c.name, cells)
}

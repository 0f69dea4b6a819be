package reshape

import (
	"fmt"

	"github.com/wrangledata/wrangle"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// How selects the join flavor.
type How int

const (
	// Left keeps every left row, filling unmatched right-side cells
	// with Missing.
	Left How = iota
	// Inner keeps only the left rows that match a right row.
	Inner
)

func (h How) String() string {
	if h == Inner {
		return "inner"
	}
	return "left"
}

// Join aligns the rows of two tables on equal key values.  The right
// side must be unique on the key: a key appearing in several right rows
// has no single alignment and is rejected.  The output carries all left
// columns followed by the right's non-key columns, with the left
// table's index at the kept positions.  Non-key column names shared by
// both sides collide and are rejected rather than silently renamed.
func Join(left, right *wrangle.Table, on []string, how How) (*wrangle.Table, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("%w: join needs at least one key column", wrangle.ErrShapeMismatch)
	}
	leftKeys := make([]wrangle.Column, len(on))
	rightKeys := make([]wrangle.Column, len(on))
	for i, name := range on {
		var err error
		if leftKeys[i], err = left.Column(name); err != nil {
			return nil, err
		}
		if rightKeys[i], err = right.Column(name); err != nil {
			return nil, err
		}
	}
	var rightCols []wrangle.Column
	for _, col := range right.Columns() {
		if slices.Contains(on, col.Name()) {
			continue
		}
		if _, err := left.Column(col.Name()); err == nil {
			return nil, fmt.Errorf("%w: column %q appears on both sides of the join", wrangle.ErrSchemaMismatch, col.Name())
		}
		rightCols = append(rightCols, col)
	}
	rightRows, _ := right.Shape()
	match := make(map[string]int, rightRows)
	tuple := make([]wrangle.Cell, len(on))
	for pos := 0; pos < rightRows; pos++ {
		for i, key := range rightKeys {
			tuple[i], _ = key.At(pos)
		}
		k := wrangle.KeyOf(tuple...)
		if prev, ok := match[k]; ok {
			return nil, fmt.Errorf("%w: right rows %d and %d share key %v", wrangle.ErrAmbiguousJoin, prev, pos, tuple)
		}
		match[k] = pos
	}
	leftRows, _ := left.Shape()
	var keep []int      // left positions kept
	var rightPos []int  // matching right position, -1 for none
	for pos := 0; pos < leftRows; pos++ {
		for i, key := range leftKeys {
			tuple[i], _ = key.At(pos)
		}
		r, ok := match[wrangle.KeyOf(tuple...)]
		if !ok {
			if how == Inner {
				continue
			}
			r = -1
		}
		keep = append(keep, pos)
		rightPos = append(rightPos, r)
	}
	kept, err := left.Take(keep)
	if err != nil {
		return nil, err
	}
	out := kept.Columns()
	for _, col := range rightCols {
		cells := make([]wrangle.Cell, len(rightPos))
		for i, r := range rightPos {
			if r < 0 {
				cells[i] = wrangle.Missing
				continue
			}
			cells[i], _ = col.At(r)
		}
		out = append(out, wrangle.NewColumn(col.Name(), cells))
	}
	return wrangle.NewIndexed(kept.Index(), out...)
}

// Concat stacks tables row-wise.  Every input must have the same column
// name set; columns are emitted in the first table's order, and later
// tables may declare theirs in any order.  The indexes concatenate
// without deduplication, so labels may repeat across segments: stacking
// batches of the same schema is exactly the intended use.
func Concat(tables ...*wrangle.Table) (*wrangle.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", wrangle.ErrShapeMismatch)
	}
	first := tables[0]
	names := first.Names()
	var err error
	for _, t := range tables[1:] {
		other := t.Names()
		for _, name := range names {
			if !slices.Contains(other, name) {
				err = multierr.Append(err, fmt.Errorf("%w: column %q missing from an input", wrangle.ErrSchemaMismatch, name))
			}
		}
		for _, name := range other {
			if !slices.Contains(names, name) {
				err = multierr.Append(err, fmt.Errorf("%w: unexpected column %q in an input", wrangle.ErrSchemaMismatch, name))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	cols := make([]wrangle.Column, len(names))
	for i, name := range names {
		var cells []wrangle.Cell
		for _, t := range tables {
			col, _ := t.Column(name)
			cells = append(cells, col.Cells()...)
		}
		cols[i] = wrangle.NewColumn(name, cells)
	}
	index := first.Index()
	for _, t := range tables[1:] {
		index, err = index.Concat(t.Index())
		if err != nil {
			return nil, err
		}
	}
	return wrangle.NewIndexed(index, cols...)
}

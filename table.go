package wrangle

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Table is an ordered collection of equal-length columns sharing one
// row index.  A table is never mutated after construction: every
// operation over it produces a new table, and derived tables share the
// immutable column storage of their sources rather than deep-copying.
type Table struct {
	cols   []Column
	byName map[string]int
	index  *Index
}

// New returns a table over the given columns with the default
// sequential index.
func New(cols ...Column) (*Table, error) {
	return NewIndexed(nil, cols...)
}

// NewIndexed returns a table over the given columns and row index.
// A nil index means sequential.  Columns must have equal lengths and
// unique names, and the index length must agree.
func NewIndexed(index *Index, cols ...Column) (*Table, error) {
	var rows int
	if len(cols) > 0 {
		rows = cols[0].Len()
	} else if index != nil {
		rows = index.Len()
	}
	byName := make(map[string]int, len(cols))
	var err error
	for i, col := range cols {
		if _, ok := byName[col.Name()]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: duplicate column %q", ErrShapeMismatch, col.Name()))
			continue
		}
		byName[col.Name()] = i
		if col.Len() != rows {
			err = multierr.Append(err, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrShapeMismatch, col.Name(), col.Len(), rows))
		}
	}
	if err != nil {
		return nil, err
	}
	if index == nil {
		index = SequentialIndex(rows)
	} else if index.Len() != rows {
		return nil, fmt.Errorf("%w: index has %d rows, columns have %d", ErrShapeMismatch, index.Len(), rows)
	}
	return &Table{cols: slices.Clone(cols), byName: byName, index: index}, nil
}

// ColumnSource is the contract for external collaborators that produce
// columnar input, e.g. a delimited-text parser.  It must be rectangular:
// every column the same length.
type ColumnSource interface {
	Names() []string
	Column(name string) []Cell
}

// FromSource constructs a table from a columnar source, copying the
// source's cells so later mutation of the source cannot reach the
// table.  A nil index means sequential.
func FromSource(src ColumnSource, index *Index) (*Table, error) {
	names := src.Names()
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = NewColumn(name, src.Column(name))
	}
	return NewIndexed(index, cols...)
}

// Names returns the column names in declared order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name()
	}
	return names
}

// Index returns the table's row index.
func (t *Table) Index() *Index { return t.index }

// Shape returns the row and column counts.
func (t *Table) Shape() (rows, cols int) {
	if len(t.cols) == 0 {
		return t.index.Len(), 0
	}
	return t.cols[0].Len(), len(t.cols)
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return t.cols[i], nil
}

// ColumnAt returns the column at position i in declared order.
func (t *Table) ColumnAt(i int) (Column, error) {
	if i < 0 || i >= len(t.cols) {
		return Column{}, fmt.Errorf("%w: column position %d of %d", ErrIndexOutOfRange, i, len(t.cols))
	}
	return t.cols[i], nil
}

// Columns returns the table's columns in declared order.  The columns
// share storage with the table; they are immutable so this is safe.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// Row returns the cells of the row at pos, one per column in declared
// order.
func (t *Table) Row(pos int) ([]Cell, error) {
	rows, _ := t.Shape()
	if pos < 0 || pos >= rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, pos, rows)
	}
	cells := make([]Cell, len(t.cols))
	for i, col := range t.cols {
		cells[i] = col.cells[pos]
	}
	return cells, nil
}

// RowView returns a lightweight view of the row at pos for use in
// predicates and derivations.
func (t *Table) RowView(pos int) (Row, error) {
	rows, _ := t.Shape()
	if pos < 0 || pos >= rows {
		return Row{}, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, pos, rows)
	}
	return Row{t: t, pos: pos}, nil
}

// Slice returns the rows in the half-open interval [start, stop) taken
// with the given step.  Stop is exclusive.  Negative start and stop
// count from the end; out-of-range bounds clamp rather than error, so
// Slice(0, n, 1) has min(n, rows) rows.  A negative step walks
// backward.  The derived index is the matching subsequence of the
// original index.
func (t *Table) Slice(start, stop, step int) (*Table, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: slice step cannot be zero", ErrIndexOutOfRange)
	}
	rows, _ := t.Shape()
	positions := slicePositions(start, stop, step, rows)
	return t.Take(positions)
}

// slicePositions resolves slice bounds the way the half-open slicing
// convention demands, including negative indices and negative steps.
func slicePositions(start, stop, step, n int) []int {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	var positions []int
	if step > 0 {
		if start < 0 {
			start = 0
		}
		if stop > n {
			stop = n
		}
		for i := start; i < stop; i += step {
			positions = append(positions, i)
		}
	} else {
		if start >= n {
			start = n - 1
		}
		if stop < -1 {
			stop = -1
		}
		for i := start; i > stop; i += step {
			positions = append(positions, i)
		}
	}
	return positions
}

// Take returns a table holding the rows at the given positions, in the
// given order, with the matching subsequence of the index.  Positions
// may repeat.
func (t *Table) Take(positions []int) (*Table, error) {
	rows, _ := t.Shape()
	for _, pos := range positions {
		if pos < 0 || pos >= rows {
			return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, pos, rows)
		}
	}
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		cols[i] = col.pick(positions)
	}
	return NewIndexed(t.index.pick(positions), cols...)
}

// DefaultPeek is the number of rows Head and Tail show when no count is
// given.
const DefaultPeek = 5

// Head returns the first n rows (default 5), clamped to the table
// length.
func (t *Table) Head(n ...int) *Table {
	count := DefaultPeek
	if len(n) > 0 {
		count = n[0]
	}
	rows, _ := t.Shape()
	if count > rows {
		count = rows
	}
	if count < 0 {
		count = 0
	}
	head, _ := t.Slice(0, count, 1)
	return head
}

// Tail returns the last n rows (default 5), clamped to the table
// length.
func (t *Table) Tail(n ...int) *Table {
	count := DefaultPeek
	if len(n) > 0 {
		count = n[0]
	}
	rows, _ := t.Shape()
	if count > rows {
		count = rows
	}
	if count < 0 {
		count = 0
	}
	tail, _ := t.Slice(rows-count, rows, 1)
	return tail
}

// RowMajor materializes the table as one cell slice per row, columns in
// declared order.
func (t *Table) RowMajor() [][]Cell {
	rows, _ := t.Shape()
	out := make([][]Cell, rows)
	for pos := 0; pos < rows; pos++ {
		cells := make([]Cell, len(t.cols))
		for i, col := range t.cols {
			cells[i] = col.cells[pos]
		}
		out[pos] = cells
	}
	return out
}

// ColumnMajor materializes the table as a name-to-cells mapping.  Use
// Names for the declared order.
func (t *Table) ColumnMajor() map[string][]Cell {
	out := make(map[string][]Cell, len(t.cols))
	for _, col := range t.cols {
		out[col.Name()] = col.Cells()
	}
	return out
}

// Row is a read-only view of one table row.
type Row struct {
	t   *Table
	pos int
}

// Pos returns the row's position in its table.
func (r Row) Pos() int { return r.pos }

// Cell returns the row's cell in the named column.
func (r Row) Cell(name string) (Cell, error) {
	i, ok := r.t.byName[name]
	if !ok {
		return Missing, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return r.t.cols[i].cells[r.pos], nil
}

// Cells returns the row's cells in declared column order.
func (r Row) Cells() []Cell {
	cells, _ := r.t.Row(r.pos)
	return cells
}

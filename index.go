package wrangle

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Index is the ordered label space for a table's rows.  A flat index has
// one level; a multi-level index stores a fixed number of levels per row
// in a single arena slice, row-major, so level lookups are positional
// and no nested structure is ever shared mutably.  Labels need not be
// unique: lookups return every matching position, and operations that
// require uniqueness (joins, pivots) enforce it themselves.
type Index struct {
	levels int
	labels []Cell
}

// NewIndex returns a flat index over a copy of labels.
func NewIndex(labels []Cell) *Index {
	return &Index{levels: 1, labels: slices.Clone(labels)}
}

// NewMultiIndex returns an index with the given number of levels over a
// copy of the row-major label arena.  The arena length must be a
// multiple of levels.
func NewMultiIndex(levels int, labels []Cell) (*Index, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: index must have at least one level, got %d", ErrShapeMismatch, levels)
	}
	if len(labels)%levels != 0 {
		return nil, fmt.Errorf("%w: %d labels do not fill rows of %d levels", ErrShapeMismatch, len(labels), levels)
	}
	return &Index{levels: levels, labels: slices.Clone(labels)}, nil
}

// SequentialIndex returns the default flat index 0..n-1.
func SequentialIndex(n int) *Index {
	labels := make([]Cell, n)
	for i := range labels {
		labels[i] = Int(int64(i))
	}
	return &Index{levels: 1, labels: labels}
}

func (ix *Index) Len() int    { return len(ix.labels) / ix.levels }
func (ix *Index) Levels() int { return ix.levels }

// LabelAt returns the label at pos.  For a multi-level index it returns
// the level-0 label; use TupleAt for the full tuple.
func (ix *Index) LabelAt(pos int) (Cell, error) {
	if pos < 0 || pos >= ix.Len() {
		return Missing, fmt.Errorf("%w: index position %d of %d", ErrIndexOutOfRange, pos, ix.Len())
	}
	return ix.labels[pos*ix.levels], nil
}

// TupleAt returns a copy of the full label tuple at pos.
func (ix *Index) TupleAt(pos int) ([]Cell, error) {
	if pos < 0 || pos >= ix.Len() {
		return nil, fmt.Errorf("%w: index position %d of %d", ErrIndexOutOfRange, pos, ix.Len())
	}
	return slices.Clone(ix.labels[pos*ix.levels : (pos+1)*ix.levels]), nil
}

// Level returns the flat sequence of labels at level k.
func (ix *Index) Level(k int) ([]Cell, error) {
	if k < 0 || k >= ix.levels {
		return nil, fmt.Errorf("%w: level %d of %d", ErrIndexOutOfRange, k, ix.levels)
	}
	n := ix.Len()
	labels := make([]Cell, n)
	for i := 0; i < n; i++ {
		labels[i] = ix.labels[i*ix.levels+k]
	}
	return labels, nil
}

// PositionsOf returns every position whose level-0 label equals label.
// A non-unique index can match many positions; callers that need a
// single position must check the cardinality themselves.
func (ix *Index) PositionsOf(label Cell) ([]int, error) {
	var positions []int
	for i, n := 0, ix.Len(); i < n; i++ {
		if ix.labels[i*ix.levels].Equal(label) {
			positions = append(positions, i)
		}
	}
	if positions == nil {
		return nil, fmt.Errorf("%w: %s", ErrLabelNotFound, label)
	}
	return positions, nil
}

// PositionsWhere returns every position whose label tuple starts with
// the given partial tuple.  An empty partial matches all positions.
func (ix *Index) PositionsWhere(partial []Cell) ([]int, error) {
	if len(partial) > ix.levels {
		return nil, fmt.Errorf("%w: partial tuple has %d levels, index has %d", ErrShapeMismatch, len(partial), ix.levels)
	}
	var positions []int
	for i, n := 0, ix.Len(); i < n; i++ {
		match := true
		for k, want := range partial {
			if !ix.labels[i*ix.levels+k].Equal(want) {
				match = false
				break
			}
		}
		if match {
			positions = append(positions, i)
		}
	}
	return positions, nil
}

// pick returns the subsequence of the index at the given positions.
func (ix *Index) pick(positions []int) *Index {
	labels := make([]Cell, 0, len(positions)*ix.levels)
	for _, pos := range positions {
		labels = append(labels, ix.labels[pos*ix.levels:(pos+1)*ix.levels]...)
	}
	return &Index{levels: ix.levels, labels: labels}
}

// Concat appends another index with the same level count.  Labels are
// not deduplicated; repeated labels across segments are intentional in
// the union-of-batches case.
func (ix *Index) Concat(other *Index) (*Index, error) {
	if ix.levels != other.levels {
		return nil, fmt.Errorf("%w: cannot concatenate a %d-level index with a %d-level index", ErrShapeMismatch, ix.levels, other.levels)
	}
	labels := make([]Cell, 0, len(ix.labels)+len(other.labels))
	labels = append(labels, ix.labels...)
	labels = append(labels, other.labels...)
	return &Index{levels: ix.levels, labels: labels}, nil
}

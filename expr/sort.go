package expr

import (
	"sort"

	"github.com/wrangledata/wrangle"
)

// SortKey names a column to order by.  Keys are applied in sequence:
// later keys break ties left by earlier ones.
type SortKey struct {
	Field      string
	Descending bool
}

// SortFn compares two row positions with the return conventions of
// bytes.Compare, so it composes with sort and heap packages.
type SortFn func(a, b int) int

// NewSortFn builds a comparison over the table's columns for the given
// keys.  Missing cells sort after every value in both directions, so
// ascending and descending sorts alike place them last.
func NewSortFn(t *wrangle.Table, keys ...SortKey) (SortFn, error) {
	cols := make([]wrangle.Column, len(keys))
	for i, key := range keys {
		col, err := t.Column(key.Field)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return func(a, b int) int {
		for i, key := range keys {
			av, _ := cols[i].At(a)
			bv, _ := cols[i].At(b)
			if am, bm := av.IsMissing(), bv.IsMissing(); am || bm {
				switch {
				case am && bm:
					continue
				case am:
					return 1
				default:
					return -1
				}
			}
			v := wrangle.CompareCells(av, bv)
			if v == 0 {
				continue
			}
			if key.Descending {
				return -v
			}
			return v
		}
		return 0
	}, nil
}

// Sort returns the table's rows stably reordered by the given keys,
// with the index permuted alongside.
func Sort(t *wrangle.Table, keys ...SortKey) (*wrangle.Table, error) {
	cmp, err := NewSortFn(t, keys...)
	if err != nil {
		return nil, err
	}
	rows, _ := t.Shape()
	positions := make([]int, rows)
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return cmp(positions[i], positions[j]) < 0
	})
	return t.Take(positions)
}

package reshape

import (
	"fmt"
	"strings"

	"github.com/wrangledata/wrangle"
)

// Transpose flips a table: row labels become column names and column
// names become the row labels of the new index.  Multi-level labels
// join with "/" to form a flat column name.  Because column names must
// be unique where index labels need not be, a table with repeated
// index labels cannot be transposed.
func Transpose(t *wrangle.Table) (*wrangle.Table, error) {
	rows, ncols := t.Shape()
	names := make([]string, rows)
	seen := make(map[string]bool, rows)
	for pos := 0; pos < rows; pos++ {
		tuple, err := t.Index().TupleAt(pos)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(tuple))
		for i, label := range tuple {
			parts[i] = label.String()
		}
		name := strings.Join(parts, "/")
		if seen[name] {
			return nil, fmt.Errorf("%w: index label %q repeats and cannot name a column", wrangle.ErrDuplicateKey, name)
		}
		seen[name] = true
		names[pos] = name
	}
	labels := make([]wrangle.Cell, ncols)
	for i := range labels {
		col, _ := t.ColumnAt(i)
		labels[i] = wrangle.String(col.Name())
	}
	out := make([]wrangle.Column, rows)
	for pos := 0; pos < rows; pos++ {
		cells, err := t.Row(pos)
		if err != nil {
			return nil, err
		}
		out[pos] = wrangle.NewColumn(names[pos], cells)
	}
	return wrangle.NewIndexed(wrangle.NewIndex(labels), out...)
}

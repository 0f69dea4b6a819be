// Package reshape restructures tables between equivalent wide and long
// layouts and combines tables by key (join) or by stacking (concat).
// Every operation derives a new table; inputs are never touched.
package reshape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wrangledata/wrangle"
)

// VariableColumn and ValueColumn name the two columns Melt adds.
const (
	VariableColumn = "variable"
	ValueColumn    = "value"
)

// Melt unpivots a wide table into long format.  Every column not named
// in idCols becomes output rows of (idCols..., variable, value), one
// per original row, so the output has rows × (cols − len(idCols)) rows.
// Output rows are grouped by variable in declared column order, with
// the original row order inside each group.
func Melt(t *wrangle.Table, idCols []string) (*wrangle.Table, error) {
	idSet := make(map[string]bool, len(idCols))
	ids := make([]wrangle.Column, len(idCols))
	for i, name := range idCols {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		ids[i] = col
		idSet[name] = true
	}
	var melted []wrangle.Column
	for _, col := range t.Columns() {
		if !idSet[col.Name()] {
			melted = append(melted, col)
		}
	}
	rows, _ := t.Shape()
	total := rows * len(melted)
	out := make([]wrangle.Column, 0, len(idCols)+2)
	for i, id := range ids {
		cells := make([]wrangle.Cell, 0, total)
		for range melted {
			cells = append(cells, id.Cells()...)
		}
		out = append(out, wrangle.NewColumn(idCols[i], cells))
	}
	variables := make([]wrangle.Cell, 0, total)
	values := make([]wrangle.Cell, 0, total)
	for _, col := range melted {
		name := wrangle.String(col.Name())
		for pos := 0; pos < rows; pos++ {
			cell, _ := col.At(pos)
			variables = append(variables, name)
			values = append(values, cell)
		}
	}
	out = append(out,
		wrangle.NewColumn(VariableColumn, variables),
		wrangle.NewColumn(ValueColumn, values))
	return wrangle.New(out...)
}

// WideToLong unpivots families of wide columns that share stub-name
// prefixes.  For each stub it collects the columns named
// stub+sep+suffix whose suffix matches suffixPattern; columns sharing a
// suffix across all stubs collapse into one output row per original
// row, with the suffix recorded in the labelName column.  The output
// columns are idCols..., labelName, then one column per stub.  Rows
// come out in original row order, suffixes in order of first
// appearance inside each row.  Every stub must match at least one
// column, and all stubs must expose the same suffix set.
func WideToLong(t *wrangle.Table, stubs, idCols []string, labelName, sep, suffixPattern string) (*wrangle.Table, error) {
	// The pattern must match the whole suffix, not a fragment of it.
	re, err := regexp.Compile("^(?:" + suffixPattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("bad suffix pattern %q: %w", suffixPattern, err)
	}
	ids := make([]wrangle.Column, len(idCols))
	for i, name := range idCols {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		ids[i] = col
	}
	// stubCols[stub][suffix] is the matched column for that pair.
	stubCols := make(map[string]map[string]wrangle.Column, len(stubs))
	var suffixes []string
	seen := make(map[string]bool)
	for _, stub := range stubs {
		prefix := stub + sep
		matched := make(map[string]wrangle.Column)
		for _, col := range t.Columns() {
			if !strings.HasPrefix(col.Name(), prefix) {
				continue
			}
			suffix := col.Name()[len(prefix):]
			if !re.MatchString(suffix) {
				continue
			}
			matched[suffix] = col
			if !seen[suffix] {
				seen[suffix] = true
				suffixes = append(suffixes, suffix)
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: no columns match stub %q with separator %q", wrangle.ErrNoMatchingColumns, stub, sep)
		}
		stubCols[stub] = matched
	}
	for _, stub := range stubs {
		if len(stubCols[stub]) != len(suffixes) {
			return nil, fmt.Errorf("%w: stub %q has %d suffixes, expected %d", wrangle.ErrInconsistentSuffixes, stub, len(stubCols[stub]), len(suffixes))
		}
		for _, suffix := range suffixes {
			if _, ok := stubCols[stub][suffix]; !ok {
				return nil, fmt.Errorf("%w: stub %q is missing suffix %q", wrangle.ErrInconsistentSuffixes, stub, suffix)
			}
		}
	}
	rows, _ := t.Shape()
	total := rows * len(suffixes)
	idCells := make([][]wrangle.Cell, len(idCols))
	for i := range idCells {
		idCells[i] = make([]wrangle.Cell, 0, total)
	}
	labels := make([]wrangle.Cell, 0, total)
	stubCells := make([][]wrangle.Cell, len(stubs))
	for i := range stubCells {
		stubCells[i] = make([]wrangle.Cell, 0, total)
	}
	for pos := 0; pos < rows; pos++ {
		for _, suffix := range suffixes {
			for i, id := range ids {
				cell, _ := id.At(pos)
				idCells[i] = append(idCells[i], cell)
			}
			labels = append(labels, wrangle.String(suffix))
			for i, stub := range stubs {
				cell, _ := stubCols[stub][suffix].At(pos)
				stubCells[i] = append(stubCells[i], cell)
			}
		}
	}
	out := make([]wrangle.Column, 0, len(idCols)+1+len(stubs))
	for i, name := range idCols {
		out = append(out, wrangle.NewColumn(name, idCells[i]))
	}
	out = append(out, wrangle.NewColumn(labelName, labels))
	for i, stub := range stubs {
		out = append(out, wrangle.NewColumn(stub, stubCells[i]))
	}
	return wrangle.New(out...)
}

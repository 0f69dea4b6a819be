package reshape

import (
	"fmt"

	"github.com/wrangledata/wrangle"
)

// Pivot widens a long table: rows are grouped by the indexCols key, and
// each distinct value of columnsCol becomes an output column carrying
// the valueCols cells of the matching input row.  With a single value
// column, output columns are named by the columnsCol value alone; with
// several, by value+"_"+columnsCol value, mirroring the stub naming
// that WideToLong takes apart.  No implicit aggregation is performed:
// two input rows sharing the same (indexCols, columnsCol) combination
// are ambiguous and rejected.  Combinations that never occur fill with
// Missing.  Keys and column values come out in order of first
// appearance, the indexCols stay as leading columns, and the row index
// holds the key tuples (multi-level when there are several indexCols).
func Pivot(t *wrangle.Table, indexCols []string, columnsCol string, valueCols []string) (*wrangle.Table, error) {
	if len(indexCols) == 0 {
		return nil, fmt.Errorf("%w: pivot needs at least one index column", wrangle.ErrShapeMismatch)
	}
	keys := make([]wrangle.Column, len(indexCols))
	for i, name := range indexCols {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		keys[i] = col
	}
	colKey, err := t.Column(columnsCol)
	if err != nil {
		return nil, err
	}
	vals := make([]wrangle.Column, len(valueCols))
	for i, name := range valueCols {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		vals[i] = col
	}
	rows, _ := t.Shape()
	var keyTuples [][]wrangle.Cell
	keyPos := make(map[string]int)
	var colVals []wrangle.Cell
	colPos := make(map[string]int)
	// sources[group][col] is the input row that fills the cell.
	sources := make(map[[2]int]int)
	for pos := 0; pos < rows; pos++ {
		tuple := make([]wrangle.Cell, len(keys))
		for i, key := range keys {
			tuple[i], _ = key.At(pos)
		}
		kkey := wrangle.KeyOf(tuple...)
		g, ok := keyPos[kkey]
		if !ok {
			g = len(keyTuples)
			keyPos[kkey] = g
			keyTuples = append(keyTuples, tuple)
		}
		cv, _ := colKey.At(pos)
		ckey := wrangle.KeyOf(cv)
		c, ok := colPos[ckey]
		if !ok {
			c = len(colVals)
			colPos[ckey] = c
			colVals = append(colVals, cv)
		}
		if prev, ok := sources[[2]int{g, c}]; ok {
			return nil, fmt.Errorf("%w: rows %d and %d both have %s=%s for the same index key", wrangle.ErrDuplicateKey, prev, pos, columnsCol, cv)
		}
		sources[[2]int{g, c}] = pos
	}
	ngroups := len(keyTuples)
	out := make([]wrangle.Column, 0, len(indexCols)+len(valueCols)*len(colVals))
	for i, name := range indexCols {
		cells := make([]wrangle.Cell, ngroups)
		for g, tuple := range keyTuples {
			cells[g] = tuple[i]
		}
		out = append(out, wrangle.NewColumn(name, cells))
	}
	for vi, val := range vals {
		for c, cv := range colVals {
			name := cv.String()
			if len(valueCols) > 1 {
				name = valueCols[vi] + "_" + name
			}
			cells := make([]wrangle.Cell, ngroups)
			for g := range cells {
				cells[g] = wrangle.Missing
				if pos, ok := sources[[2]int{g, c}]; ok {
					cells[g], _ = val.At(pos)
				}
			}
			out = append(out, wrangle.NewColumn(name, cells))
		}
	}
	arena := make([]wrangle.Cell, 0, ngroups*len(indexCols))
	for _, tuple := range keyTuples {
		arena = append(arena, tuple...)
	}
	index, err := wrangle.NewMultiIndex(len(indexCols), arena)
	if err != nil {
		return nil, err
	}
	return wrangle.NewIndexed(index, out...)
}

// Package categorize converts continuous columns into discrete
// categories.  A category's bins partition a numeric range into
// intervals that are closed on the right, except that the very first
// bin also includes its lower bound, so every interior boundary belongs
// to exactly one bin and the minimum is never orphaned.
package categorize

import (
	"fmt"
	"strconv"

	"github.com/wrangledata/wrangle"
)

// Bin is one interval of a category: (Lo, Hi], or [Lo, Hi] when
// LoClosed is set (only ever true for the first bin).
type Bin struct {
	Lo       float64
	Hi       float64
	LoClosed bool
	Label    string
}

// Contains reports whether v falls inside the bin.
func (b Bin) Contains(v float64) bool {
	if v > b.Hi {
		return false
	}
	if b.LoClosed {
		return v >= b.Lo
	}
	return v > b.Lo
}

func (b Bin) defaultLabel() string {
	open := "("
	if b.LoClosed {
		open = "["
	}
	return open + formatEdge(b.Lo) + ", " + formatEdge(b.Hi) + "]"
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Category is a derived column whose values are labels drawn from an
// ordered, finite set of bins.  Values outside every bin map to
// Missing, never to an error.
type Category struct {
	bins  []Bin
	cells []wrangle.Cell
}

// Bins returns the category's bins in ascending order.
func (c *Category) Bins() []Bin {
	bins := make([]Bin, len(c.bins))
	copy(bins, c.bins)
	return bins
}

// Len returns the number of categorized values.
func (c *Category) Len() int { return len(c.cells) }

// Column materializes the category as a string column of bin labels,
// with Missing for uncategorized values.
func (c *Category) Column(name string) wrangle.Column {
	return wrangle.NewColumn(name, c.cells)
}

// CutWidth divides the column's observed range [min, max] into n
// equal-width bins.  The range must not be degenerate: if min equals
// max and more than one bin is requested there is no width to divide.
func CutWidth(col wrangle.Column, n int) (*Category, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: bin count must be at least 1, got %d", wrangle.ErrDegenerateRange, n)
	}
	vals, missing, err := col.Floats()
	if err != nil {
		return nil, err
	}
	lo, hi, ok := minMax(vals, missing)
	if !ok {
		return nil, fmt.Errorf("%w: column %q has no values to categorize", wrangle.ErrInsufficientData, col.Name())
	}
	if lo == hi {
		if n > 1 {
			return nil, fmt.Errorf("%w: column %q is constant at %v", wrangle.ErrDegenerateRange, col.Name(), lo)
		}
		// A constant column still fits in one zero-width bin, which
		// Cut's strictly-increasing edge check cannot express.
		bin := Bin{Lo: lo, Hi: hi, LoClosed: true}
		bin.Label = bin.defaultLabel()
		cells := make([]wrangle.Cell, len(vals))
		for i := range vals {
			if missing[i] {
				cells[i] = wrangle.Missing
				continue
			}
			cells[i] = wrangle.String(bin.Label)
		}
		return &Category{bins: []Bin{bin}, cells: cells}, nil
	}
	edges := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := 0; i <= n; i++ {
		edges[i] = lo + width*float64(i)
	}
	// Guard against accumulated rounding excluding the maximum.
	edges[n] = hi
	return Cut(col, edges, nil)
}

// Cut assigns each value to the bin delimited by consecutive edges,
// which must be strictly increasing.  If labels are given there must be
// exactly one per bin, i.e. one fewer than there are edges.  Values
// outside [edges[0], edges[last]] categorize as Missing.
func Cut(col wrangle.Column, edges []float64, labels []string) (*Category, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two bin edges, got %d", wrangle.ErrDegenerateRange, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("%w: bin edges must be strictly increasing (%v then %v)", wrangle.ErrDegenerateRange, edges[i-1], edges[i])
		}
	}
	if labels != nil && len(labels) != len(edges)-1 {
		return nil, fmt.Errorf("%w: %d labels for %d bins", wrangle.ErrLabelCountMismatch, len(labels), len(edges)-1)
	}
	vals, missing, err := col.Floats()
	if err != nil {
		return nil, err
	}
	bins := make([]Bin, len(edges)-1)
	for i := range bins {
		bins[i] = Bin{Lo: edges[i], Hi: edges[i+1], LoClosed: i == 0}
		if labels != nil {
			bins[i].Label = labels[i]
		} else {
			bins[i].Label = bins[i].defaultLabel()
		}
	}
	cells := make([]wrangle.Cell, len(vals))
	for i, v := range vals {
		if missing[i] {
			cells[i] = wrangle.Missing
			continue
		}
		cells[i] = wrangle.Missing
		for _, bin := range bins {
			if bin.Contains(v) {
				cells[i] = wrangle.String(bin.Label)
				break
			}
		}
	}
	return &Category{bins: bins, cells: cells}, nil
}

func minMax(vals []float64, missing []bool) (lo, hi float64, ok bool) {
	for i, v := range vals {
		if missing[i] {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

package categorize

import (
	"fmt"
	"math"
	"sort"

	"github.com/wrangledata/wrangle"
)

// QCut bins the column at its sample quantiles, so the bins hold
// roughly equal numbers of values rather than spanning equal widths.
// The probabilities must be increasing within [0, 1] and typically
// start at 0 and end at 1.  Quantiles interpolate linearly between
// order statistics.  A value tied with a quantile boundary lands in the
// lower bin, which the upper-inclusive edge policy guarantees.
func QCut(col wrangle.Column, quantiles []float64, labels []string) (*Category, error) {
	if len(quantiles) < 2 {
		return nil, fmt.Errorf("%w: need at least two quantiles, got %d", wrangle.ErrDegenerateRange, len(quantiles))
	}
	for i, q := range quantiles {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("%w: quantile %v outside [0, 1]", wrangle.ErrDegenerateRange, q)
		}
		if i > 0 && q <= quantiles[i-1] {
			return nil, fmt.Errorf("%w: quantiles must be increasing (%v then %v)", wrangle.ErrDegenerateRange, quantiles[i-1], q)
		}
	}
	vals, missing, err := col.Floats()
	if err != nil {
		return nil, err
	}
	sorted := make([]float64, 0, len(vals))
	for i, v := range vals {
		if !missing[i] {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) < 2 {
		return nil, fmt.Errorf("%w: column %q has %d non-missing values, need at least 2", wrangle.ErrInsufficientData, col.Name(), len(sorted))
	}
	sort.Float64s(sorted)
	edges := make([]float64, len(quantiles))
	for i, q := range quantiles {
		edges[i] = quantile(sorted, q)
	}
	return Cut(col, edges, labels)
}

// quantile returns the sample quantile at probability q by linear
// interpolation between adjacent order statistics of the sorted data.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

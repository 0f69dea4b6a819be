package categorize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrangledata/wrangle"
	"github.com/wrangledata/wrangle/categorize"
)

var ages = []int64{60, 58, 24, 26, 34, 42, 31, 30, 33, 2, 9}

func labelsOf(t *testing.T, cat *categorize.Category) []string {
	col := cat.Column("categories")
	out := make([]string, col.Len())
	for i := range out {
		cell, err := col.At(i)
		require.NoError(t, err)
		out[i] = cell.String()
	}
	return out
}

func TestCutExplicitEdges(t *testing.T) {
	col := wrangle.NewIntColumn("age", ages)
	cat, err := categorize.Cut(col, []float64{0, 20, 40, 60}, []string{"young", "adult", "older"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"older", "older", "adult", "adult", "adult", "older",
		"adult", "adult", "adult", "young", "young",
	}, labelsOf(t, cat))
}

func TestCutEdgePolicy(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{0, 20, 21, 40})
	cat, err := categorize.Cut(col, []float64{0, 20, 40}, []string{"lo", "hi"})
	require.NoError(t, err)
	// First bin is closed on both ends; interior boundaries belong to
	// the bin below them.
	assert.Equal(t, []string{"lo", "lo", "hi", "hi"}, labelsOf(t, cat))
}

func TestCutOutOfRangeIsMissing(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{-5, 10, 99})
	cat, err := categorize.Cut(col, []float64{0, 20}, nil)
	require.NoError(t, err)
	cells := cat.Column("c")
	first, _ := cells.At(0)
	assert.True(t, first.IsMissing())
	last, _ := cells.At(2)
	assert.True(t, last.IsMissing())
	mid, _ := cells.At(1)
	assert.False(t, mid.IsMissing())
}

func TestCutErrors(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{1, 2, 3})
	_, err := categorize.Cut(col, []float64{0, 10, 10}, nil)
	require.ErrorIs(t, err, wrangle.ErrDegenerateRange)

	_, err = categorize.Cut(col, []float64{0, 10, 20}, []string{"only one"})
	require.ErrorIs(t, err, wrangle.ErrLabelCountMismatch)

	strs := wrangle.NewStringColumn("s", []string{"a", "b"})
	_, err = categorize.Cut(strs, []float64{0, 1}, nil)
	require.ErrorIs(t, err, wrangle.ErrTypeMismatch)
}

func TestCutWidth(t *testing.T) {
	col := wrangle.NewIntColumn("age", ages)
	cat, err := categorize.CutWidth(col, 3)
	require.NoError(t, err)
	bins := cat.Bins()
	require.Len(t, bins, 3)
	assert.Equal(t, 2.0, bins[0].Lo)
	assert.Equal(t, 60.0, bins[2].Hi)
	assert.True(t, bins[0].LoClosed)
	assert.False(t, bins[1].LoClosed)

	// Every value lands in exactly one bin and all three bins are
	// inhabited for this spread of ages.
	seen := map[string]int{}
	for _, label := range labelsOf(t, cat) {
		require.NotEqual(t, "null", label)
		seen[label]++
	}
	assert.Len(t, seen, 3)
}

func TestCutWidthDistinctBinCount(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{1, 2, 3, 4, 5, 6, 7, 8})
	for k := 1; k <= 4; k++ {
		cat, err := categorize.CutWidth(col, k)
		require.NoError(t, err)
		require.Len(t, cat.Bins(), k)
		seen := map[string]bool{}
		for _, label := range labelsOf(t, cat) {
			require.NotEqual(t, "null", label)
			seen[label] = true
		}
		assert.Len(t, seen, k, "k=%d", k)
	}
}

func TestCutWidthDegenerate(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{7, 7, 7})
	_, err := categorize.CutWidth(col, 3)
	require.ErrorIs(t, err, wrangle.ErrDegenerateRange)

	// A constant column still cuts into a single bin.
	cat, err := categorize.CutWidth(col, 1)
	require.NoError(t, err)
	assert.NotContains(t, labelsOf(t, cat), "null")
	bins := cat.Bins()
	require.Len(t, bins, 1)
	assert.Equal(t, 7.0, bins[0].Lo)
	assert.Equal(t, 7.0, bins[0].Hi)
	assert.True(t, bins[0].LoClosed)

	mixed := wrangle.NewColumn("x", []wrangle.Cell{
		wrangle.Int(7), wrangle.Missing, wrangle.Int(7),
	})
	cat, err = categorize.CutWidth(mixed, 1)
	require.NoError(t, err)
	labels := labelsOf(t, cat)
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, "null", labels[1])
}

func TestCutMissingPropagates(t *testing.T) {
	col := wrangle.NewColumn("x", []wrangle.Cell{
		wrangle.Int(1), wrangle.Missing, wrangle.Int(3),
	})
	cat, err := categorize.Cut(col, []float64{0, 5}, []string{"in"})
	require.NoError(t, err)
	cells := cat.Column("c")
	mid, _ := cells.At(1)
	assert.True(t, mid.IsMissing())
}

func TestQCutHalves(t *testing.T) {
	col := wrangle.NewIntColumn("x", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	cat, err := categorize.QCut(col, []float64{0, 0.5, 1}, []string{"low", "high"})
	require.NoError(t, err)
	counts := map[string]int{}
	for _, label := range labelsOf(t, cat) {
		counts[label]++
	}
	assert.Equal(t, map[string]int{"low": 5, "high": 5}, counts)
}

func TestQCutBoundaryTieGoesLow(t *testing.T) {
	// The median of 1..9 is 5; the value 5 itself must land in the
	// lower bin.
	col := wrangle.NewIntColumn("x", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	cat, err := categorize.QCut(col, []float64{0, 0.5, 1}, []string{"low", "high"})
	require.NoError(t, err)
	labels := labelsOf(t, cat)
	assert.Equal(t, "low", labels[4])
	counts := map[string]int{}
	for _, label := range labels {
		counts[label]++
	}
	assert.Equal(t, map[string]int{"low": 5, "high": 4}, counts)
}

func TestQCutErrors(t *testing.T) {
	col := wrangle.NewColumn("x", []wrangle.Cell{wrangle.Int(1), wrangle.Missing})
	_, err := categorize.QCut(col, []float64{0, 0.5, 1}, nil)
	require.ErrorIs(t, err, wrangle.ErrInsufficientData)

	ok := wrangle.NewIntColumn("x", []int64{1, 2, 3})
	_, err = categorize.QCut(ok, []float64{0, 1.5}, nil)
	require.ErrorIs(t, err, wrangle.ErrDegenerateRange)
	_, err = categorize.QCut(ok, []float64{0.5, 0.5}, nil)
	require.ErrorIs(t, err, wrangle.ErrDegenerateRange)
	_, err = categorize.QCut(ok, []float64{0, 0.5, 1}, []string{"a", "b", "c"})
	require.ErrorIs(t, err, wrangle.ErrLabelCountMismatch)
}

package transform_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrangledata/wrangle"
	"github.com/wrangledata/wrangle/transform"
)

// likert is a 7-point agreement scale response set.
var likert = []int64{1, 7, 3, 4, 4, 4, 2, 6, 5, 5}

func floats(t *testing.T, col wrangle.Column) []float64 {
	fs, miss, err := col.Floats()
	require.NoError(t, err)
	for i, m := range miss {
		require.False(t, m, "unexpected missing at %d", i)
	}
	return fs
}

func TestShiftAbsSign(t *testing.T) {
	col := wrangle.NewIntColumn("opinion", likert)

	centered := transform.Map(col, transform.Shift(-4))
	assert.Equal(t, []float64{-3, 3, -1, 0, 0, 0, -2, 2, 1, 1}, floats(t, centered))
	assert.Equal(t, "opinion", centered.Name())

	strength := transform.Map(centered, transform.Abs())
	assert.Equal(t, []float64{3, 3, 1, 0, 0, 0, 2, 2, 1, 1}, floats(t, strength))

	direction := transform.Map(centered, transform.Sign())
	assert.Equal(t, []float64{-1, 1, -1, 0, 0, 0, -1, 1, 1, 1}, floats(t, direction))
}

func TestMapNonNumericBecomesMissing(t *testing.T) {
	col := wrangle.NewColumn("mixed", []wrangle.Cell{
		wrangle.Int(2), wrangle.String("x"), wrangle.Missing,
	})
	out := transform.Map(col, transform.Abs())
	c0, err := out.At(0)
	require.NoError(t, err)
	assert.Equal(t, wrangle.Float(2), c0)
	c1, err := out.At(1)
	require.NoError(t, err)
	assert.True(t, c1.IsMissing())
	c2, err := out.At(2)
	require.NoError(t, err)
	assert.True(t, c2.IsMissing())
}

func TestMapCopies(t *testing.T) {
	col := wrangle.NewIntColumn("n", []int64{1, 2})
	_ = transform.Map(col, transform.Shift(10))
	orig, err := col.At(0)
	require.NoError(t, err)
	assert.Equal(t, wrangle.Int(1), orig)
}

func TestDerive(t *testing.T) {
	tbl, err := wrangle.New(
		wrangle.NewStringColumn("first", []string{"ann", "ben"}),
		wrangle.NewStringColumn("last", []string{"ames", "bond"}),
	)
	require.NoError(t, err)
	out, err := transform.Derive(tbl, "full", func(row wrangle.Row) (wrangle.Cell, error) {
		first, err := row.Cell("first")
		if err != nil {
			return wrangle.Missing, err
		}
		last, err := row.Cell("last")
		if err != nil {
			return wrangle.Missing, err
		}
		return wrangle.String(first.String() + " " + last.String()), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "last", "full"}, out.Names())
	col, err := out.Column("full")
	require.NoError(t, err)
	cell, err := col.At(1)
	require.NoError(t, err)
	assert.Equal(t, wrangle.String("ben bond"), cell)
	// The input table is untouched.
	assert.Equal(t, []string{"first", "last"}, tbl.Names())
}

func TestDeriveError(t *testing.T) {
	tbl, err := wrangle.New(wrangle.NewIntColumn("n", []int64{1}))
	require.NoError(t, err)
	boom := errors.New("boom")
	_, err = transform.Derive(tbl, "bad", func(wrangle.Row) (wrangle.Cell, error) {
		return wrangle.Missing, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestMapColumns(t *testing.T) {
	tbl, err := wrangle.New(
		wrangle.NewStringColumn("a", []string{"x", "y"}),
		wrangle.NewStringColumn("b", []string{"p", "q"}),
	)
	require.NoError(t, err)
	out, err := transform.MapColumns(tbl, func(col wrangle.Column) (wrangle.Column, error) {
		return transform.Map(col, func(c wrangle.Cell) wrangle.Cell {
			return wrangle.String(strings.ToUpper(c.String()))
		}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Names())
	col, err := out.Column("b")
	require.NoError(t, err)
	cell, err := col.At(0)
	require.NoError(t, err)
	assert.Equal(t, wrangle.String("P"), cell)
}

func TestMapColumnsError(t *testing.T) {
	tbl, err := wrangle.New(
		wrangle.NewIntColumn("a", []int64{1}),
		wrangle.NewIntColumn("b", []int64{2}),
	)
	require.NoError(t, err)
	boom := errors.New("boom")
	_, err = transform.MapColumns(tbl, func(wrangle.Column) (wrangle.Column, error) {
		return wrangle.Column{}, boom
	})
	require.ErrorIs(t, err, boom)
}

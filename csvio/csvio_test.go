package csvio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrangledata/wrangle"
	"github.com/wrangledata/wrangle/csvio"
)

func TestReadInference(t *testing.T) {
	const input = `id,score,height,alive,note
1,6.5,172,true,fine
2,NA,180,false,
3,9.1,x,true,9`
	tbl, err := csvio.NewReader(strings.NewReader(input)).Read()
	require.NoError(t, err)
	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)

	kind := func(name string) wrangle.Kind {
		col, err := tbl.Column(name)
		require.NoError(t, err)
		return col.Kind()
	}
	assert.Equal(t, wrangle.KindInt, kind("id"))
	assert.Equal(t, wrangle.KindFloat, kind("score"))
	// One non-numeric field forces the whole column to string.
	assert.Equal(t, wrangle.KindString, kind("height"))
	assert.Equal(t, wrangle.KindBool, kind("alive"))
	assert.Equal(t, wrangle.KindString, kind("note"))

	score, err := tbl.Column("score")
	require.NoError(t, err)
	cell, err := score.At(1)
	require.NoError(t, err)
	assert.True(t, cell.IsMissing())
	note, err := tbl.Column("note")
	require.NoError(t, err)
	cell, err = note.At(2)
	require.NoError(t, err)
	assert.Equal(t, wrangle.String("9"), cell)
}

func TestReadMissingTokens(t *testing.T) {
	const input = "v\nnull\nNA\n\"\"\n3"
	tbl, err := csvio.NewReader(strings.NewReader(input)).Read()
	require.NoError(t, err)
	col, err := tbl.Column("v")
	require.NoError(t, err)
	assert.Equal(t, wrangle.KindInt, col.Kind())
	for pos := 0; pos < 3; pos++ {
		cell, err := col.At(pos)
		require.NoError(t, err)
		assert.True(t, cell.IsMissing(), "position %d", pos)
	}
}

func TestReadRagged(t *testing.T) {
	const input = "a,b\n1,2\n3"
	_, err := csvio.NewReader(strings.NewReader(input)).Read()
	require.ErrorIs(t, err, wrangle.ErrShapeMismatch)
}

func TestReadEmpty(t *testing.T) {
	_, err := csvio.NewReader(strings.NewReader("")).Read()
	require.Error(t, err)
}

func TestReadTabSeparated(t *testing.T) {
	const input = "a\tb\n1\tx"
	tbl, err := csvio.NewReaderWithOpts(strings.NewReader(input), csvio.ReaderOpts{Comma: '\t'}).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestWriteRoundTrip(t *testing.T) {
	orig, err := wrangle.New(
		wrangle.NewIntColumn("id", []int64{1, 2, 3}),
		wrangle.NewColumn("score", []wrangle.Cell{
			wrangle.Float(6.5), wrangle.Missing, wrangle.Float(9.25),
		}),
		wrangle.NewStringColumn("name", []string{"ann", "ben", "cal"}),
		wrangle.NewBoolColumn("alive", []bool{true, false, true}),
	)
	require.NoError(t, err)

	var buf strings.Builder
	w := csvio.NewWriter(&buf)
	require.NoError(t, w.Write(orig))
	require.NoError(t, w.Flush())

	back, err := csvio.NewReader(strings.NewReader(buf.String())).Read()
	require.NoError(t, err)
	assert.Equal(t, orig.Names(), back.Names())
	assert.Equal(t, orig.RowMajor(), back.RowMajor())
}

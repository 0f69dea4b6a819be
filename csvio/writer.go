package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/wrangledata/wrangle"
)

// Writer renders tables as delimited text: a header row of column
// names, then one record per row.  Missing cells write as empty fields,
// so a written table reads back with the same missing mask.  The row
// index is not serialized.
type Writer struct {
	writer *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: csv.NewWriter(w)}
}

func (w *Writer) Write(t *wrangle.Table) error {
	if err := w.writer.Write(t.Names()); err != nil {
		return err
	}
	rows, ncols := t.Shape()
	record := make([]string, ncols)
	for pos := 0; pos < rows; pos++ {
		cells, err := t.Row(pos)
		if err != nil {
			return err
		}
		for i, cell := range cells {
			record[i] = formatField(cell)
		}
		if err := w.writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error {
	w.writer.Flush()
	return w.writer.Error()
}

func formatField(c wrangle.Cell) string {
	switch c.Kind() {
	case wrangle.KindMissing:
		return ""
	case wrangle.KindFloat:
		f, _ := c.Float()
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return c.String()
	}
}

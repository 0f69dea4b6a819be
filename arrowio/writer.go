// Package arrowio converts tables to and from the Arrow IPC stream
// format, the columnar interchange format the rest of the data
// ecosystem speaks.  The closed cell variant maps onto int64, float64,
// utf8, and bool fields, with Missing as Arrow nulls.  The row index is
// not serialized; Arrow rows are positional.
package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/wrangledata/wrangle"
)

var ErrUnsupportedType = errors.New("arrowio: unsupported type")

// Writer writes tables to one Arrow IPC stream.  The first table fixes
// the schema; later tables must carry the same column names and dtypes
// and append as further record batches.
type Writer struct {
	w       io.Writer
	writer  *ipc.Writer
	schema  *arrow.Schema
	builder *array.RecordBuilder
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Close() error {
	if w.writer == nil {
		return nil
	}
	w.builder.Release()
	err := w.writer.Close()
	w.writer = nil
	return err
}

func (w *Writer) Write(t *wrangle.Table) error {
	if w.writer == nil {
		schema, err := newSchema(t)
		if err != nil {
			return err
		}
		w.schema = schema
		w.builder = array.NewRecordBuilder(memory.DefaultAllocator, schema)
		w.writer = ipc.NewWriter(w.w, ipc.WithSchema(schema))
	}
	schema, err := newSchema(t)
	if err != nil {
		return err
	}
	if !schema.Equal(w.schema) {
		return fmt.Errorf("%w: table schema differs from the stream's schema", wrangle.ErrSchemaMismatch)
	}
	rows, ncols := t.Shape()
	for i := 0; i < ncols; i++ {
		col, _ := t.ColumnAt(i)
		if err := appendColumn(w.builder.Field(i), col, rows); err != nil {
			return err
		}
	}
	rec := w.builder.NewRecord()
	defer rec.Release()
	return w.writer.Write(rec)
}

func newSchema(t *wrangle.Table) (*arrow.Schema, error) {
	_, ncols := t.Shape()
	fields := make([]arrow.Field, ncols)
	for i := 0; i < ncols; i++ {
		col, _ := t.ColumnAt(i)
		dt, err := newArrowType(col)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: col.Name(), Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

func newArrowType(col wrangle.Column) (arrow.DataType, error) {
	switch kind := col.Kind(); kind {
	case wrangle.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case wrangle.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case wrangle.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case wrangle.KindString, wrangle.KindMissing:
		// An all-missing column has no better carrier than a null
		// string field.
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
}

func appendColumn(b array.Builder, col wrangle.Column, rows int) error {
	for pos := 0; pos < rows; pos++ {
		cell, err := col.At(pos)
		if err != nil {
			return err
		}
		if cell.IsMissing() {
			b.AppendNull()
			continue
		}
		switch b := b.(type) {
		case *array.Int64Builder:
			v, _ := cell.Int()
			b.Append(v)
		case *array.Float64Builder:
			v, _ := cell.Float()
			b.Append(v)
		case *array.BooleanBuilder:
			v, _ := cell.Bool()
			b.Append(v)
		case *array.StringBuilder:
			b.Append(cell.String())
		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedType, b)
		}
	}
	return nil
}

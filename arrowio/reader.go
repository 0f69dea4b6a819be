package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/wrangledata/wrangle"
)

// Reader reads an Arrow IPC stream whose fields fit the closed cell
// variant and assembles the batches into one table with a sequential
// index.
type Reader struct {
	rr *ipc.Reader
}

func NewReader(r io.Reader) (*Reader, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, err
	}
	for _, f := range rr.Schema().Fields() {
		if !supported(f.Type) {
			rr.Release()
			return nil, fmt.Errorf("%w: field %q has type %s", ErrUnsupportedType, f.Name, f.Type)
		}
	}
	return &Reader{rr: rr}, nil
}

func (r *Reader) Close() error {
	if r.rr != nil {
		r.rr.Release()
		r.rr = nil
	}
	return nil
}

func supported(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.INT64, arrow.FLOAT64, arrow.STRING, arrow.BOOL:
		return true
	}
	return false
}

// Read consumes the whole stream and returns it as a table.
func (r *Reader) Read() (*wrangle.Table, error) {
	fields := r.rr.Schema().Fields()
	cells := make([][]wrangle.Cell, len(fields))
	for r.rr.Next() {
		rec := r.rr.Record()
		for i := range fields {
			cells[i] = appendCells(cells[i], rec.Column(i))
		}
	}
	if err := r.rr.Err(); err != nil {
		return nil, err
	}
	cols := make([]wrangle.Column, len(fields))
	for i, f := range fields {
		cols[i] = wrangle.NewColumn(f.Name, cells[i])
	}
	return wrangle.New(cols...)
}

func appendCells(cells []wrangle.Cell, arr arrow.Array) []wrangle.Cell {
	n := arr.Len()
	for i := 0; i < n; i++ {
		if arr.IsNull(i) {
			cells = append(cells, wrangle.Missing)
			continue
		}
		switch arr := arr.(type) {
		case *array.Int64:
			cells = append(cells, wrangle.Int(arr.Value(i)))
		case *array.Float64:
			cells = append(cells, wrangle.Float(arr.Value(i)))
		case *array.String:
			cells = append(cells, wrangle.String(arr.Value(i)))
		case *array.Boolean:
			cells = append(cells, wrangle.Bool(arr.Value(i)))
		default:
			cells = append(cells, wrangle.Missing)
		}
	}
	return cells
}

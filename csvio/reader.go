// Package csvio reads and writes tables as delimited text.  It is the
// external collaborator of the engine's import contract: parsing
// produces a rectangular columnar structure before any table is
// constructed, and a ragged file fails the shape check rather than
// producing a lopsided table.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wrangledata/wrangle"
	"go.uber.org/zap"
)

// ReaderOpts configures a Reader.  The zero value reads comma-separated
// text silently.
type ReaderOpts struct {
	// Comma is the field delimiter; 0 means ','.
	Comma rune
	// Logger, when set, debug-logs the dtype inferred for each column.
	Logger *zap.Logger
}

// Reader parses delimited text with a header row into a table.  Column
// dtypes are inferred per column: int if every non-missing field parses
// as an integer, then float, then bool, else string.  Empty fields and
// the tokens "NA" and "null" read as Missing.
type Reader struct {
	reader *csv.Reader
	logger *zap.Logger
}

func NewReader(r io.Reader) *Reader {
	return NewReaderWithOpts(r, ReaderOpts{})
}

func NewReaderWithOpts(r io.Reader, opts ReaderOpts) *Reader {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.ReuseRecord = true
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{reader: reader, logger: logger}
}

// Read consumes the whole input and returns it as a table with the
// default sequential index.
func (r *Reader) Read() (*wrangle.Table, error) {
	hdr, err := r.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty csv input")
		}
		return nil, err
	}
	names := make([]string, len(hdr))
	copy(names, hdr)
	fields := make([][]string, len(names))
	for {
		rec, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", wrangle.ErrShapeMismatch, parseErr.Line, len(rec), len(names))
			}
			return nil, err
		}
		for i := range names {
			fields[i] = append(fields[i], rec[i])
		}
	}
	src := &columnSource{names: names, columns: make(map[string][]wrangle.Cell, len(names))}
	for i, name := range names {
		cells, kind := inferColumn(fields[i])
		r.logger.Debug("inferred column type",
			zap.String("column", name),
			zap.Stringer("type", kind))
		src.columns[name] = cells
	}
	return wrangle.FromSource(src, nil)
}

// columnSource implements wrangle.ColumnSource over parsed fields.
type columnSource struct {
	names   []string
	columns map[string][]wrangle.Cell
}

func (s *columnSource) Names() []string { return s.names }

func (s *columnSource) Column(name string) []wrangle.Cell { return s.columns[name] }

func isMissingToken(field string) bool {
	return field == "" || field == "NA" || field == "null"
}

// inferColumn picks the narrowest dtype that fits every non-missing
// field and converts the fields to cells of that dtype.
func inferColumn(fields []string) ([]wrangle.Cell, wrangle.Kind) {
	allInt, allFloat, allBool, any := true, true, true, false
	for _, field := range fields {
		if isMissingToken(field) {
			continue
		}
		any = true
		if allInt {
			if _, err := strconv.ParseInt(field, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(field, 64); err != nil {
				allFloat = false
			}
		}
		if allBool && field != "true" && field != "false" {
			allBool = false
		}
	}
	var kind wrangle.Kind
	switch {
	case !any:
		kind = wrangle.KindMissing
	case allInt:
		kind = wrangle.KindInt
	case allFloat:
		kind = wrangle.KindFloat
	case allBool:
		kind = wrangle.KindBool
	default:
		kind = wrangle.KindString
	}
	cells := make([]wrangle.Cell, len(fields))
	for i, field := range fields {
		if isMissingToken(field) {
			cells[i] = wrangle.Missing
			continue
		}
		switch kind {
		case wrangle.KindInt:
			v, _ := strconv.ParseInt(field, 10, 64)
			cells[i] = wrangle.Int(v)
		case wrangle.KindFloat:
			v, _ := strconv.ParseFloat(field, 64)
			cells[i] = wrangle.Float(v)
		case wrangle.KindBool:
			cells[i] = wrangle.Bool(field == "true")
		default:
			cells[i] = wrangle.String(field)
		}
	}
	return cells, kind
}

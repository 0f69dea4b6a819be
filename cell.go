package wrangle

import (
	"strconv"
	"strings"
)

// Kind enumerates the closed set of cell types.  The engine never needs
// arbitrary extensibility, so Cell is a closed tagged variant rather than
// an open dynamic type.
type Kind int

const (
	KindMissing Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Cell is a single tabular value: an int64, a float64, a string, a bool,
// or Missing.  The zero value is Missing.  Cells are immutable and
// comparable, so a Cell may be used directly as a map key when grouping.
type Cell struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Missing is the absent-value cell.  It propagates through comparisons
// (which evaluate false) and transformations (which yield Missing) rather
// than raising errors.
var Missing = Cell{}

func Int(v int64) Cell     { return Cell{kind: KindInt, i: v} }
func Float(v float64) Cell { return Cell{kind: KindFloat, f: v} }
func String(v string) Cell { return Cell{kind: KindString, s: v} }
func Bool(v bool) Cell     { return Cell{kind: KindBool, b: v} }

func (c Cell) Kind() Kind      { return c.kind }
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// Int returns the cell's integer value.  The second return is false
// unless the cell is an int.
func (c Cell) Int() (int64, bool) {
	return c.i, c.kind == KindInt
}

// Float returns the cell's value as a float64.  Int cells coerce,
// since every numeric context in the engine treats ints and floats
// under one total order.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindFloat:
		return c.f, true
	case KindInt:
		return float64(c.i), true
	default:
		return 0, false
	}
}

// AsString returns the cell's string value.  The second return is false
// unless the cell is a string.
func (c Cell) AsString() (string, bool) {
	return c.s, c.kind == KindString
}

// Bool returns the cell's boolean value.  The second return is false
// unless the cell is a bool.
func (c Cell) Bool() (bool, bool) {
	return c.b, c.kind == KindBool
}

// String implements fmt.Stringer.  It renders a display form suitable
// for labels and logs; callers needing a specific output format should
// format the underlying value instead.
func (c Cell) String() string {
	switch c.kind {
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return c.s
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return "null"
	}
}

// Equal reports whether two cells hold the same value.  Ints and floats
// compare numerically, so Int(2) equals Float(2).  Missing equals only
// Missing.
func (c Cell) Equal(other Cell) bool {
	return CompareCells(c, other) == 0
}

// CompareCells imposes a total order over cells with the conventions of
// bytes.Compare.  Numbers order numerically (ints and floats together),
// then strings lexically, then bools with false before true.  Cells of
// different classes order by class.  Missing orders after everything,
// so an ascending sort places missing values last.
func CompareCells(a, b Cell) int {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch {
	case ra == 0: // numeric
		fa, _ := a.Float()
		fb, _ := b.Float()
		if fa < fb {
			return -1
		} else if fa > fb {
			return 1
		}
		return 0
	case ra == 1:
		return strings.Compare(a.s, b.s)
	case ra == 2:
		if a.b == b.b {
			return 0
		} else if !a.b {
			return -1
		}
		return 1
	default: // both missing
		return 0
	}
}

func (c Cell) rank() int {
	switch c.kind {
	case KindInt, KindFloat:
		return 0
	case KindString:
		return 1
	case KindBool:
		return 2
	default:
		return 3
	}
}

// appendKey appends a self-delimiting encoding of the cell to dst so
// that multi-cell grouping keys can be compared as strings without
// ambiguity between adjacent cells.  Ints and floats share one numeric
// encoding, keeping grouping consistent with Equal: Int(2) and Float(2)
// land in the same group.
func appendKey(dst []byte, c Cell) []byte {
	switch c.kind {
	case KindInt:
		dst = append(dst, 'n')
		dst = strconv.AppendInt(dst, c.i, 10)
	case KindFloat:
		dst = append(dst, 'n')
		if f := c.f; f == float64(int64(f)) {
			dst = strconv.AppendInt(dst, int64(f), 10)
		} else {
			dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
		}
	case KindString:
		dst = append(dst, 's')
		dst = strconv.AppendQuote(dst, c.s)
	case KindBool:
		dst = append(dst, 'b')
		dst = strconv.AppendBool(dst, c.b)
	default:
		dst = append(dst, 'm')
	}
	return append(dst, 0)
}

// KeyOf returns a grouping key for a tuple of cells.  Equal tuples map
// to equal keys and distinct tuples to distinct keys.
func KeyOf(cells ...Cell) string {
	var b []byte
	for _, c := range cells {
		b = appendKey(b, c)
	}
	return string(b)
}

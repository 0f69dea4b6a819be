package wrangle

import "errors"

// The engine's failure modes are all local, synchronous, and recoverable:
// an operation that fails returns one of these sentinels (usually wrapped
// with context via fmt.Errorf and %w) and leaves its inputs untouched.
// Missing values are not errors.  Out-of-range categorization, unmatched
// join keys, and division by a zero total all produce Missing cells and
// never promote to an error.
var (
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrLabelNotFound        = errors.New("label not found")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrDegenerateRange      = errors.New("degenerate range")
	ErrLabelCountMismatch   = errors.New("label count mismatch")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrNoMatchingColumns    = errors.New("no matching columns")
	ErrInconsistentSuffixes = errors.New("inconsistent stub suffixes")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrAmbiguousJoin        = errors.New("ambiguous join")
	ErrSchemaMismatch       = errors.New("schema mismatch")
)

package icons

import "fmt"

// Kind classifies pipeline failures. Callers branch on kind, never on
// message text.
type Kind int

const (
	// KindConfig marks an invalid destination or output parameters,
	// detected before any work begins.
	KindConfig Kind = iota + 1
	// KindData marks a malformed snapshot, e.g. duplicate canonical ids.
	KindData
	// KindFetch marks a single icon whose source bytes are unobtainable.
	KindFetch
	// KindPackaging marks an archive or filesystem write failure.
	KindPackaging
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindData:
		return "data"
	case KindFetch:
		return "fetch"
	case KindPackaging:
		return "packaging"
	default:
		return "unknown"
	}
}

// Error is the pipeline's tagged error type.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err with a kind and operation tag.
func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

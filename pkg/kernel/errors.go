package kernel

import "fmt"

// ErrorKind classifies generator failures.
type ErrorKind int

const (
	// KindConfiguration means a required input or parameter is missing or
	// out of range. Nothing is built.
	KindConfiguration ErrorKind = iota
	// KindInsufficientInput means there are too few points or vertices to
	// build anything. The output mesh is cleared.
	KindInsufficientInput
	// KindDegenerateGeometry means a direction or face collapsed. Generators
	// recover from this locally; it only surfaces from buffer validation.
	KindDegenerateGeometry
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInsufficientInput:
		return "insufficient input"
	case KindDegenerateGeometry:
		return "degenerate geometry"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a generator failure of a given kind.
type Error struct {
	Kind ErrorKind
	Op   string // operation that failed, e.g. "topology.Build"
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is matches any *Error of the same kind, so callers can test against the
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrConfiguration      = &Error{Kind: KindConfiguration, Msg: "invalid configuration"}
	ErrInsufficientInput  = &Error{Kind: KindInsufficientInput, Msg: "not enough input"}
	ErrDegenerateGeometry = &Error{Kind: KindDegenerateGeometry, Msg: "degenerate geometry"}
)

// Configf returns a configuration error for op.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Insufficientf returns an insufficient-input error for op.
func Insufficientf(op, format string, args ...any) error {
	return &Error{Kind: KindInsufficientInput, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Degeneratef returns a degenerate-geometry error for op.
func Degeneratef(op, format string, args ...any) error {
	return &Error{Kind: KindDegenerateGeometry, Op: op, Msg: fmt.Sprintf(format, args...)}
}

package buffer

import (
	"errors"
	"fmt"
)

// Buffer errors. Every error returned by this package wraps one of these,
// so callers can test with errors.Is.
var (
	// ErrOffsetOutOfRange reports a position outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLengthOutOfRange reports a range running past the end of the content.
	ErrLengthOutOfRange = errors.New("length out of range")

	// ErrInvalidArgument reports an argument that violates a precondition,
	// such as a zero position or a negative count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocationTooLarge reports a capacity that would overflow the
	// addressable range.
	ErrAllocationTooLarge = errors.New("allocation too large")

	// ErrLimitExceeded reports a growth request above a configured ceiling.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// Error carries the operation and the bound that was violated.
type Error struct {
	Op    string // operation name, e.g. "insert"
	Value int    // offending offset, length or size
	Bound int    // the bound it was checked against
	Msg   string // optional detail
	Err   error  // one of the sentinel errors above
}

// Error implements the error interface.
func (e *Error) Error() string {
	var detail string
	switch e.Err {
	case ErrOffsetOutOfRange:
		detail = fmt.Sprintf("offset (%d) out of range (0-%d)", e.Value, e.Bound)
	case ErrLengthOutOfRange:
		detail = fmt.Sprintf("length (%d) out of range (0-%d)", e.Value, e.Bound)
	case ErrLimitExceeded:
		detail = fmt.Sprintf("%s %d bytes (limit: %d)", e.Msg, e.Value, e.Bound)
	case ErrAllocationTooLarge:
		detail = fmt.Sprintf("buffer way too big (%d)", e.Value)
	default:
		detail = e.Err.Error()
		if e.Msg != "" {
			detail += ": " + e.Msg
		}
	}
	if e.Op == "" {
		return "buffer: " + detail
	}
	return "buffer: " + e.Op + ": " + detail
}

// Unwrap returns the sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

func offsetError(op string, off, length int) error {
	return &Error{Op: op, Value: off, Bound: length, Err: ErrOffsetOutOfRange}
}

func lengthError(op string, n, length int) error {
	return &Error{Op: op, Value: n, Bound: length, Err: ErrLengthOutOfRange}
}

func argError(op, msg string) error {
	return &Error{Op: op, Msg: msg, Err: ErrInvalidArgument}
}

// withOp stamps an operation name on an *Error produced deeper down.
func withOp(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "" {
		e.Op = op
	}
	return err
}

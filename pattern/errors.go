package pattern

import (
	"errors"
	"fmt"
)

// Matching errors. Every error from this package wraps one of these.
var (
	// ErrPattern reports a malformed pattern or replacement template.
	ErrPattern = errors.New("malformed pattern")

	// ErrTooManyCaptures reports more than MaxCaptures capture groups.
	ErrTooManyCaptures = errors.New("too many captures")

	// ErrPatternTooComplex reports that the recursion depth or step budget
	// of the Matcher ran out.
	ErrPatternTooComplex = errors.New("pattern too complex")

	// ErrReplacementType reports a replacement value that cannot become text.
	ErrReplacementType = errors.New("invalid replacement value")
)

// Error describes a failed matching operation.
type Error struct {
	Pattern string // the pattern being matched
	Msg     string // detail, e.g. "missing ']'"
	Err     error  // one of the sentinel errors above, or a callback error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("pattern: %s in %q", e.Err, e.Pattern)
	}
	return fmt.Sprintf("pattern: %s (%s) in %q", e.Err, e.Msg, e.Pattern)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid Matcher configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("pattern: invalid config %s: %s", e.Field, e.Message)
}

// abort is raised with panic inside the matcher and turned back into an
// *Error by recoverError at the entry points.
type abort struct {
	err error
	msg string
}

func raise(err error, format string, args ...any) {
	panic(abort{err: err, msg: fmt.Sprintf(format, args...)})
}

// recoverError converts an abort into an *Error stored in *errp. Other
// panics propagate.
func recoverError(pattern string, errp *error) {
	if r := recover(); r != nil {
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.err == ErrPatternTooComplex {
			log.Warningf("aborted %q: %s", pattern, a.msg)
		}
		*errp = &Error{Pattern: pattern, Msg: a.msg, Err: a.err}
	}
}

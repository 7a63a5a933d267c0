package xslua

import (
	"errors"
	"fmt"
)

// ErrArgument is wrapped by argument errors that have no deeper cause.
var ErrArgument = errors.New("invalid argument")

// ArgError reports a bad argument to a library function, numbered from 1
// the way a host reports it.
type ArgError struct {
	Func string
	Arg  int
	Err  error
}

// Error implements the error interface.
func (e *ArgError) Error() string {
	return fmt.Sprintf("bad argument #%d to '%s' (%s)", e.Arg, e.Func, e.Err)
}

// Unwrap returns the underlying error.
func (e *ArgError) Unwrap() error {
	return e.Err
}

func argError(fn string, arg int, format string, args ...any) error {
	return &ArgError{Func: fn, Arg: arg, Err: fmt.Errorf("%w: "+format, append([]any{ErrArgument}, args...)...)}
}

func wrapArg(fn string, arg int, err error) error {
	if err == nil {
		return nil
	}
	return &ArgError{Func: fn, Arg: arg, Err: err}
}

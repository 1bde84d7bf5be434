package oerror

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency is returned when a component is constructed without a collaborator it cannot run
	// without, such as a ground probe or a camera target.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInvalidParameter is returned when a configuration value is out of its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Error is a configuration or invariant fault. Op names the operation or field that failed.
type Error struct {
	Op  string
	Err error
}

// New returns an *Error with a formatted message and no operation.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Errorf(format, args...)}
}

// Wrap returns an *Error for op wrapping err.
func Wrap(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// Invalid returns an *Error for the named field wrapping ErrInvalidParameter.
func Invalid(field, format string, args ...any) *Error {
	return &Error{Op: field, Err: fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))}
}

// Missing returns an *Error for the named dependency wrapping ErrMissingDependency.
func Missing(dependency string) *Error {
	return &Error{Op: dependency, Err: ErrMissingDependency}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

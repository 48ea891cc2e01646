package property

import (
	"errors"
	"fmt"
)

// Error kinds returned by property operations. Use errors.Is to test for them.
var (
	// ErrDisposed is returned by any operation on a disposed property.
	ErrDisposed = errors.New("property is disposed")

	// ErrNotInitialized is returned by operations that need Initialize to have run.
	ErrNotInitialized = errors.New("property is not initialized")

	// ErrInvalidArgument is returned for malformed member paths, mismatched
	// converters and missing collaborators.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncompatibleRegistration is returned when a data binding is enabled or
	// disabled through a property that does not own its registration, or when
	// a registration already has an active binding.
	ErrIncompatibleRegistration = errors.New("incompatible data binding registration")
)

// Error describes a failed property operation.
type Error struct {
	Kind    error  // One of the Err* kinds
	Cause   error  // Underlying error, may be nil
	Op      string // Operation that failed
	Path    string // Path of the property, empty before initialization
	Message string // Additional detail, may be empty
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(op, path string, kind error, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Op:      op,
		Path:    path,
		Kind:    kind,
		Cause:   cause,
		Message: fmt.Sprintf(format, args...),
	}
}

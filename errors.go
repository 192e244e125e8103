package jsonpatch

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// these, so callers can match them with errors.Is.
var (
	// ErrPointerSyntax is returned for a pointer that does not start with "/",
	// or for a segment that must be an array index and is not one.
	ErrPointerSyntax = errors.New("invalid pointer")

	// ErrPathNotFound is returned when an object key that must exist does not.
	ErrPathNotFound = errors.New("path not found")

	// ErrIndexOutOfRange is returned when an array index is outside the range
	// allowed by the operation.
	ErrIndexOutOfRange = errors.New("array index out of range")

	// ErrTypeMismatch is returned when a pointer descends into a scalar.
	ErrTypeMismatch = errors.New("cannot descend into scalar value")

	// ErrMoveIntoDescendant is returned when a move destination is its source
	// or lies beneath it.
	ErrMoveIntoDescendant = errors.New("move destination is within source")

	// ErrTestFailed is returned when a test operation's value does not match.
	ErrTestFailed = errors.New("test failed")

	// ErrInvalidOperation is returned for an unknown op or a missing operand.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnsupportedType is returned when a Go value has no document form.
	ErrUnsupportedType = errors.New("unsupported value type")
)

var kinds = []error{
	ErrPointerSyntax,
	ErrPathNotFound,
	ErrIndexOutOfRange,
	ErrTypeMismatch,
	ErrMoveIntoDescendant,
	ErrTestFailed,
	ErrInvalidOperation,
	ErrUnsupportedType,
}

// OperationError reports the operation of a patch that failed.
type OperationError struct {
	// Index is the 0-based position of the operation in the patch.
	Index int
	Op    Op
	Path  string
	From  string
	Err   error
}

func (e *OperationError) Error() string {
	if e.From != "" || e.Op == Move || e.Op == Copy {
		return fmt.Sprintf("operation %d (%s from %q to %q): %v", e.Index, e.Op, e.From, e.Path, e.Err)
	}
	return fmt.Sprintf("operation %d (%s %q): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind sentinel wrapped by e, or nil if there is none.
func (e *OperationError) Kind() error {
	return KindOf(e.Err)
}

// KindOf returns the error kind sentinel wrapped by err, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

package jsonpatch

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks every operation of p without a document: the op must be
// known, pointers must parse, add/replace/test need a value and a move may
// not target its own source or a location beneath it. Unlike Apply it does
// not stop at the first problem; all of them are returned together, each as
// an *OperationError.
func (p Patch) Validate() error {
	var result *multierror.Error
	for i, op := range p {
		for _, err := range op.problems() {
			result = multierror.Append(result, &OperationError{Index: i, Op: op.Op, Path: op.Path, From: op.From, Err: err})
		}
	}
	return result.ErrorOrNil()
}

func (op Operation) problems() []error {
	var errs []error
	switch op.Op {
	case Add, Replace, Test:
		if op.Value == nil {
			errs = append(errs, missingValue(op.Op))
		}
	case Remove:
	case Move, Copy:
		fp, err := ParsePointer(op.From)
		if err != nil {
			errs = append(errs, fmt.Errorf("from: %w", err))
		}
		tp, perr := ParsePointer(op.Path)
		if perr != nil {
			errs = append(errs, fmt.Errorf("path: %w", perr))
		}
		if op.Op == Move && err == nil && perr == nil && fp.IsPrefixOf(tp) {
			errs = append(errs, fmt.Errorf("%w: cannot move %q to %q", ErrMoveIntoDescendant, op.From, op.Path))
		}
		return errs
	default:
		return append(errs, fmt.Errorf("%w: unsupported patch operation %q", ErrInvalidOperation, op.Op))
	}
	if _, err := ParsePointer(op.Path); err != nil {
		errs = append(errs, err)
	}
	return errs
}

package main

import (
	"fmt"
	"strings"
)

// MissingFlagErr is returned when a required flag is not passed. Unlike a required string flag, an empty value is
// accepted, so the flag is checked for presence only.
type MissingFlagErr struct {
	FlagName string
}

func (err MissingFlagErr) Error() string {
	return fmt.Sprintf("The --%s flag is required.", err.FlagName)
}

// InvalidPatchErr is returned when a patch fails validation.
type InvalidPatchErr struct {
	PatchPath string
	Problems  int
}

func (err InvalidPatchErr) Error() string {
	return fmt.Sprintf("Patch %s has %d problem(s).", err.PatchPath, err.Problems)
}

// StdinConflictErr is returned when more than one input is read from stdin.
type StdinConflictErr struct {
	FlagNames []string
}

func (err StdinConflictErr) Error() string {
	return fmt.Sprintf("Only one of --%s can read from stdin.", strings.Join(err.FlagNames, ", --"))
}

// PatchFailedErr is returned when an operation of a valid patch fails against the document. The failure itself is
// printed by the reporter; Err holds the *jsonpatch.OperationError.
type PatchFailedErr struct {
	PatchPath string
	Index     int
	Err       error
}

func (err PatchFailedErr) Error() string {
	return fmt.Sprintf("Patch %s failed at operation %d.", err.PatchPath, err.Index)
}

func (err PatchFailedErr) Unwrap() error {
	return err.Err
}

package jsonpatch_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"

	jsonpatch "github.com/agentflare-ai/cowpatch"
)

func TestValidate(t *testing.T) {
	var valid jsonpatch.Patch
	valid.Add("/a", jsonpatch.NewInt(1)).
		Remove("/b/0").
		Replace("", jsonpatch.Null{}).
		Move("/a", "/c").
		Copy("/c", "/d/-").
		Test("/d", jsonpatch.NewArray())
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	invalid := jsonpatch.Patch{
		{Op: jsonpatch.Add, Path: "/a"},
		{Op: jsonpatch.Remove, Path: "b"},
		{Op: jsonpatch.Move, From: "/a", Path: "/a/b"},
		{Op: jsonpatch.Copy, From: "x", Path: "y"},
		{Op: "merge", Path: "/a"},
		{Op: jsonpatch.Test, Path: "/a", Value: jsonpatch.Bool(true)},
	}
	err := invalid.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected *multierror.Error, got %T", err)
	}

	expected := []struct {
		index int
		kind  error
	}{
		{0, jsonpatch.ErrInvalidOperation},
		{1, jsonpatch.ErrPointerSyntax},
		{2, jsonpatch.ErrMoveIntoDescendant},
		{3, jsonpatch.ErrPointerSyntax},
		{3, jsonpatch.ErrPointerSyntax},
		{4, jsonpatch.ErrInvalidOperation},
	}
	if len(merr.Errors) != len(expected) {
		t.Fatalf("expected %d problems, got %d: %v", len(expected), len(merr.Errors), err)
	}
	for i, e := range expected {
		var opErr *jsonpatch.OperationError
		if !errors.As(merr.Errors[i], &opErr) {
			t.Fatalf("problem %d is %T, not *OperationError", i, merr.Errors[i])
		}
		if opErr.Index != e.index || opErr.Kind() != e.kind {
			t.Errorf("problem %d = (index %d, %v), want (index %d, %v)", i, opErr.Index, opErr.Kind(), e.index, e.kind)
		}
	}
}

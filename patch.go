// Package jsonpatch applies JSON Patch (RFC 6902) operations to immutable
// documents.
//
// Apply never modifies its input. Each operation rebuilds only the containers
// on the path it touches and shares every other subtree with the document it
// was given, so applying a patch costs time proportional to the paths it
// edits, not to the size of the document.
package jsonpatch

import "fmt"

// Op represents JSON Patch operation types
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// Operation represents a single JSON Patch operation. Path and From hold
// pointers in string form; they are parsed when the operation runs.
type Operation struct {
	Op    Op
	Path  string
	From  string
	Value Value
}

// Patch represents a collection of JSON Patch operations
type Patch []Operation

// Add appends an add operation.
func (p *Patch) Add(path string, v Value) *Patch {
	*p = append(*p, Operation{Op: Add, Path: path, Value: v})
	return p
}

// Remove appends a remove operation.
func (p *Patch) Remove(path string) *Patch {
	*p = append(*p, Operation{Op: Remove, Path: path})
	return p
}

// Replace appends a replace operation.
func (p *Patch) Replace(path string, v Value) *Patch {
	*p = append(*p, Operation{Op: Replace, Path: path, Value: v})
	return p
}

// Move appends a move operation.
func (p *Patch) Move(from, path string) *Patch {
	*p = append(*p, Operation{Op: Move, From: from, Path: path})
	return p
}

// Copy appends a copy operation.
func (p *Patch) Copy(from, path string) *Patch {
	*p = append(*p, Operation{Op: Copy, From: from, Path: path})
	return p
}

// Test appends a test operation.
func (p *Patch) Test(path string, v Value) *Patch {
	*p = append(*p, Operation{Op: Test, Path: path, Value: v})
	return p
}

// Apply applies a series of JSON Patch operations to a document, returning a
// new document. The original document is not changed and shares every
// subtree the patch leaves alone with the result.
//
// Operations run in order, each seeing the result of the one before. The
// first failing operation stops the patch and is reported as an
// *OperationError; no partial result is returned.
func Apply(document Value, patch Patch) (Value, error) {
	for i, op := range patch {
		var err error
		document, err = op.apply(document)
		if err != nil {
			return nil, &OperationError{Index: i, Op: op.Op, Path: op.Path, From: op.From, Err: err}
		}
	}
	return document, nil
}

// ApplyAny is Apply for documents held as plain Go values, such as those
// decoded by encoding/json. The result uses the same representation as ToGo.
func ApplyAny(document any, patch Patch) (any, error) {
	doc, err := FromGo(document)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}
	res, err := Apply(doc, patch)
	if err != nil {
		return nil, err
	}
	return ToGo(res), nil
}

func (op Operation) apply(doc Value) (Value, error) {
	switch op.Op {
	case Add:
		return applyAdd(doc, op.Path, op.Value)
	case Remove:
		return applyRemove(doc, op.Path)
	case Replace:
		return applyReplace(doc, op.Path, op.Value)
	case Move:
		return applyMove(doc, op.From, op.Path)
	case Copy:
		return applyCopy(doc, op.From, op.Path)
	case Test:
		return applyTest(doc, op.Path, op.Value)
	}
	return nil, fmt.Errorf("%w: unsupported patch operation %q", ErrInvalidOperation, op.Op)
}

func applyAdd(doc Value, path string, v Value) (Value, error) {
	if v == nil {
		return nil, missingValue(Add)
	}
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	return add(p, v, doc)
}

func applyRemove(doc Value, path string) (Value, error) {
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	return remove(p, doc)
}

func applyReplace(doc Value, path string, v Value) (Value, error) {
	if v == nil {
		return nil, missingValue(Replace)
	}
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	return replace(p, v, doc)
}

func applyMove(doc Value, from, to string) (Value, error) {
	fp, tp, err := parseFromTo(from, to)
	if err != nil {
		return nil, err
	}
	if fp.IsPrefixOf(tp) {
		return nil, fmt.Errorf("%w: cannot move %q to %q", ErrMoveIntoDescendant, from, to)
	}
	val, err := resolve(fp, doc)
	if err != nil {
		return nil, err
	}
	pruned, err := remove(fp, doc)
	if err != nil {
		return nil, err
	}
	return add(tp, val, pruned)
}

func applyCopy(doc Value, from, to string) (Value, error) {
	fp, tp, err := parseFromTo(from, to)
	if err != nil {
		return nil, err
	}
	val, err := resolve(fp, doc)
	if err != nil {
		return nil, err
	}
	return add(tp, val, doc)
}

func applyTest(doc Value, path string, expected Value) (Value, error) {
	if expected == nil {
		return nil, missingValue(Test)
	}
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	actual, err := resolve(p, doc)
	if err != nil {
		return nil, err
	}
	if !Equal(actual, expected) {
		return nil, fmt.Errorf("%w: value at %q is not the expected %s", ErrTestFailed, path, expected.Kind())
	}
	return doc, nil
}

func parseFromTo(from, to string) (Pointer, Pointer, error) {
	fp, err := ParsePointer(from)
	if err != nil {
		return nil, nil, fmt.Errorf("from: %w", err)
	}
	tp, err := ParsePointer(to)
	if err != nil {
		return nil, nil, fmt.Errorf("path: %w", err)
	}
	return fp, tp, nil
}

func missingValue(op Op) error {
	return fmt.Errorf("%w: %s requires a value", ErrInvalidOperation, op)
}

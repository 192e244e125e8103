package main

import (
	"bytes"
	goerrors "errors"
	"io"
	"os"

	"github.com/gruntwork-io/gruntwork-cli/errors"
	"github.com/hashicorp/go-multierror"

	jsonpatch "github.com/agentflare-ai/cowpatch"
	"github.com/agentflare-ai/cowpatch/codec"
	"github.com/agentflare-ai/cowpatch/internal/logging"
)

// stdinPath makes a file flag read from stdin.
const stdinPath = "-"

type applyOptions struct {
	DocumentPath string
	PatchPath    string
	OutputPath   string
	Format       codec.Format
	Diff         bool
}

// runApply decodes the document and patch named by opts, applies the patch and writes the result. The output is only
// written once every operation has succeeded.
func runApply(opts applyOptions, stdin io.Reader, stdout io.Writer, rep *reporter) error {
	logger := logging.GetProjectLogger()

	if opts.DocumentPath == stdinPath && opts.PatchPath == stdinPath {
		return errors.WithStackTrace(StdinConflictErr{FlagNames: []string{documentFlag.Name, patchFlag.Name}})
	}

	doc, err := readDocument(opts.DocumentPath, stdin)
	if err != nil {
		return err
	}
	patch, err := readPatch(opts.PatchPath, stdin, rep)
	if err != nil {
		return err
	}

	logger.Debugf("Applying %d operation(s) from %s to %s", len(patch), opts.PatchPath, opts.DocumentPath)
	result, err := jsonpatch.Apply(doc, patch)
	if err != nil {
		rep.failure(err)
		index := -1
		var opErr *jsonpatch.OperationError
		if goerrors.As(err, &opErr) {
			index = opErr.Index
		}
		return errors.WithStackTrace(PatchFailedErr{PatchPath: opts.PatchPath, Index: index, Err: err})
	}

	if opts.Diff {
		before, err := encodeString(doc, opts.Format)
		if err != nil {
			return err
		}
		after, err := encodeString(result, opts.Format)
		if err != nil {
			return err
		}
		rep.diff(before, after)
	}

	var out bytes.Buffer
	if err := codec.Encode(&out, result, opts.Format); err != nil {
		return errors.WithStackTrace(err)
	}
	if opts.OutputPath == "" {
		_, err = stdout.Write(out.Bytes())
	} else {
		err = os.WriteFile(opts.OutputPath, out.Bytes(), 0644)
	}
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logger.Infof("Applied %d operation(s) to %s", len(patch), opts.DocumentPath)
	return nil
}

// runValidate reports every structural problem in the patch.
func runValidate(patchPath string, stdin io.Reader, rep *reporter) error {
	logger := logging.GetProjectLogger()
	patch, err := readPatch(patchPath, stdin, rep)
	if err != nil {
		return err
	}
	logger.Infof("Patch %s is valid (%d operation(s))", patchPath, len(patch))
	return nil
}

// runGet prints the value addressed by pointer.
func runGet(documentPath, pointer string, format codec.Format, stdin io.Reader, stdout io.Writer) error {
	doc, err := readDocument(documentPath, stdin)
	if err != nil {
		return err
	}
	v, err := jsonpatch.Get(doc, pointer)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	if err := codec.Encode(stdout, v, format); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

func readDocument(path string, stdin io.Reader) (jsonpatch.Value, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return doc, nil
}

func readPatch(path string, stdin io.Reader, rep *reporter) (jsonpatch.Patch, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	patch, err := codec.DecodePatch(data)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if err := patch.Validate(); err != nil {
		rep.problems(err)
		return nil, errors.WithStackTrace(InvalidPatchErr{PatchPath: path, Problems: countProblems(err)})
	}
	return patch, nil
}

func countProblems(err error) int {
	var merr *multierror.Error
	if goerrors.As(err, &merr) {
		return len(merr.Errors)
	}
	return 1
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return data, nil
}

func encodeString(v jsonpatch.Value, format codec.Format) (string, error) {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, v, format); err != nil {
		return "", errors.WithStackTrace(err)
	}
	return buf.String(), nil
}

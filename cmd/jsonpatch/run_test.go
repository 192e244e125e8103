package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gruntwork-io/gruntwork-cli/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonpatch "github.com/agentflare-ai/cowpatch"
	"github.com/agentflare-ai/cowpatch/codec"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestRunApply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.json", `{"name":"web","replicas":1,"ports":[80]}`)
	patchPath := writeFile(t, dir, "patch.yaml", `
- op: replace
  path: /replicas
  value: 3
- op: add
  path: /ports/-
  value: 443
`)

	var stdout, stderr bytes.Buffer
	opts := applyOptions{DocumentPath: docPath, PatchPath: patchPath, Format: codec.JSON}
	require.NoError(t, runApply(opts, strings.NewReader(""), &stdout, newReporterTo(&stderr, false)))

	result, err := codec.DecodeDocument(stdout.Bytes())
	require.NoError(t, err)
	expected, err := codec.DecodeDocument([]byte(`{"name":"web","replicas":3,"ports":[80,443]}`))
	require.NoError(t, err)
	assert.True(t, jsonpatch.Equal(expected, result), stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunApplyFromStdinToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	patchPath := writeFile(t, dir, "patch.json", `[{"op":"remove","path":"/b"}]`)
	outPath := filepath.Join(dir, "out.yaml")

	var stdout, stderr bytes.Buffer
	opts := applyOptions{DocumentPath: stdinPath, PatchPath: patchPath, OutputPath: outPath, Format: codec.YAML, Diff: true}
	require.NoError(t, runApply(opts, strings.NewReader(`{"a":1,"b":2}`), &stdout, newReporterTo(&stderr, false)))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
	assert.Contains(t, stderr.String(), " a: 1\n")
	assert.Contains(t, stderr.String(), "-b: 2\n")
}

func TestRunApplyFailureWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.json", `{"a":1}`)
	patchPath := writeFile(t, dir, "patch.json", `[{"op":"add","path":"/b","value":2},{"op":"test","path":"/a","value":2}]`)
	outPath := filepath.Join(dir, "out.json")

	var stdout, stderr bytes.Buffer
	opts := applyOptions{DocumentPath: docPath, PatchPath: patchPath, OutputPath: outPath, Format: codec.JSON}
	err := runApply(opts, strings.NewReader(""), &stdout, newReporterTo(&stderr, false))
	require.Error(t, err)
	assert.ErrorIs(t, errors.Unwrap(err), jsonpatch.ErrTestFailed)
	assert.Equal(t, jsonpatch.ErrTestFailed, jsonpatch.KindOf(errors.Unwrap(err)))
	failed, ok := errors.Unwrap(err).(PatchFailedErr)
	require.True(t, ok, "expected PatchFailedErr, got %T", errors.Unwrap(err))
	assert.Equal(t, patchPath, failed.PatchPath)
	assert.Equal(t, 1, failed.Index)
	assert.NotContains(t, err.Error(), "test failed")
	assert.Equal(t, 1, strings.Count(stderr.String(), "[test failed] operation 1"))

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunApplyRejectsTwoStdinInputs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	opts := applyOptions{DocumentPath: stdinPath, PatchPath: stdinPath, Format: codec.JSON}
	err := runApply(opts, strings.NewReader(`{"a":1}`), &stdout, newReporterTo(&stderr, false))
	require.Error(t, err)
	assert.Equal(t, StdinConflictErr{FlagNames: []string{"document", "patch"}}, errors.Unwrap(err))
	assert.Empty(t, stdout.String())
}

func TestRunValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	validPath := writeFile(t, dir, "valid.json", `[{"op":"add","path":"/a","value":1}]`)
	invalidPath := writeFile(t, dir, "invalid.json", `[
		{"op":"add","path":"/a"},
		{"op":"remove","path":"a"},
		{"op":"move","from":"/x","path":"/x/y"}
	]`)

	var stderr bytes.Buffer
	require.NoError(t, runValidate(validPath, strings.NewReader(""), newReporterTo(&stderr, false)))
	assert.Empty(t, stderr.String())

	err := runValidate(invalidPath, strings.NewReader(""), newReporterTo(&stderr, false))
	require.Error(t, err)
	assert.Equal(t, InvalidPatchErr{PatchPath: invalidPath, Problems: 3}, errors.Unwrap(err))

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[invalid operation] operation 0"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[invalid pointer] operation 1"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "[move destination is within source] operation 2"), lines[2])
}

func TestRunGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.yaml", "spec:\n  containers:\n    - name: app\n      image: nginx\n")

	var stdout bytes.Buffer
	require.NoError(t, runGet(docPath, "/spec/containers/0/image", codec.JSON, strings.NewReader(""), &stdout))
	assert.Equal(t, "\"nginx\"\n", stdout.String())

	stdout.Reset()
	err := runGet(docPath, "/spec/containers/1", codec.JSON, strings.NewReader(""), &stdout)
	require.Error(t, err)
	assert.ErrorIs(t, errors.Unwrap(err), jsonpatch.ErrIndexOutOfRange)
	assert.Empty(t, stdout.String())
}

func TestReporterDiff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newReporterTo(&buf, false).diff("a\nb\nc\n", "a\nc\nd\n")
	assert.Equal(t, " a\n-b\n c\n+d\n", buf.String())
}

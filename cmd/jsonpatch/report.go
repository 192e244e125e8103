package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	jsonpatch "github.com/agentflare-ai/cowpatch"
)

// reporter prints patch problems and diffs for humans. Colors are only used when writing to a terminal.
type reporter struct {
	w       io.Writer
	problem *color.Color
	insert  *color.Color
	delete  *color.Color
}

func newReporter(f *os.File) *reporter {
	useColor := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return newReporterTo(f, useColor)
}

func newReporterTo(w io.Writer, useColor bool) *reporter {
	r := &reporter{
		w:       w,
		problem: color.New(color.FgRed, color.Bold),
		insert:  color.New(color.FgGreen),
		delete:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.problem, r.insert, r.delete} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// problems lists each error aggregated by Patch.Validate on its own line.
func (r *reporter) problems(err error) {
	var merr *multierror.Error
	if !goerrors.As(err, &merr) {
		r.failure(err)
		return
	}
	for _, e := range merr.Errors {
		r.failure(e)
	}
}

func (r *reporter) failure(err error) {
	var opErr *jsonpatch.OperationError
	if goerrors.As(err, &opErr) && opErr.Kind() != nil {
		r.problem.Fprintf(r.w, "[%s] ", opErr.Kind())
	}
	fmt.Fprintln(r.w, err)
}

// diff prints a line diff of before and after, prefixing removed lines with "-" and added lines with "+".
func (r *reporter) diff(before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				r.insert.Fprintln(r.w, "+"+line)
			case diffmatchpatch.DiffDelete:
				r.delete.Fprintln(r.w, "-"+line)
			default:
				fmt.Fprintln(r.w, " "+line)
			}
		}
	}
}

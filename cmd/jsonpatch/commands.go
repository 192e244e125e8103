package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gruntwork-io/gruntwork-cli/entrypoint"
	"github.com/urfave/cli"

	"github.com/agentflare-ai/cowpatch/codec"
)

var (
	documentFlag = cli.StringFlag{
		Name:  "document",
		Usage: "(Required) Path to the JSON or YAML document. Use - to read from stdin.",
	}
	patchFlag = cli.StringFlag{
		Name:  "patch",
		Usage: "(Required) Path to the JSON or YAML patch: a list of operations.",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "Where to write the result. Defaults to stdout.",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Value: string(codec.JSON),
		Usage: fmt.Sprintf("Output format. Must be one of: %s.", strings.Join(formatNames(), ", ")),
	}
	diffFlag = cli.BoolFlag{
		Name:  "diff",
		Usage: "Print a line diff between the input and the result to stderr.",
	}
	pointerFlag = cli.StringFlag{
		Name:  "pointer",
		Usage: "(Required) JSON Pointer of the value to print. The empty string selects the whole document.",
	}
)

func formatNames() []string {
	names := make([]string, len(codec.Formats))
	for i, f := range codec.Formats {
		names[i] = string(f)
	}
	return names
}

func applyCommand() cli.Command {
	return cli.Command{
		Name:  "apply",
		Usage: "Apply a patch to a document.",
		Description: `Decode the document and the patch, check the patch for structural problems, and apply every
operation in order. Nothing is written unless every operation succeeds.`,
		Action: applyAction,
		Flags: []cli.Flag{
			documentFlag,
			patchFlag,
			outputFlag,
			formatFlag,
			diffFlag,
		},
	}
}

func validateCommand() cli.Command {
	return cli.Command{
		Name:   "validate",
		Usage:  "Check a patch for structural problems without applying it.",
		Action: validateAction,
		Flags: []cli.Flag{
			patchFlag,
		},
	}
}

func getCommand() cli.Command {
	return cli.Command{
		Name:   "get",
		Usage:  "Print the value a JSON Pointer addresses inside a document.",
		Action: getAction,
		Flags: []cli.Flag{
			documentFlag,
			pointerFlag,
			formatFlag,
		},
	}
}

func applyAction(cliContext *cli.Context) error {
	documentPath, err := entrypoint.StringFlagRequiredE(cliContext, documentFlag.Name)
	if err != nil {
		return err
	}
	patchPath, err := entrypoint.StringFlagRequiredE(cliContext, patchFlag.Name)
	if err != nil {
		return err
	}
	format, err := codec.ParseFormat(cliContext.String(formatFlag.Name))
	if err != nil {
		return err
	}
	opts := applyOptions{
		DocumentPath: documentPath,
		PatchPath:    patchPath,
		OutputPath:   cliContext.String(outputFlag.Name),
		Format:       format,
		Diff:         cliContext.Bool(diffFlag.Name),
	}
	return runApply(opts, os.Stdin, os.Stdout, newReporter(os.Stderr))
}

func validateAction(cliContext *cli.Context) error {
	patchPath, err := entrypoint.StringFlagRequiredE(cliContext, patchFlag.Name)
	if err != nil {
		return err
	}
	return runValidate(patchPath, os.Stdin, newReporter(os.Stderr))
}

func getAction(cliContext *cli.Context) error {
	documentPath, err := entrypoint.StringFlagRequiredE(cliContext, documentFlag.Name)
	if err != nil {
		return err
	}
	if !cliContext.IsSet(pointerFlag.Name) {
		return MissingFlagErr{FlagName: pointerFlag.Name}
	}
	format, err := codec.ParseFormat(cliContext.String(formatFlag.Name))
	if err != nil {
		return err
	}
	return runGet(documentPath, cliContext.String(pointerFlag.Name), format, os.Stdin, os.Stdout)
}

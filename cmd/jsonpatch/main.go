package main

import (
	"github.com/gruntwork-io/gruntwork-cli/entrypoint"
	"github.com/gruntwork-io/gruntwork-cli/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/agentflare-ai/cowpatch/internal/logging"
)

// This variable is set at build time using -ldflags parameters. For example:
//
// go build -ldflags "-X main.VERSION=v0.1.0" ./cmd/jsonpatch
var VERSION string

var (
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Value: logrus.InfoLevel.String(),
	}
)

// initCli sets up the logger with the requested level before any command runs.
func initCli(cliContext *cli.Context) error {
	logLevel := cliContext.String(logLevelFlag.Name)
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logging.SetLevel(level)
	return nil
}

// main should only setup the CLI flags and help texts.
func main() {
	app := entrypoint.NewApp()
	entrypoint.HelpTextLineWidth = 120

	app.Name = "jsonpatch"
	app.Usage = "Apply JSON Patch (RFC 6902) documents to JSON and YAML files."
	app.EnableBashCompletion = true
	app.Version = VERSION

	app.Before = initCli

	app.Flags = []cli.Flag{
		logLevelFlag,
	}
	app.Commands = []cli.Command{
		applyCommand(),
		validateCommand(),
		getCommand(),
	}
	entrypoint.RunApp(app)
}

// Package main is the lines command itself.
package main

import (
	"os"

	"go.viam.com/lines/cli"
	"go.viam.com/lines/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger := logging.NewLogger("lines", logging.ERROR, logging.NewWriterAppender(os.Stderr))
		logger.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

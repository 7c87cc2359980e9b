// Package app wires fileverify application execution.
package app

import (
	"io"
	"log/slog"
	"os"

	"fileverify/internal/cli"
	apperrors "fileverify/internal/errors"
	"fileverify/internal/logging"
)

// App wires CLI execution to process streams.
type App struct {
	out    io.Writer
	errOut io.Writer
}

// New creates an App bound to stdout and stderr.
func New() App {
	return App{out: os.Stdout, errOut: os.Stderr}
}

// Run executes the application and returns a process exit code.
func (a App) Run(args []string) int {
	root := cli.NewRootCommand(a.out, a.errOut)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		logging.New(a.errOut, slog.LevelError).Error(err.Error())
		return apperrors.ExitCode(err)
	}

	return 0
}

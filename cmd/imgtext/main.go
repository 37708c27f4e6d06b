// Package main is the entry point for the imgtext CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/imgtext/internal/cli"
	"github.com/yaklabco/imgtext/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.Default()
	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.ExecuteContext(logging.WithLogger(ctx, logger)); err != nil {
		// Unresolved layouts are reported in the output; the exit code is the signal.
		if !errors.Is(err, cli.ErrUnresolved) {
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}

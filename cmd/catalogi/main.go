// Package main provides the catalogi CLI entrypoint.
//
// Usage:
//
//	catalogi <command> [subcommand] [options]
//
// Exit codes:
//   - 0: success
//   - 1: failure (empty result, bad input, service or gateway error)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/cmd"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cmd.NewApp(commit)
	app.ExitErrHandler = exitErrHandler

	if err := app.RunContext(ctx, os.Args); err != nil {
		// ExitErrHandler already handled the exit for cli.ExitCoder errors.
		// This branch handles unexpected errors that weren't wrapped.
		os.Exit(1)
	}
}

// exitErrHandler prints the error and exits with its status.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}
	os.Exit(report(os.Stderr, err))
}

// report writes the message for err to w and returns the exit status.
// Every failure maps to 1.
func report(w io.Writer, err error) int {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"; skip those.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(w, msg)
		}
		if code == 0 {
			return 0
		}
		return 1
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}

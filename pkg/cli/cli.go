// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the anchors command-line tool.
package cli

import (
	"context"
	"os"

	"github.com/cockroachdb/anchors/pkg/cli/clierror"
	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Main is the entry point for the anchors command-line tool.
func Main() {
	// A fatal log entry ends the process like an uncaught panic would.
	log.SetExitFunc(func(int) { exit.WithCode(exit.UnspecifiedGoPanic()) })
	defer recoverAndExit(context.Background())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "help")
	}

	if err := Run(os.Args[1:]); err != nil {
		exit.WithCode(clierror.GetExitCode(clierror.CheckAndMaybeLog(err, logAtSeverity)))
	}
	exit.WithCode(exit.Success())
}

// recoverAndExit reports a panic that escaped a command as a fatal log
// entry. It must be deferred directly.
func recoverAndExit(ctx context.Context) {
	if r := recover(); r != nil {
		log.Fatalf(ctx, "unexpected panic: %v", r)
	}
}

// logAtSeverity routes a message to the logging function of sev.
func logAtSeverity(ctx context.Context, sev log.Severity, format string, args ...interface{}) {
	switch sev {
	case log.SeverityInfo:
		log.Infof(ctx, format, args...)
	case log.SeverityWarning:
		log.Warningf(ctx, format, args...)
	default:
		log.Errorf(ctx, format, args...)
	}
}

// isInteractive indicates whether stdout refers to a terminal.
var isInteractive = isatty.IsTerminal(os.Stdout.Fd())

var anchorsCmd = &cobra.Command{
	Use:   "anchors [command] (flags)",
	Short: "inspect and edit persistent anchor interval stores",
	Long: `
Load sets of anchored intervals from YAML record files into an interval
store, query them, and replay edit scripts of insertions, removals and
expand/collapse operations against them.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.EnableCommandSorting = false

	anchorsCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})

	anchorsCmd.AddCommand(
		loadCmd,
		queryCmd,
		applyCmd,
		checkCmd,
	)
}

// Run executes the command line given in args. Flags start from their
// defaults on every call.
func Run(args []string) error {
	initCLIDefaults()
	resetFlagsChanged(anchorsCmd)
	if err := reapplyEnvFlags(); err != nil {
		return clierror.NewError(err, exit.CommandLineFlagError())
	}
	anchorsCmd.SetArgs(args)
	return anchorsCmd.ExecuteContext(context.Background())
}

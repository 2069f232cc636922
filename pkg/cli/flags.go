// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/anchors/pkg/cli/cliflags"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// tableDisplayFormat identifies how intervals are printed.
type tableDisplayFormat int

const (
	tableDisplayTable tableDisplayFormat = iota
	tableDisplayYAML
)

var tableDisplayFormats = [...]string{
	tableDisplayTable: "table",
	tableDisplayYAML:  "yaml",
}

// Type implements the pflag.Value interface.
func (f *tableDisplayFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *tableDisplayFormat) String() string { return tableDisplayFormats[*f] }

// Set implements the pflag.Value interface.
func (f *tableDisplayFormat) Set(s string) error {
	for i, name := range tableDisplayFormats {
		if s == name {
			*f = tableDisplayFormat(i)
			return nil
		}
	}
	return errors.Newf("invalid table display format: %s (possible values: table, yaml)", s)
}

// cliContext captures the command-line parameters shared by all
// commands. Fields are populated by the flag parsing logic and reset
// to their defaults at the beginning of every Run.
type cliContext struct {
	// configPath is the YAML file the store configuration is read from.
	configPath string
	// maxChildren and dropEmpty override the configuration file when
	// the corresponding flag was given.
	maxChildren int
	dropEmpty   bool
	verbosity   int

	logFormat      string
	logLevel       string
	redactableLogs bool

	tableDisplayFormat tableDisplayFormat
	debug              bool
	showMetrics        bool
}

var cliCtx cliContext

// queryContext captures the parameters of the query command.
var queryCtx struct {
	reverse bool
}

// initCLIDefaults sets the default values of all the context structs.
func initCLIDefaults() {
	cliCtx = cliContext{
		maxChildren:        0,
		tableDisplayFormat: tableDisplayYAML,
	}
	// Tables for humans, records for pipes.
	if isInteractive {
		cliCtx.tableDisplayFormat = tableDisplayTable
	}
	queryCtx.reverse = false
}

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be called
// at the beginning of 'fn'.
// This allows an arbitrary number of pre-run functions with ordering based
// on the order in which AddPersistentPreRunE is called (usually package init order).
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	// Save any existing hooks.
	wrapped := cmd.PersistentPreRunE

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Run the previous hook if it exists.
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}

		// Now we can call the new function.
		return fn(cmd, args)
	}
}

type envFlag struct {
	f        *pflag.FlagSet
	flagInfo cliflags.FlagInfo
}

// envFlags lists the flags that can be set through the environment, so
// that the environment can be consulted again when defaults are reset.
var envFlags []envFlag

func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		envFlags = append(envFlags, envFlag{f: f, flagInfo: flagInfo})
		if err := applyFlagFromEnv(f, flagInfo); err != nil {
			panic(err)
		}
	}
}

// reapplyEnvFlags sets every flag that has an environment variable
// from the current environment.
func reapplyEnvFlags() error {
	for _, ef := range envFlags {
		if err := applyFlagFromEnv(ef.f, ef.flagInfo); err != nil {
			return err
		}
	}
	return nil
}

func applyFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) error {
	value, set := os.LookupEnv(flagInfo.EnvVar)
	if !set {
		return nil
	}
	return errors.Wrapf(f.Set(flagInfo.Name, value), "environment variable %s", flagInfo.EnvVar)
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func BoolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo, defaultVal bool) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// VarFlag creates a custom-variable flag and registers it with the FlagSet.
func VarFlag(f *pflag.FlagSet, value pflag.Value, flagInfo cliflags.FlagInfo) {
	f.VarP(value, flagInfo.Name, flagInfo.Shorthand, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// resetFlagsChanged clears the Changed bit of every flag of cmd and its
// subcommands, so that a Run observes only the flags it was given.
func resetFlagsChanged(cmd *cobra.Command) {
	unset := func(f *pflag.Flag) { f.Changed = false }
	cmd.PersistentFlags().VisitAll(unset)
	cmd.Flags().VisitAll(unset)
	for _, c := range cmd.Commands() {
		resetFlagsChanged(c)
	}
}

func init() {
	initCLIDefaults()

	// Every command reads the store configuration.
	AddPersistentPreRunE(anchorsCmd, func(cmd *cobra.Command, _ []string) error {
		return setupConfig(cmd)
	})

	pf := anchorsCmd.PersistentFlags()
	StringFlag(pf, &cliCtx.configPath, cliflags.Config, "")
	IntFlag(pf, &cliCtx.maxChildren, cliflags.MaxChildren, cliCtx.maxChildren)
	BoolFlag(pf, &cliCtx.dropEmpty, cliflags.DropEmpty, false)
	IntFlag(pf, &cliCtx.verbosity, cliflags.Verbosity, 0)
	StringFlag(pf, &cliCtx.logFormat, cliflags.LogFormat, "")
	StringFlag(pf, &cliCtx.logLevel, cliflags.LogLevel, "")
	BoolFlag(pf, &cliCtx.redactableLogs, cliflags.RedactableLogs, false)
	VarFlag(pf, &cliCtx.tableDisplayFormat, cliflags.Format)
	BoolFlag(pf, &cliCtx.debug, cliflags.Debug, false)
	BoolFlag(pf, &cliCtx.showMetrics, cliflags.Metrics, false)

	BoolFlag(queryCmd.Flags(), &queryCtx.reverse, cliflags.Reverse, false)
}

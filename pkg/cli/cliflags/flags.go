// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags describes the command-line flags of the anchors tool.
package cliflags

import (
	"fmt"
	"strings"
)

// FlagInfo contains the static information for a CLI flag and helper
// to format the description.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable through which the flag
	// value can be controlled (optional).
	EnvVar string

	// Description of the flag.
	//
	// The text will be automatically re-wrapped. The wrapping can be stopped by
	// embedding the tag "<PRE>": this tag is removed from the text and
	// signals that everything that follows should not be re-wrapped. To start
	// wrapping again, use "</PRE>".
	Description string
}

const usageIndentation = 8
const wrapWidth = 79 - usageIndentation

// wrapDescription wraps the text in a FlagInfo.Description.
func wrapDescription(s string) string {
	var result strings.Builder

	// split returns the parts of the string before and after the first occurrence
	// of the tag.
	split := func(str, tag string) (before, after string) {
		pieces := strings.SplitN(str, tag, 2)
		switch len(pieces) {
		case 0:
			return "", ""
		case 1:
			return pieces[0], ""
		default:
			return pieces[0], pieces[1]
		}
	}

	for len(s) > 0 {
		var toWrap, dontWrap string
		// Wrap everything up to the next stop wrap tag.
		toWrap, s = split(s, "<PRE>")
		result.WriteString(wrapText(toWrap))
		// Copy everything up to the next start wrap tag.
		dontWrap, s = split(s, "</PRE>")
		result.WriteString(dontWrap)
	}
	return result.String()
}

// wrapText greedily fills words into lines of at most wrapWidth
// characters. Paragraph breaks (empty lines) are preserved.
func wrapText(s string) string {
	var result strings.Builder
	for i, para := range strings.Split(s, "\n\n") {
		if i > 0 {
			result.WriteString("\n\n")
		}
		lineLen := 0
		for _, word := range strings.Fields(para) {
			if lineLen > 0 && lineLen+1+len(word) > wrapWidth {
				result.WriteByte('\n')
				lineLen = 0
			} else if lineLen > 0 {
				result.WriteByte(' ')
				lineLen++
			}
			result.WriteString(word)
			lineLen += len(word)
		}
	}
	return result.String()
}

// Usage returns a formatted usage string for the flag, including:
// * line wrapping
// * indentation
// * env variable name (if set)
func (f FlagInfo) Usage() string {
	s := "\n" + wrapDescription(f.Description)
	if f.EnvVar != "" {
		// Check that the environment variable name matches the flag name. Note: we
		// don't want to automatically generate the name so that grepping for a flag
		// name in the code yields the flag definition.
		correctName := "ANCHORS_" + strings.ToUpper(strings.Replace(f.Name, "-", "_", -1))
		if f.EnvVar != correctName {
			panic(fmt.Sprintf("incorrect EnvVar %s for flag %s (should be %s)",
				f.EnvVar, f.Name, correctName))
		}
		s = s + "\nEnvironment variable: " + f.EnvVar
	}
	// github.com/spf13/pflag appends the default value after the usage text. Add
	// an additional indentation so the default is well-aligned with the
	// rest of the text. This is admittedly fragile.
	s = strings.Replace(s, "\n", "\n"+strings.Repeat(" ", usageIndentation), -1) + "\n"
	return s
}

// Flags shared by all commands.
var (
	Config = FlagInfo{
		Name:        "config",
		EnvVar:      "ANCHORS_CONFIG",
		Description: `Path to a YAML configuration file. Values given on the command line take precedence over the file.`,
	}

	MaxChildren = FlagInfo{
		Name:   "max-children",
		EnvVar: "ANCHORS_MAX_CHILDREN",
		Description: `Maximum number of slots per tree node. Non-root nodes hold at
least half as many. Must be at least 4.`,
	}

	DropEmpty = FlagInfo{
		Name:   "drop-empty",
		EnvVar: "ANCHORS_DROP_EMPTY",
		Description: `Drop intervals that a collapse reduces to zero width instead of
keeping them as points at the collapse offset.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		Description: `Log verbosity level. Structural events of the store are logged at levels 2 and 3.`,
	}

	LogFormat = FlagInfo{
		Name:        "log-format",
		EnvVar:      "ANCHORS_LOG_FORMAT",
		Description: `Format of log entries written to stderr. Possible values: text, json.`,
	}

	LogLevel = FlagInfo{
		Name:        "log-level",
		EnvVar:      "ANCHORS_LOG_LEVEL",
		Description: `Least severity of log entries written to stderr. Possible values: INFO, WARNING, ERROR.`,
	}

	RedactableLogs = FlagInfo{
		Name:   "redactable-logs",
		EnvVar: "ANCHORS_REDACTABLE_LOGS",
		Description: `Keep redaction markers around sensitive values in log entries, so
that the logs can be scrubbed later.`,
	}

	Format = FlagInfo{
		Name:   "format",
		EnvVar: "ANCHORS_FORMAT",
		Description: `
Selects how intervals are displayed.
Possible values: table, yaml.

The default is table when standard output is a terminal and yaml
otherwise.`,
	}

	Debug = FlagInfo{
		Name:        "debug",
		Description: `Dump the loaded records to stderr in Go syntax before running the command.`,
	}

	Metrics = FlagInfo{
		Name:        "metrics",
		Description: `Print the store's edit counters to stderr after the command completes.`,
	}

	Reverse = FlagInfo{
		Name:        "reverse",
		Shorthand:   "r",
		Description: `Return the matching intervals in descending order of their start boundary.`,
	}
)

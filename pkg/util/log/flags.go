// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// config holds the process-wide logging configuration. The logger itself is
// safe for concurrent use; the knobs below are read on every log call and
// are therefore atomics.
type config struct {
	logger *logrus.Logger

	// verbosity is the maximum level for which V() returns true.
	verbosity atomic.Int32

	// redactable keeps redaction markers in the output when set, so that
	// log files can later be scrubbed of sensitive values.
	redactable atomic.Bool
}

var logging = func() *config {
	c := &config{logger: logrus.New()}
	c.logger.SetOutput(os.Stderr)
	c.logger.SetLevel(logrus.InfoLevel)
	c.logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	return c
}()

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logging.logger.SetOutput(w)
}

// SetVerbosity sets the global verbosity level consulted by V and VEventf.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}

// Verbosity returns the current global verbosity level.
func Verbosity() int32 {
	return logging.verbosity.Load()
}

// SetRedactable controls whether redaction markers are preserved in the
// rendered messages.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// SetThreshold sets the least severity that is emitted.
func SetThreshold(sev Severity) {
	logging.logger.SetLevel(sev.logrusLevel())
}

// SetFormatter swaps the output formatter, e.g. for JSON output.
func SetFormatter(f logrus.Formatter) {
	logging.logger.SetFormatter(f)
}

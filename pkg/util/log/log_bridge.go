// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	stdLog "log"
	"strconv"
	"strings"

	"github.com/cockroachdb/redact"
	"github.com/sirupsen/logrus"
)

// NewStdLogger creates a *stdLog.Logger that forwards messages to the
// logs with the specified severity.
//
// The prefix should be the path of the package for which this logger
// is used. The prefix will be concatenated directly with the name
// of the file that triggered the logging.
func NewStdLogger(severity Severity, prefix string) *stdLog.Logger {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return stdLog.New(logBridge(severity), prefix, stdLog.Lshortfile)
}

// logBridge provides the Write method that connects a standard logger to
// the logs provided by this package.
type logBridge Severity

// Write parses the standard logging line and passes its components to the
// logger for Severity(lb).
func (lb logBridge) Write(b []byte) (n int, err error) {
	sev := Severity(lb)
	fields := logrus.Fields{}
	var msg string
	// Split "d.go:23: message" into "d.go", "23", and "message".
	if parts := bytes.SplitN(b, []byte{':'}, 3); len(parts) != 3 || len(parts[0]) < 1 || len(parts[2]) < 1 {
		msg = renderArgs(false, "bad log format: %s", bytes.TrimSpace(b))
	} else if lineno, err := strconv.Atoi(string(parts[1])); err != nil {
		msg = renderArgs(false, "bad line number: %s", bytes.TrimSpace(b))
	} else {
		// The "(gostd)" prefix makes these lines point at the caller of the
		// standard logger rather than at this file.
		fields["file"] = "(gostd) " + string(parts[0])
		fields["line"] = lineno
		msg = string(bytes.TrimSpace(parts[2]))
	}
	if logging.redactable.Load() {
		// Nothing is known about what is being logged.
		msg = string(redact.Sprint(msg))
	}
	logging.logger.WithFields(fields).Log(sev.logrusLevel(), msg)
	if sev == SeverityFatal {
		exit(1)
	}
	return len(b), nil
}

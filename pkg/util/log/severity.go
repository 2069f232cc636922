// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "github.com/sirupsen/logrus"

// Severity is the severity of a log entry.
type Severity int32

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// SeverityByName parses the name of a severity as produced by String.
func SeverityByName(name string) (Severity, bool) {
	for s := SeverityInfo; s <= SeverityFatal; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

func (s Severity) logrusLevel() logrus.Level {
	switch s {
	case SeverityWarning:
		return logrus.WarnLevel
	case SeverityError:
		return logrus.ErrorLevel
	case SeverityFatal:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

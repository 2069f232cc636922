// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package clierror carries exit codes and log severities alongside the
// errors returned by commands.
package clierror

import (
	"context"
	"fmt"

	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
)

// Error is an error that requests a specific process exit code and log
// severity when it reaches the top level.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

// NewError wraps cause with an exit code, logged at ERROR.
func NewError(cause error, exitCode exit.Code) error {
	return NewErrorWithSeverity(cause, exitCode, log.SeverityError)
}

// NewErrorWithSeverity wraps cause with an exit code and a log severity.
func NewErrorWithSeverity(cause error, exitCode exit.Code, severity log.Severity) error {
	return &Error{exitCode: exitCode, severity: severity, cause: cause}
}

// GetExitCode returns the exit code of the first *Error in the chain of
// err, or exit.UnspecifiedError.
func GetExitCode(err error) exit.Code {
	var e *Error
	if errors.As(err, &e) {
		return e.exitCode
	}
	return exit.UnspecifiedError()
}

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 error wrapping interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %d", e.exitCode.Int())
	}
	return e.cause
}

// Logger is the signature of the function CheckAndMaybeLog reports to.
type Logger func(ctx context.Context, sev log.Severity, msg string, args ...interface{})

// CheckAndMaybeLog reports err, if non-nil, to logger at the severity of
// the outermost *Error in its chain (ERROR if there is none), and returns
// err unchanged. Only that one layer is unwrapped.
func CheckAndMaybeLog(err error, logger Logger) error {
	if err == nil {
		return nil
	}
	sev := log.SeverityError
	cause := err
	var e *Error
	if errors.As(err, &e) {
		sev = e.severity
		cause = e.cause
	}
	logger(context.Background(), sev, "%v", cause)
	return err
}

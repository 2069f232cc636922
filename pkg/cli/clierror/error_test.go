// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package clierror

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logger struct {
	TB       testing.TB
	Severity log.Severity
	Err      error
}

func (l *logger) Log(_ context.Context, sev log.Severity, msg string, args ...interface{}) {
	require.Equal(l.TB, 1, len(args), "expected to log one item")
	err, ok := args[0].(error)
	require.True(l.TB, ok, "expected to log an error")
	l.Severity = sev
	l.Err = err
}

func TestErrorReporting(t *testing.T) {
	tests := []struct {
		desc         string
		err          error
		wantSeverity log.Severity
		wantCLICause bool // should the cause be an *Error?
		wantCode     exit.Code
	}{
		{
			desc:         "plain",
			err:          errors.New("boom"),
			wantSeverity: log.SeverityError,
			wantCLICause: false,
			wantCode:     exit.UnspecifiedError(),
		},
		{
			desc: "single cliError",
			err: NewErrorWithSeverity(
				errors.New("routine"),
				exit.CheckFailed(),
				log.SeverityInfo,
			),
			wantSeverity: log.SeverityInfo,
			wantCLICause: false,
			wantCode:     exit.CheckFailed(),
		},
		{
			desc: "double cliError",
			err: NewErrorWithSeverity(
				NewError(errors.New("serious"), exit.UnspecifiedError()),
				exit.CommandLineFlagError(),
				log.SeverityInfo,
			),
			wantSeverity: log.SeverityInfo, // should only unwrap one layer
			wantCLICause: true,
			wantCode:     exit.CommandLineFlagError(),
		},
		{
			desc: "wrapped cliError",
			err: fmt.Errorf("some context: %w", NewErrorWithSeverity(
				errors.New("routine"),
				exit.CheckFailed(),
				log.SeverityWarning,
			)),
			wantSeverity: log.SeverityWarning,
			wantCLICause: false,
			wantCode:     exit.CheckFailed(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := &logger{TB: t}
			checked := CheckAndMaybeLog(tt.err, got.Log)
			assert.Equal(t, tt.err, checked, "should return error unchanged")
			assert.Equal(t, tt.wantSeverity, got.Severity, "wrong severity log")
			assert.Equal(t, tt.wantCode, GetExitCode(tt.err))
			gotCLI := errors.HasType(got.Err, (*Error)(nil))
			if tt.wantCLICause {
				assert.True(t, gotCLI, "logged cause should be *Error, got %T", got.Err)
			} else {
				assert.False(t, gotCLI, "logged cause shouldn't be *Error, got %T", got.Err)
			}
		})
	}
	require.NoError(t, CheckAndMaybeLog(nil, (&logger{TB: t}).Log))
}

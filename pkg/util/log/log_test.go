// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "hello 1", FormatWithContextTags(ctx, "hello %d", 1))

	ctx = logtags.AddTag(ctx, "tree", "open")
	ctx = logtags.AddTag(ctx, "batch", nil)
	require.Equal(t, "[tree=open,batch] hello world",
		FormatWithContextTags(ctx, "hello %s", "world"))
}

func TestAmbientContext(t *testing.T) {
	var ac AmbientContext
	ctx := ac.AnnotateCtx(context.Background())
	require.Nil(t, logtags.FromContext(ctx))

	ac.AddLogTag("store", 3)
	ac.AddLogTag("tree", "closed")
	ctx = ac.AnnotateCtx(context.Background())
	require.Equal(t, "[store=3,tree=closed] x", FormatWithContextTags(ctx, "x"))
}

func TestInfofCarriesTags(t *testing.T) {
	buf := captureOutput(t)
	ctx := logtags.AddTag(context.Background(), "tree", "open")
	Infof(ctx, "grew to height %d", 3)
	out := buf.String()
	require.Contains(t, out, "grew to height 3")
	require.Contains(t, out, "tree=open")
	require.Contains(t, out, "level=info")
}

func TestRedactable(t *testing.T) {
	buf := captureOutput(t)
	defer SetRedactable(false)

	SetRedactable(true)
	Warningf(context.Background(), "id %d secret %s", redact.Safe(7), "hunter2")
	require.Contains(t, buf.String(), "‹hunter2›")

	buf.Reset()
	SetRedactable(false)
	Warningf(context.Background(), "id %d secret %s", redact.Safe(7), "hunter2")
	require.NotContains(t, buf.String(), "‹")
	require.Contains(t, buf.String(), "hunter2")
}

func TestVEventf(t *testing.T) {
	buf := captureOutput(t)
	defer SetVerbosity(Verbosity())

	SetVerbosity(1)
	VEventf(context.Background(), 2, "hidden")
	require.Empty(t, buf.String())
	require.True(t, V(1))
	require.False(t, V(2))

	SetVerbosity(2)
	VEventf(context.Background(), 2, "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestFatalfUsesExitFunc(t *testing.T) {
	buf := captureOutput(t)
	var code int
	SetExitFunc(func(c int) { code = c })
	defer ResetExitFunc()

	Fatalf(context.Background(), "boom")
	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "boom")
}

func TestEveryN(t *testing.T) {
	defer SetVerbosity(Verbosity())
	SetVerbosity(0)

	e := Every(time.Minute)
	start := time.Now()
	require.True(t, e.shouldLog(start))
	require.False(t, e.shouldLog(start.Add(time.Second)))
	require.True(t, e.shouldLog(start.Add(2*time.Minute)))
}

func TestSeverityByName(t *testing.T) {
	for _, s := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityFatal} {
		got, ok := SeverityByName(s.String())
		require.True(t, ok)
		require.Equal(t, s, got)
	}
	_, ok := SeverityByName("LOUD")
	require.False(t, ok)
}

func TestStdLoggerBridge(t *testing.T) {
	buf := captureOutput(t)
	l := NewStdLogger(SeverityWarning, "pkg/cli")
	l.Print("unexpected record")
	out := buf.String()
	require.Contains(t, out, "level=warning")
	require.Contains(t, out, "unexpected record")
	require.Contains(t, out, "pkg/cli/log_test.go")

	buf.Reset()
	_, err := logBridge(SeverityInfo).Write([]byte("garbage\n"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "bad log format: garbage")
}

func TestSetThreshold(t *testing.T) {
	buf := captureOutput(t)
	SetThreshold(SeverityWarning)
	defer SetThreshold(SeverityInfo)

	ctx := context.Background()
	Infof(ctx, "quiet")
	Warningf(ctx, "loud")
	require.NotContains(t, buf.String(), "quiet")
	require.Contains(t, buf.String(), "loud")
}

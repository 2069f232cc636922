// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/sirupsen/logrus"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, true /* brackets */, &buf)
	buf.WriteString(renderArgs(false /* redactable */, format, args...))
	return buf.String()
}

// formatTags writes the tags of ctx as "k1=v1,k2" into buf. With brackets
// set, the output is "[k1=v1,k2] ". Nothing is written when ctx has no tags.
func formatTags(ctx context.Context, brackets bool, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	if brackets {
		buf.WriteByte('[')
	}
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.ValueStr(); v != "" {
			buf.WriteByte('=')
			buf.WriteString(v)
		}
	}
	if brackets {
		buf.WriteString("] ")
	}
}

func renderArgs(redactable bool, format string, args ...interface{}) string {
	var msg redact.RedactableString
	if len(args) == 0 {
		msg = redact.Sprint(redact.Safe(format))
	} else {
		msg = redact.Sprintf(format, args...)
	}
	if redactable {
		return string(msg)
	}
	return msg.StripMarkers()
}

func tagFields(ctx context.Context) logrus.Fields {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return nil
	}
	fields := make(logrus.Fields, len(tags.Get()))
	for _, t := range tags.Get() {
		fields[t.Key()] = t.ValueStr()
	}
	return fields
}

// addStructured creates a structured log entry and hands it to the
// configured logrus logger. Context tags become logrus fields.
func addStructured(ctx context.Context, sev Severity, format string, args []interface{}) {
	msg := renderArgs(logging.redactable.Load(), format, args...)
	entry := logging.logger.WithFields(tagFields(ctx))
	entry.Log(sev.logrusLevel(), msg)
	if sev == SeverityFatal {
		exit(1)
	}
}

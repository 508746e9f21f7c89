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
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	return makeMessage(ctx, format, args).StripMarkers()
}

// makeMessage creates a structured log entry.
func makeMessage(ctx context.Context, format string, args []interface{}) redact.RedactableString {
	var buf redact.StringBuilder
	if tags := logtags.FromContext(ctx); tags != nil {
		buf.SafeRune('[')
		for i, t := range tags.Get() {
			if i > 0 {
				buf.SafeRune(',')
			}
			buf.Print(redact.SafeString(t.Key()))
			if v := t.Value(); v != nil {
				buf.SafeRune('=')
				buf.Print(v)
			}
		}
		buf.SafeString("] ")
	}
	if len(format) == 0 {
		for i, a := range args {
			if i > 0 {
				buf.SafeRune(' ')
			}
			buf.Print(a)
		}
	} else {
		buf.Printf(format, args...)
	}
	return buf.RedactableString()
}

// addStructured creates a structured log entry to be written to the
// specified facility of the logger.
func addStructured(ctx context.Context, s Severity, format string, args []interface{}) {
	if ctx == nil {
		panic("nil context")
	}
	msg := makeMessage(ctx, format, args)
	if logging.redactable.Load() {
		outputLogEntry(s, string(msg))
		return
	}
	outputLogEntry(s, strings.TrimSpace(msg.StripMarkers()))
}

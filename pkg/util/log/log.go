// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is a small leveled logger whose entries carry the logging
// tags attached to the context (see github.com/cockroachdb/logtags).
//
// Every entry is a single line:
//
//	I260101 12:00:00.000000 [stmt=3,call=f] resolved f(INTEGER) -> f(int32)
//
// Verbose events (VEventf) are only emitted when the global verbosity is at
// least the requested level.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// These constants identify the log levels in order of increasing Severity.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

const severityChar = "IWE"

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	}
	return fmt.Sprintf("Severity(%d)", int32(s))
}

// Level is the verbosity level for VEventf and V.
type Level int32

var logging struct {
	mu struct {
		sync.Mutex
		out   io.Writer
		color *colorProfile
	}
	verbosity atomic.Int32
	// redactable keeps the redaction markers in the output.
	redactable atomic.Bool
	// now is swapped out by tests.
	now func() time.Time
}

func init() {
	logging.mu.out = os.Stderr
	logging.mu.color = colorProfileFor(os.Stderr)
	logging.now = time.Now
}

// SetOutput redirects log output to w and returns a function restoring the
// previous sink.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prevOut, prevColor := logging.mu.out, logging.mu.color
	logging.mu.out = w
	logging.mu.color = colorProfileFor(w)
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out, logging.mu.color = prevOut, prevColor
	}
}

// SetVerbosity sets the global verbosity and returns a function restoring
// the previous level.
func SetVerbosity(level Level) (restore func()) {
	prev := logging.verbosity.Swap(int32(level))
	return func() { logging.verbosity.Store(prev) }
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(v bool) {
	logging.redactable.Store(v)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level Level) bool {
	return logging.verbosity.Load() >= int32(level)
}

// Infof logs to the INFO log.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityInfo, format, args)
}

// Warningf logs to the WARNING log.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityWarning, format, args)
}

// Errorf logs to the ERROR log.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, SeverityError, format, args)
}

// VEventf logs an INFO entry if the verbosity is at least level.
func VEventf(ctx context.Context, level Level, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, SeverityInfo, format, args)
	}
}

func outputLogEntry(s Severity, msg string) {
	var buf bytes.Buffer
	now := logging.now()

	logging.mu.Lock()
	defer logging.mu.Unlock()
	cp := logging.mu.color
	if cp != nil {
		buf.Write(cp.prefixFor(s))
	}
	buf.WriteByte(severityChar[s])
	if cp != nil {
		buf.Write(colorReset)
		buf.Write(cp.timePrefix)
	}
	buf.WriteString(now.UTC().Format("060102 15:04:05.000000"))
	if cp != nil {
		buf.Write(colorReset)
	}
	buf.WriteByte(' ')
	buf.WriteString(msg)
	if msg == "" || msg[len(msg)-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, _ = logging.mu.out.Write(buf.Bytes())
}

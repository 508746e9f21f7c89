// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/testutils"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	t.Cleanup(SetOutput(&buf))
	t.Cleanup(testutils.TestingHook(&logging.now, func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
	return &buf
}

func TestLogEntryFormat(t *testing.T) {
	buf := captureLog(t)
	ctx := logtags.AddTag(context.Background(), "stmt", 3)
	ctx = logtags.AddTag(ctx, "coalesce", nil)

	Infof(ctx, "unified %d operands", 2)
	Warningf(context.Background(), "no tags")
	Errorf(ctx, "failed: %s", "boom")

	require.Equal(t,
		"I260102 03:04:05.000000 [stmt=3,coalesce] unified 2 operands\n"+
			"W260102 03:04:05.000000 no tags\n"+
			"E260102 03:04:05.000000 [stmt=3,coalesce] failed: boom\n",
		buf.String())
}

func TestVerbosity(t *testing.T) {
	buf := captureLog(t)
	ctx := context.Background()

	VEventf(ctx, 2, "hidden")
	require.Empty(t, buf.String())

	defer SetVerbosity(2)()
	require.True(t, V(1))
	require.True(t, V(2))
	require.False(t, V(3))
	VEventf(ctx, 2, "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestRedactableOutput(t *testing.T) {
	buf := captureLog(t)
	ctx := context.Background()

	SetRedactable(true)
	defer SetRedactable(false)
	Infof(ctx, "routine %s, arity %d", "secret", redact.Safe(2))
	require.Contains(t, buf.String(), "routine ‹secret›, arity 2")
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	require.Equal(t, "[n=1] hello world", FormatWithContextTags(ctx, "hello %s", "world"))
}

func TestSeverityString(t *testing.T) {
	require.Equal(t, "INFO", SeverityInfo.String())
	require.Equal(t, "WARNING", SeverityWarning.String())
	require.Equal(t, "ERROR", SeverityError.String())
	require.Equal(t, "Severity(7)", Severity(7).String())
}

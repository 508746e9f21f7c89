// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlres/pkg/cli/exit"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/testutils"
	"github.com/cockroachdb/sqlres/pkg/testutils/echotest"
	"github.com/stretchr/testify/require"
)

// runCLI runs one invocation of the tool and returns what it printed,
// followed by the error report and exit code on failure.
func runCLI(args []string, stdin string) string {
	resetCLIContext()
	cliCtx.tableDisplayFormat = tableDisplayTSV

	var out bytes.Buffer
	sqlresCmd.SetOut(&out)
	sqlresCmd.SetErr(&out)
	sqlresCmd.SetIn(strings.NewReader(stdin))
	if err := Run(args); err != nil {
		fmt.Fprintln(&out, reportError(err))
		fmt.Fprintf(&out, "exit code: %d\n", exitCodeFor(err).Int())
	}
	return out.String()
}

// splitArgs splits a command line on whitespace. Double quotes group
// words.
func splitArgs(line string) []string {
	var args []string
	var cur strings.Builder
	inQuote, inWord := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case (r == ' ' || r == '\t') && !inQuote:
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args
}

// TestDataDriven runs the tool on the command lines in testdata/sqlres.
// The first line of the input holds the arguments and the remaining lines
// are the standard input.
func TestDataDriven(t *testing.T) {
	datadriven.RunTest(t, testutils.TestDataPath(t, "sqlres"), func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "run" {
			d.Fatalf(t, "unknown command %q", d.Cmd)
		}
		cmdLine, stdin, _ := strings.Cut(d.Input, "\n")
		return runCLI(splitArgs(cmdLine), stdin)
	})
}

func TestTable(t *testing.T) {
	echotest.Require(t, runCLI([]string{"table"}, ""), testutils.TestDataPath(t, "table"))
}

func TestTypes(t *testing.T) {
	echotest.Require(t, runCLI([]string{"types"}, ""), testutils.TestDataPath(t, "types"))
}

func TestPrettyFormat(t *testing.T) {
	out := runCLI([]string{"--format=table", "compile"}, "coalesce(SMALLINT, INTEGER)\n")
	require.Contains(t, out, "| statement |")
	require.Contains(t, out, "coalesce(SMALLINT, INTEGER)")
	require.True(t, strings.HasSuffix(out, "(1 row)\n"), out)

	out = runCLI([]string{"--format=csv", "unify", "INTEGER", "BIGINT"}, "")
	require.Equal(t, "BIGINT\n", out)

	out = runCLI([]string{"--format=json", "types"}, "")
	require.Contains(t, out, `invalid argument "json" for "--format" flag`)
	require.Contains(t, out, "exit code: 4")
}

func TestTableDisplayFormat(t *testing.T) {
	var f tableDisplayFormat
	require.Equal(t, "tsv", f.String())
	for _, name := range []string{"csv", "table", "tsv"} {
		require.NoError(t, f.Set(name))
		require.Equal(t, name, f.String())
	}
	require.Error(t, f.Set("html"))
}

func TestExitCodeFor(t *testing.T) {
	testCases := []struct {
		err  error
		want exit.Code
	}{
		{errors.New("boom"), exit.UnspecifiedError()},
		{errors.AssertionFailedf("boom"), exit.UnspecifiedError()},
		{errors.Mark(errors.New("bad flag"), errCommandLine), exit.CommandLineFlagError()},
		{pgerror.New(pgcode.DatatypeMismatch, "mismatch"), exit.Rejected()},
		{errors.Wrap(pgerror.New(pgcode.UndefinedRoutine, "missing"), "stmt"), exit.Rejected()},
	}
	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			require.Equal(t, tc.want, exitCodeFor(tc.err))
		})
	}
}

func TestSplitArgs(t *testing.T) {
	require.Equal(t,
		[]string{"unify", "INTEGER", "DECIMAL(5,2)", "VARCHAR(10) NOT NULL"},
		splitArgs(`unify INTEGER  "DECIMAL(5,2)" "VARCHAR(10) NOT NULL"`))
	require.Empty(t, splitArgs("   "))
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/sqlres/pkg/sql/compile"
	"github.com/spf13/cobra"
)

var compileCtx struct {
	evaluate bool
}

var compileCmd = &cobra.Command{
	Use:   "compile [FILE...]",
	Short: "compile statements of routine calls and COALESCE expressions",
	Long: `
Compile each FILE as one statement, one expression per line:

  call abs(SMALLINT) expr returns BIGINT
  coalesce(INTEGER, DECIMAL(5,2), ?)
  value('2024-01-31'::VARCHAR(10), DATE)

The statements of one invocation are compiled concurrently against the same
snapshot of the routine catalog. Without FILE, one statement is read from
standard input. With --evaluate, the constant operands are also checked
as they would be when the statements run.
`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolVar(&compileCtx.evaluate, "evaluate", false,
		"check constant operands: bridged datetime strings, DECIMAL widths and NULLs for natural parameters")
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var stmts []*compile.Statement
	if len(args) == 0 {
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		stmt, err := compile.ParseStatement("stdin", string(text))
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}
	for _, path := range args {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		stmt, err := compile.ParseStatement(name, string(text))
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}

	c := compile.NewCompiler(cliCtx.sv, cliCtx.catalog)
	compiled, err := c.CompileAll(ctx, stmts)
	if err != nil {
		return err
	}
	if compileCtx.evaluate {
		for _, s := range compiled {
			if err := s.Evaluate(ctx); err != nil {
				return err
			}
		}
	}
	var rows [][]string
	for _, s := range compiled {
		for i, r := range s.Results {
			rows = append(rows, []string{s.Name, strconv.Itoa(i + 1), r.Site, r.String()})
		}
	}
	return printQueryOutput(cmd.OutOrStdout(),
		[]string{"statement", "expr", "site", "result"}, rows, cliCtx.tableDisplayFormat)
}

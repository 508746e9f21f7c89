// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the sqlres command-line tool, which exposes type
// unification, routine resolution and statement compilation for scripting
// and inspection.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlres/pkg/cli/exit"
	"github.com/cockroachdb/sqlres/pkg/settings"
	"github.com/cockroachdb/sqlres/pkg/sql/catalog/routinecat"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/util/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliContext holds the state shared by all commands, filled from the
// command-line flags.
type cliContext struct {
	settingsFile       string
	catalogFiles       []string
	overrides          settingOverrides
	tableDisplayFormat tableDisplayFormat
	verbosity          int

	// Populated before a command runs.
	sv      *settings.Values
	catalog *routinecat.Catalog
}

var cliCtx cliContext

// resetCLIContext restores the defaults, so that tests can run several
// commands in one process.
func resetCLIContext() {
	cliCtx = cliContext{}
	unifyCtx.coalesce = false
	compileCtx.evaluate = false
	resolveCtx.signature, resolveCtx.returns = "", ""
	resolveCtx.expr, resolveCtx.nonNull = false, false
	if isatty.IsTerminal(os.Stdout.Fd()) {
		cliCtx.tableDisplayFormat = tableDisplayPretty
	}
}

type settingOverride struct {
	key, value string
}

// settingOverrides collects repeated --set key=value flags.
type settingOverrides []settingOverride

var _ pflag.Value = (*settingOverrides)(nil)

// String implements the pflag.Value interface.
func (o *settingOverrides) String() string {
	parts := make([]string, len(*o))
	for i, s := range *o {
		parts[i] = s.key + "=" + s.value
	}
	return strings.Join(parts, ",")
}

// Type implements the pflag.Value interface.
func (o *settingOverrides) Type() string {
	return "key=value"
}

// Set implements the pflag.Value interface.
func (o *settingOverrides) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return errors.Newf("expected key=value, got %q", s)
	}
	key = strings.TrimSpace(key)
	if _, ok := settings.Lookup(key); !ok {
		return errors.Newf("unknown setting %q", key)
	}
	*o = append(*o, settingOverride{key: key, value: strings.TrimSpace(value)})
	return nil
}

var sqlresCmd = &cobra.Command{
	Use:   "sqlres [command] (flags)",
	Short: "SQL result-type unification and routine resolution",
	Long: `
Inspect how operand types unify, how routine calls resolve against a
catalog of external routines, and how statements made of such expressions
compile.
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareContext,
}

func init() {
	cobra.EnableCommandSorting = false
	resetCLIContext()

	f := sqlresCmd.PersistentFlags()
	f.StringVar(&cliCtx.settingsFile, "settings", "",
		"YAML file of setting overrides, applied before --set")
	f.Var(&cliCtx.overrides, "set",
		"override a setting, e.g. --set sql.types.decimal_overflow_policy=reject (repeatable)")
	f.StringSliceVar(&cliCtx.catalogFiles, "catalog", nil,
		"YAML file declaring external routines (repeatable)")
	f.Var(&cliCtx.tableDisplayFormat, "format",
		"output format for tabular results: tsv, csv or table")
	f.IntVarP(&cliCtx.verbosity, "verbosity", "v", 0,
		"log verbosity of the resolution trace written to stderr")

	sqlresCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, errCommandLine)
	})

	sqlresCmd.AddCommand(
		unifyCmd,
		resolveCmd,
		compileCmd,
		tableCmd,
		typesCmd,
		settingsCmd,
	)
}

var errCommandLine = errors.New("command-line error")

// prepareContext builds the settings and the routine catalog the command
// runs against.
func prepareContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log.SetVerbosity(log.Level(cliCtx.verbosity))

	sv := settings.MakeValues()
	if cliCtx.settingsFile != "" {
		f, err := os.Open(cliCtx.settingsFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := settings.LoadYAML(sv, f); err != nil {
			return errors.Wrapf(err, "%s", cliCtx.settingsFile)
		}
	}
	for _, o := range cliCtx.overrides {
		if err := sv.Set(o.key, o.value); err != nil {
			return errors.Mark(err, errCommandLine)
		}
	}

	cat := routinecat.New()
	for _, path := range cliCtx.catalogFiles {
		if err := loadCatalog(ctx, cat, path); err != nil {
			return err
		}
	}
	cliCtx.sv, cliCtx.catalog = sv, cat
	return nil
}

func loadCatalog(ctx context.Context, cat *routinecat.Catalog, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(cat.Load(ctx, f), "%s", path)
}

// Run executes the command line args.
func Run(args []string) error {
	sqlresCmd.SetArgs(args)
	return sqlresCmd.ExecuteContext(context.Background())
}

// Main is the entry point of the sqlres binary.
func Main() {
	settings.Freeze()
	if err := Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, reportError(err))
		exit.WithCode(exitCodeFor(err))
	}
	exit.WithCode(exit.Success())
}

// reportError renders err the way the tool prints failures. Errors with a
// SQLSTATE get the full diagnostic.
func reportError(err error) string {
	if pgerror.GetPGCode(err) == pgcode.Uncategorized {
		return "ERROR: " + err.Error()
	}
	return pgerror.Flatten(err).Report()
}

func exitCodeFor(err error) exit.Code {
	switch {
	case errors.Is(err, errCommandLine):
		return exit.CommandLineFlagError()
	case pgerror.GetPGCode(err) == pgcode.Uncategorized:
		return exit.UnspecifiedError()
	case pgerror.GetPGCode(err) == pgcode.Internal:
		return exit.UnspecifiedError()
	}
	return exit.Rejected()
}

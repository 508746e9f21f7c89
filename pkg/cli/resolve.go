// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/spf13/cobra"
)

var resolveCtx struct {
	signature string
	returns   string
	expr      bool
	nonNull   bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME [TYPE...]",
	Short: "resolve a routine call against the catalog",
	Long: `
Pick the overload of the routine NAME that a call with the given operand
types binds to. Routines are declared in the files given with --catalog.
Operand types are given as for the unify command.
`,
	Example: `  sqlres resolve --catalog routines.yaml --expr abs SMALLINT
  sqlres resolve --catalog routines.yaml --signature "(float64)" abs SMALLINT`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveCtx.signature, "signature", "",
		`explicit host signature selecting the overload, e.g. "(int32, *bool)"`)
	f.StringVar(&resolveCtx.returns, "returns", "",
		"type family the return value must widen to; implies --expr")
	f.BoolVar(&resolveCtx.expr, "expr", false,
		"the call appears in an expression, so a procedure cannot serve it")
	f.BoolVar(&resolveCtx.nonNull, "nonnull", false,
		"require a return representation that cannot hold NULL")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	operands, err := parseOperandTypes(args[1:])
	if err != nil {
		return err
	}
	rc := overload.ReturnContext{WantsValue: resolveCtx.expr, NonNull: resolveCtx.nonNull}
	if resolveCtx.returns != "" {
		f, ok := types.FamilyFromName(resolveCtx.returns)
		if !ok {
			return errors.Mark(pgerror.Newf(pgcode.UndefinedType,
				"type %q does not exist", resolveCtx.returns), errCommandLine)
		}
		rc.Desired, rc.WantsValue = f, true
	}

	candidates := cliCtx.catalog.Snapshot().Lookup(name, len(operands))
	r := overload.NewResolver(cliCtx.sv)
	var o overload.Outcome
	if resolveCtx.signature != "" {
		sig, err := hostrep.ParseSignature(resolveCtx.signature)
		if err != nil {
			return err
		}
		o, err = r.ResolveExplicit(ctx, name, candidates, sig, operands, rc)
		if err != nil {
			return err
		}
	} else {
		o, err = r.Resolve(ctx, name, candidates, operands, rc)
		if err != nil {
			return err
		}
	}
	if err := o.Err(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, o.Signature)
	if o.Signature.ExternalName != "" {
		fmt.Fprintf(w, "external: %s\n", o.Signature.ExternalName)
	}
	fmt.Fprintf(w, "host: %s\n", o.Signature.HostSignature())
	if resolveCtx.signature == "" {
		fmt.Fprintf(w, "rank: representation %d, distance %d\n",
			o.Rank.Representation, o.Rank.Distance)
	}
	return nil
}

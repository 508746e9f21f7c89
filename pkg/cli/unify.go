// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/compile"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/unify"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/spf13/cobra"
)

var unifyCtx struct {
	coalesce bool
}

var unifyCmd = &cobra.Command{
	Use:   "unify TYPE [TYPE...]",
	Short: "compute the common type of operand types",
	Long: `
Compute the type that the given operand types unify into, as the result
of a COALESCE or VALUE expression would. Each argument is a type name such
as "DECIMAL(5,2)" or "VARCHAR(10) NOT NULL", or ? for an untyped
parameter.
`,
	Example: `  sqlres unify INTEGER "DECIMAL(5,2)" ?
  sqlres unify --coalesce "CHAR(10)" DATE`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnify,
}

func init() {
	unifyCmd.Flags().BoolVar(&unifyCtx.coalesce, "coalesce", false,
		"apply the operand rules of COALESCE: at least two operands, one of them typed")
}

// parseOperandTypes parses type-name arguments; ? is an untyped operand.
func parseOperandTypes(args []string) ([]*types.T, error) {
	operands := make([]*types.T, len(args))
	for i, a := range args {
		if a == "?" {
			continue
		}
		t, err := types.Parse(a)
		if err != nil {
			return nil, pgerror.WithArgPosition(
				errors.Wrapf(err, "operand %d", redact.Safe(i+1)), i)
		}
		operands[i] = t
	}
	return operands, nil
}

func runUnify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	operands, err := parseOperandTypes(args)
	if err != nil {
		return err
	}
	u := unify.NewUnifier(cliCtx.sv)
	var o unify.Outcome
	if unifyCtx.coalesce {
		if o, err = u.Coalesce(ctx, operands...); err != nil {
			return err
		}
	} else {
		o = u.Unify(ctx, operands...)
	}
	if err := o.Err(); err != nil {
		return err
	}
	r := compile.Result{
		Type:     o.Type,
		Deferred: o.DeferredPositions(operands...),
		Clamped:  o.Clamped,
	}
	if r.Type == nil {
		// Only untyped operands, outside of COALESCE.
		fmt.Fprintln(cmd.OutOrStdout(), "?")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.String())
	return nil
}

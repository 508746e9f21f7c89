// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"strconv"

	"github.com/cockroachdb/sqlres/pkg/settings"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "print the conversion rank table",
	Long: `
Print the family that each pair of type families unifies into. A trailing
* marks results whose character operands are parsed into the datetime
result when evaluated; - marks incompatible pairs.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cols := []string{"family"}
		var rows [][]string
		for _, a := range types.Families {
			cols = append(cols, a.Name())
			row := []string{a.Name()}
			for _, b := range types.Families {
				row = append(row, cast.Lookup(a, b).String())
			}
			rows = append(rows, row)
		}
		return printQueryOutput(cmd.OutOrStdout(), cols, rows, cliCtx.tableDisplayFormat)
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "list the type families and their host representations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var rows [][]string
		for _, f := range types.Families {
			var precision, scale, maxLength string
			if f.NominalPrecision() > 0 {
				precision = strconv.Itoa(int(f.NominalPrecision()))
				scale = strconv.Itoa(int(f.NominalScale()))
			} else if f.HasPrecision() {
				precision = "1-" + strconv.Itoa(types.MaxDecimalPrecision)
			}
			if f.HasLength() {
				maxLength = humanize.Comma(int64(f.MaxLength()))
			}
			m := hostrep.For(f)
			rows = append(rows, []string{
				f.String(), f.Group().String(), precision, scale, maxLength,
				m[hostrep.Natural].GoType, m[hostrep.Nullable].GoType,
				strconv.Itoa(int(f.Oid())),
			})
		}
		return printQueryOutput(cmd.OutOrStdout(),
			[]string{"family", "group", "precision", "scale", "max length", "natural", "nullable", "oid"},
			rows, cliCtx.tableDisplayFormat)
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "list the settings and their effective values",
	Long: `
List the settings with the values in effect after applying --settings and
--set.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var rows [][]string
		for _, key := range settings.Keys() {
			s, _ := settings.Lookup(key)
			rows = append(rows, []string{
				key, s.Typ(), s.String(cliCtx.sv), s.DefaultString(), s.Description(),
			})
		}
		return printQueryOutput(cmd.OutOrStdout(),
			[]string{"variable", "type", "value", "default", "description"},
			rows, cliCtx.tableDisplayFormat)
	},
}

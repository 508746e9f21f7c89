// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
)

type tableDisplayFormat int

const (
	tableDisplayTSV tableDisplayFormat = iota
	tableDisplayCSV
	tableDisplayPretty
)

var tableDisplayNames = map[tableDisplayFormat]string{
	tableDisplayTSV:    "tsv",
	tableDisplayCSV:    "csv",
	tableDisplayPretty: "table",
}

// String implements the pflag.Value interface.
func (f *tableDisplayFormat) String() string {
	return tableDisplayNames[*f]
}

// Type implements the pflag.Value interface.
func (f *tableDisplayFormat) Type() string {
	return "string"
}

// Set implements the pflag.Value interface.
func (f *tableDisplayFormat) Set(s string) error {
	for v, name := range tableDisplayNames {
		if strings.EqualFold(s, name) {
			*f = v
			return nil
		}
	}
	return errors.Newf("invalid table display format: %s (possible values: tsv, csv, table)", s)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// printQueryOutput writes rows under the column names cols in the given
// format.
func printQueryOutput(
	w io.Writer, cols []string, rows [][]string, displayFormat tableDisplayFormat,
) error {
	switch displayFormat {
	case tableDisplayPretty:
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(cols)
		table.AppendBulk(rows)
		table.Render()
		fmt.Fprintf(w, "(%d row%s)\n", len(rows), pluralize(len(rows)))
		return nil

	case tableDisplayTSV, tableDisplayCSV:
		fmt.Fprintf(w, "%d row%s\n", len(rows), pluralize(len(rows)))
		csvWriter := csv.NewWriter(w)
		if displayFormat == tableDisplayTSV {
			csvWriter.Comma = '\t'
		}
		if err := csvWriter.Write(cols); err != nil {
			return err
		}
		return csvWriter.WriteAll(rows)
	}
	return errors.AssertionFailedf("unknown display format %d", displayFormat)
}

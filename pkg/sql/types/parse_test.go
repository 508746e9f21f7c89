// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"testing"

	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in       string
		expected *T
	}{
		{"boolean", Boolean},
		{"SMALLINT", SmallInt},
		{"int", Integer},
		{"INTEGER", Integer},
		{"BIGINT", BigInt},
		{"DECIMAL", MakeDecimal(5, 0)},
		{"decimal(10)", MakeDecimal(10, 0)},
		{"NUMERIC(10, 5)", MakeDecimal(10, 5)},
		{"DEC(31,31)", MakeDecimal(31, 31)},
		{"REAL", Real},
		{"DOUBLE", Double},
		{"DOUBLE PRECISION", Double},
		{"FLOAT", Double},
		{"FLOAT(23)", Real},
		{"FLOAT(24)", Double},
		{"CHAR", MakeChar(1)},
		{"CHARACTER(60)", MakeChar(60)},
		{"CHAR(16) FOR BIT DATA", MakeCharForBit(16)},
		{"VARCHAR(60)", MakeVarchar(60)},
		{"CHAR VARYING(60)", MakeVarchar(60)},
		{"CHARACTER VARYING (60) FOR BIT DATA", MakeVarcharForBit(60)},
		{"LONG VARCHAR", LongVarchar},
		{"long varchar for bit data", LongVarcharForBit},
		{"CLOB", MakeClob(MaxLOBLength)},
		{"CLOB(1K)", MakeClob(1024)},
		{"CHARACTER LARGE OBJECT(2M)", MakeClob(2 << 20)},
		{"BLOB(2G)", MakeBlob(MaxLOBLength)},
		{"BINARY LARGE OBJECT(100)", MakeBlob(100)},
		{"DATE", Date},
		{"TIME", Time},
		{"TIMESTAMP", Timestamp},
		{"INTEGER NOT NULL", Integer.WithNullable(false)},
		{"  varchar ( 10 )   not null ", MakeVarchar(10).WithNullable(false)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			typ, err := Parse(tc.in)
			require.NoError(t, err)
			require.True(t, tc.expected.Identical(typ), "expected %s, got %s", tc.expected, typ)
		})
	}
}

func TestParseError(t *testing.T) {
	testCases := []struct {
		in   string
		code pgcode.Code
	}{
		{"", pgcode.Syntax},
		{"INTERVAL", pgcode.UndefinedType},
		{"VARCHAR", pgcode.Syntax},
		{"VARCHAR(", pgcode.Syntax},
		{"VARCHAR(10", pgcode.Syntax},
		{"VARCHAR(1K)", pgcode.Syntax},
		{"CHAR(10) FOR BIT", pgcode.Syntax},
		{"INTEGER NOT", pgcode.Syntax},
		{"INTEGER extra", pgcode.Syntax},
		{"INT;", pgcode.Syntax},
		{"LONG", pgcode.Syntax},
		{"DECIMAL(32)", pgcode.InvalidPrecision},
		{"DECIMAL(5,6)", pgcode.InvalidPrecision},
		{"DECIMAL(0)", pgcode.InvalidPrecision},
		{"FLOAT(53)", pgcode.InvalidPrecision},
		{"CHAR(255)", pgcode.InvalidLength},
		{"CHAR(0)", pgcode.InvalidLength},
		{"VARCHAR(32673)", pgcode.InvalidLength},
		{"CLOB(3G)", pgcode.InvalidLength},
		{"BLOB(99999999999)", pgcode.InvalidLength},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.Error(t, err)
			require.Equal(t, tc.code, pgerror.GetPGCode(err), "%v", err)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, "DECIMAL(10,5)", MustParse("DECIMAL(10,5)").String())
	require.Panics(t, func() { MustParse("NOPE") })
}

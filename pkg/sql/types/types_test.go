// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestFamilies(t *testing.T) {
	require.Len(t, Families, 18)
	require.Equal(t, NumFamilies, len(Families))
	seen := map[string]bool{}
	for _, f := range Families {
		require.True(t, f.Valid(), "%d", f)
		require.NotEqual(t, InvalidGroup, f.Group(), "%s", f)
		require.False(t, seen[f.Name()], "duplicate name %s", f.Name())
		seen[f.Name()] = true

		byName, ok := FamilyFromName(f.Name())
		require.True(t, ok, "%s", f.Name())
		require.Equal(t, f, byName)
		bySQL, ok := FamilyFromName(f.String())
		require.True(t, ok, "%s", f)
		require.Equal(t, f, bySQL)
	}
	require.False(t, Family(0).Valid())
	require.False(t, Family(NumFamilies+1).Valid())
	require.Equal(t, "UNKNOWN", Family(0).String())

	_, ok := FamilyFromName("interval")
	require.False(t, ok)
	f, ok := FamilyFromName("long varchar for bit data")
	require.True(t, ok)
	require.Equal(t, LongVarcharForBitFamily, f)
}

func TestFamilyOrder(t *testing.T) {
	chains := [][]Family{
		{SmallIntFamily, IntegerFamily, BigIntFamily, DecimalFamily},
		{RealFamily, DoubleFamily},
		{CharFamily, VarcharFamily, LongVarcharFamily, ClobFamily},
		{CharForBitFamily, VarcharForBitFamily, LongVarcharForBitFamily},
	}
	for _, chain := range chains {
		for i := 1; i < len(chain); i++ {
			require.Equal(t, chain[i-1].Group(), chain[i].Group())
			require.Less(t, chain[i-1].Rank(), chain[i].Rank(), "%s < %s", chain[i-1], chain[i])
		}
	}

	next, ok := CharFamily.Next()
	require.True(t, ok)
	require.Equal(t, VarcharFamily, next)
	next, ok = VarcharForBitFamily.Next()
	require.True(t, ok)
	require.Equal(t, LongVarcharForBitFamily, next)
	for _, f := range []Family{ClobFamily, BlobFamily, LongVarcharForBitFamily, DateFamily, IntegerFamily} {
		_, ok := f.Next()
		require.False(t, ok, "%s", f)
	}
}

func TestNominalAttributes(t *testing.T) {
	testCases := []struct {
		typ       *T
		precision int32
		scale     int32
		maxLength int32
		oid       oid.Oid
	}{
		{SmallInt, 5, 0, 0, oid.T_int2},
		{Integer, 10, 0, 0, oid.T_int4},
		{BigInt, 19, 0, 0, oid.T_int8},
		{Real, 7, 0, 0, oid.T_float4},
		{Double, 15, 0, 0, oid.T_float8},
		{Date, 10, 0, 0, oid.T_date},
		{Time, 8, 0, 0, oid.T_time},
		{Timestamp, 29, 9, 0, oid.T_timestamp},
		{LongVarchar, 0, 0, MaxLongVarcharLength, oid.T_text},
		{LongVarcharForBit, 0, 0, MaxLongVarcharLength, oid.T_bytea},
		{MakeDecimal(10, 5), 10, 5, 0, oid.T_numeric},
		{MakeChar(60), 0, 0, 60, oid.T_bpchar},
		{MakeVarcharForBit(16), 0, 0, 16, oid.T_bytea},
	}
	for _, tc := range testCases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			require.Equal(t, tc.precision, tc.typ.Precision())
			require.Equal(t, tc.scale, tc.typ.Scale())
			require.Equal(t, tc.maxLength, tc.typ.MaxLength())
			require.Equal(t, tc.oid, tc.typ.Oid())
			require.True(t, tc.typ.Nullable())
		})
	}
}

func TestMakeScalarValidation(t *testing.T) {
	testCases := []struct {
		family    Family
		precision int32
		scale     int32
		maxLength int32
		code      pgcode.Code
	}{
		{DecimalFamily, 0, 0, 0, pgcode.InvalidPrecision},
		{DecimalFamily, 32, 0, 0, pgcode.InvalidPrecision},
		{DecimalFamily, 5, 6, 0, pgcode.InvalidPrecision},
		{DecimalFamily, 5, -1, 0, pgcode.InvalidPrecision},
		{CharFamily, 0, 0, 0, pgcode.InvalidLength},
		{CharFamily, 0, 0, 255, pgcode.InvalidLength},
		{VarcharFamily, 0, 0, 32673, pgcode.InvalidLength},
		{CharForBitFamily, 0, 0, 255, pgcode.InvalidLength},
		{BlobFamily, 0, 0, -1, pgcode.InvalidLength},
	}
	for _, tc := range testCases {
		_, err := MakeScalar(tc.family, tc.precision, tc.scale, tc.maxLength)
		require.Error(t, err, "%s(%d,%d,%d)", tc.family, tc.precision, tc.scale, tc.maxLength)
		require.Equal(t, tc.code, pgerror.GetPGCode(err), "%v", err)
	}

	_, err := MakeScalar(Family(0), 0, 0, 0)
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(err))

	// Attributes the family does not declare are replaced.
	typ, err := MakeScalar(IntegerFamily, 3, 2, 9)
	require.NoError(t, err)
	require.True(t, typ.Identical(Integer))
	typ, err = MakeScalar(LongVarcharFamily, 0, 0, 1)
	require.NoError(t, err)
	require.True(t, typ.Identical(LongVarchar))

	require.Panics(t, func() { MakeDecimal(40, 0) })
}

func TestNullability(t *testing.T) {
	notNull := Integer.WithNullable(false)
	require.False(t, notNull.Nullable())
	require.True(t, Integer.Nullable(), "WithNullable must not mutate the receiver")
	require.Same(t, Integer, Integer.WithNullable(true))
	require.False(t, notNull.Identical(Integer))
	require.True(t, notNull.Equivalent(Integer))
	require.False(t, MakeChar(10).Equivalent(MakeChar(11)))
}

func TestString(t *testing.T) {
	testCases := []struct {
		typ      *T
		expected string
	}{
		{Boolean, "BOOLEAN"},
		{MakeDecimal(11, 6), "DECIMAL(11,6)"},
		{MakeChar(60), "CHAR(60)"},
		{MakeVarchar(60).WithNullable(false), "VARCHAR(60) NOT NULL"},
		{LongVarchar, "LONG VARCHAR"},
		{MakeClob(1024), "CLOB(1024)"},
		{MakeCharForBit(8), "CHAR(8) FOR BIT DATA"},
		{MakeVarcharForBit(8), "VARCHAR(8) FOR BIT DATA"},
		{LongVarcharForBit, "LONG VARCHAR FOR BIT DATA"},
		{MakeBlob(MaxLOBLength), "BLOB(2147483647)"},
		{Timestamp, "TIMESTAMP"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, tc.typ.String())
		// Type names are safe for reporting.
		require.Equal(t, redact.RedactableString(tc.expected), redact.Sprint(tc.typ))
	}
}

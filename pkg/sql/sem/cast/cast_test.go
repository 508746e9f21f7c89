// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

// expectedEntry derives the outcome of a pair from the family groups
// rather than the literal table.
func expectedEntry(a, b types.Family) Entry {
	ga, gb := a.Group(), b.Group()
	higher := func() types.Family {
		if a.Rank() >= b.Rank() {
			return a
		}
		return b
	}
	switch {
	case a == b:
		return Entry{Unified: true, Result: a}
	case a.IsNumeric() && b.IsNumeric():
		if ga == types.ExactNumericGroup && gb == types.ExactNumericGroup {
			return Entry{Unified: true, Result: higher()}
		}
		return Entry{Unified: true, Result: types.DoubleFamily}
	case ga == types.CharacterGroup && gb == types.CharacterGroup:
		return Entry{Unified: true, Result: higher()}
	case ga == types.BinaryGroup && gb == types.BinaryGroup:
		if a == types.BlobFamily || b == types.BlobFamily {
			return Entry{}
		}
		return Entry{Unified: true, Result: higher()}
	case a.IsDatetime() && (b == types.CharFamily || b == types.VarcharFamily):
		return Entry{Unified: true, Result: a, Deferred: true}
	case b.IsDatetime() && (a == types.CharFamily || a == types.VarcharFamily):
		return Entry{Unified: true, Result: b, Deferred: true}
	}
	return Entry{}
}

func TestTableMatchesRules(t *testing.T) {
	for _, a := range types.Families {
		for _, b := range types.Families {
			require.Equal(t, expectedEntry(a, b), Lookup(a, b), "%s, %s", a, b)
		}
	}
}

func TestTotality(t *testing.T) {
	count := 0
	for _, a := range types.Families {
		for _, b := range types.Families {
			e := Lookup(a, b)
			if e.Unified {
				require.True(t, e.Result.Valid(), "%s, %s", a, b)
			} else {
				require.Equal(t, types.Family(0), e.Result, "%s, %s", a, b)
				require.False(t, e.Deferred)
			}
			count++
		}
	}
	require.Equal(t, 18*18, count)

	require.Equal(t, Entry{}, Lookup(types.Family(0), types.IntegerFamily))
	require.Equal(t, Entry{}, Lookup(types.IntegerFamily, types.Family(99)))
}

func TestSymmetry(t *testing.T) {
	for _, a := range types.Families {
		for _, b := range types.Families {
			require.Equal(t, Lookup(a, b), Lookup(b, a), "%s, %s", a, b)
		}
	}
}

// fold unifies families left to right; an incompatible step absorbs the
// rest.
func fold(fs ...types.Family) (types.Family, bool) {
	acc := fs[0]
	for _, f := range fs[1:] {
		e := Lookup(acc, f)
		if !e.Unified {
			return 0, false
		}
		acc = e.Result
	}
	return acc, true
}

func TestAssociativity(t *testing.T) {
	for _, a := range types.Families {
		for _, b := range types.Families {
			for _, c := range types.Families {
				left, okLeft := fold(a, b, c)
				bc, okBC := fold(b, c)
				var right types.Family
				okRight := false
				if okBC {
					right, okRight = fold(a, bc)
				}
				require.Equal(t, okLeft, okRight, "(%s ∪ %s) ∪ %s", a, b, c)
				require.Equal(t, left, right, "(%s ∪ %s) ∪ %s", a, b, c)
			}
		}
	}
}

func TestConcreteEntries(t *testing.T) {
	testCases := []struct {
		a, b     types.Family
		expected string
	}{
		{types.SmallIntFamily, types.DoubleFamily, "DOUBLE"},
		{types.RealFamily, types.RealFamily, "REAL"},
		{types.RealFamily, types.BigIntFamily, "DOUBLE"},
		{types.RealFamily, types.DecimalFamily, "DOUBLE"},
		{types.IntegerFamily, types.DecimalFamily, "DECIMAL"},
		{types.CharFamily, types.VarcharFamily, "VARCHAR"},
		{types.LongVarcharFamily, types.ClobFamily, "CLOB"},
		{types.CharForBitFamily, types.LongVarcharForBitFamily, "LONG_VARCHAR_FOR_BIT"},
		{types.DateFamily, types.CharFamily, "DATE*"},
		{types.VarcharFamily, types.TimestampFamily, "TIMESTAMP*"},
		{types.DateFamily, types.LongVarcharFamily, "-"},
		{types.DateFamily, types.TimestampFamily, "-"},
		{types.BlobFamily, types.CharFamily, "-"},
		{types.BlobFamily, types.VarcharForBitFamily, "-"},
		{types.BlobFamily, types.BlobFamily, "BLOB"},
		{types.BooleanFamily, types.SmallIntFamily, "-"},
		{types.ClobFamily, types.BlobFamily, "-"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s,%s", tc.a.Name(), tc.b.Name()), func(t *testing.T) {
			require.Equal(t, tc.expected, Lookup(tc.a, tc.b).String())
		})
	}
}

func TestWidens(t *testing.T) {
	testCases := []struct {
		from, to types.Family
		widens   bool
		distance int
	}{
		{types.SmallIntFamily, types.SmallIntFamily, true, 0},
		{types.SmallIntFamily, types.IntegerFamily, true, 1},
		{types.SmallIntFamily, types.DecimalFamily, true, 3},
		{types.SmallIntFamily, types.RealFamily, false, 0},
		{types.SmallIntFamily, types.DoubleFamily, true, 5},
		{types.DecimalFamily, types.DoubleFamily, true, 2},
		{types.RealFamily, types.DoubleFamily, true, 1},
		{types.IntegerFamily, types.SmallIntFamily, false, 0},
		{types.DoubleFamily, types.RealFamily, false, 0},
		{types.CharFamily, types.ClobFamily, true, 3},
		{types.VarcharFamily, types.CharFamily, false, 0},
		{types.CharForBitFamily, types.VarcharForBitFamily, true, 1},
		{types.CharForBitFamily, types.BlobFamily, false, 0},
		{types.VarcharFamily, types.DateFamily, false, 0},
		{types.DateFamily, types.VarcharFamily, false, 0},
		{types.BooleanFamily, types.BooleanFamily, true, 0},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s->%s", tc.from.Name(), tc.to.Name()), func(t *testing.T) {
			require.Equal(t, tc.widens, Widens(tc.from, tc.to))
			d, ok := Distance(tc.from, tc.to)
			require.Equal(t, tc.widens, ok)
			require.Equal(t, tc.distance, d)
		})
	}
}

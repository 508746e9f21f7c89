// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cast holds the conversion rank table: for every ordered pair of
// type families, whether the two unify and into which family. The table is
// a constant literal validated at init.
package cast

import (
	"fmt"

	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// Entry is the outcome of unifying two families.
type Entry struct {
	// Unified is false when the families have no common type.
	Unified bool
	// Result is the family both operands convert to. It is zero when the
	// pair is incompatible.
	Result types.Family
	// Deferred marks a character to datetime bridge: the pair unifies
	// statically but each string value is parsed when evaluated, and may
	// fail then.
	Deferred bool
}

// String renders the entry for diagnostics and the table listing. Deferred
// results carry a trailing asterisk and incompatible pairs render as "-".
func (e Entry) String() string {
	if !e.Unified {
		return "-"
	}
	if e.Deferred {
		return e.Result.Name() + "*"
	}
	return e.Result.Name()
}

// Abbreviations used by unifyTable.
const (
	xx = types.Family(0)
	bo = types.BooleanFamily
	si = types.SmallIntFamily
	in = types.IntegerFamily
	bi = types.BigIntFamily
	de = types.DecimalFamily
	re = types.RealFamily
	do = types.DoubleFamily
	ch = types.CharFamily
	vc = types.VarcharFamily
	lv = types.LongVarcharFamily
	cl = types.ClobFamily
	cb = types.CharForBitFamily
	vb = types.VarcharForBitFamily
	lb = types.LongVarcharForBitFamily
	bl = types.BlobFamily
	da = types.DateFamily
	ti = types.TimeFamily
	ts = types.TimestampFamily
)

// unifyTable gives the result family of unifying the row family with the
// column family, both in types.Families order. xx marks incompatible pairs.
var unifyTable = [types.NumFamilies][types.NumFamilies]types.Family{
	//       bo  si  in  bi  de  re  do  ch  vc  lv  cl  cb  vb  lb  bl  da  ti  ts
	/* bo */ {bo, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* si */ {xx, si, in, bi, de, do, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* in */ {xx, in, in, bi, de, do, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* bi */ {xx, bi, bi, bi, de, do, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* de */ {xx, de, de, de, de, do, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* re */ {xx, do, do, do, do, re, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* do */ {xx, do, do, do, do, do, do, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx},
	/* ch */ {xx, xx, xx, xx, xx, xx, xx, ch, vc, lv, cl, xx, xx, xx, xx, da, ti, ts},
	/* vc */ {xx, xx, xx, xx, xx, xx, xx, vc, vc, lv, cl, xx, xx, xx, xx, da, ti, ts},
	/* lv */ {xx, xx, xx, xx, xx, xx, xx, lv, lv, lv, cl, xx, xx, xx, xx, xx, xx, xx},
	/* cl */ {xx, xx, xx, xx, xx, xx, xx, cl, cl, cl, cl, xx, xx, xx, xx, xx, xx, xx},
	/* cb */ {xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, cb, vb, lb, xx, xx, xx, xx},
	/* vb */ {xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, vb, vb, lb, xx, xx, xx, xx},
	/* lb */ {xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, lb, lb, lb, xx, xx, xx, xx},
	/* bl */ {xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, xx, bl, xx, xx, xx},
	/* da */ {xx, xx, xx, xx, xx, xx, xx, da, da, xx, xx, xx, xx, xx, xx, da, xx, xx},
	/* ti */ {xx, xx, xx, xx, xx, xx, xx, ti, ti, xx, xx, xx, xx, xx, xx, xx, ti, xx},
	/* ts */ {xx, xx, xx, xx, xx, xx, xx, ts, ts, xx, xx, xx, xx, xx, xx, xx, xx, ts},
}

// table is unifyTable expanded into entries, indexed by family.
var table [types.NumFamilies + 1][types.NumFamilies + 1]Entry

// Lookup returns the outcome of unifying a and b. Invalid families are
// incompatible with everything.
func Lookup(a, b types.Family) Entry {
	if !a.Valid() || !b.Valid() {
		return Entry{}
	}
	return table[a][b]
}

// Widens returns whether a value of family from converts implicitly to
// family to when bound to a routine parameter: the two unify into to, and
// not through a deferred string parse.
func Widens(from, to types.Family) bool {
	e := Lookup(from, to)
	return e.Unified && e.Result == to && !e.Deferred
}

// Distance returns how many steps of the conversion order separate from
// and to. ok is false when from does not widen to to. Identical families
// are at distance zero.
func Distance(from, to types.Family) (d int, ok bool) {
	if !Widens(from, to) {
		return 0, false
	}
	return precedence(to) - precedence(from), true
}

// precedence places the numeric families on one scale, SMALLINT lowest and
// DOUBLE highest. Other families use their rank within the group.
func precedence(f types.Family) int {
	if f.Group() == types.ApproxNumericGroup {
		return types.DecimalFamily.Rank() + 1 + f.Rank()
	}
	return f.Rank()
}

func isBridge(a, b types.Family) bool {
	switch a {
	case types.CharFamily, types.VarcharFamily:
		return b.IsDatetime()
	}
	return false
}

func init() {
	for i, a := range types.Families {
		for j, b := range types.Families {
			r := unifyTable[i][j]
			if r != unifyTable[j][i] {
				panic(fmt.Sprintf("rank table is not symmetric: %s,%s -> %s but %s,%s -> %s",
					a, b, r, b, a, unifyTable[j][i]))
			}
			if r == xx {
				table[a][b] = Entry{}
				continue
			}
			if !r.Valid() {
				panic(fmt.Sprintf("rank table entry %s,%s has invalid family %d", a, b, r))
			}
			if r != a && r != b && r != types.DoubleFamily {
				panic(fmt.Sprintf("rank table entry %s,%s -> %s is neither operand", a, b, r))
			}
			table[a][b] = Entry{Unified: true, Result: r, Deferred: isBridge(a, b) || isBridge(b, a)}
		}
		if unifyTable[i][i] != a {
			panic(fmt.Sprintf("rank table is not reflexive for %s", a))
		}
	}
}

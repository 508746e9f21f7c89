// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package unify

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// Calculator computes the attributes of the type two descriptors unify
// into, once the result family is known.
type Calculator struct {
	// MaxDecimalPrecision bounds the precision of DECIMAL results.
	MaxDecimalPrecision int32
}

// Decimal returns the precision and scale of the union of DECIMAL(p1,s1)
// and DECIMAL(p2,s2): enough integer digits for either operand and the
// larger scale. clamped reports whether the precision was reduced to
// MaxDecimalPrecision, in which case integer digits were lost.
func (c Calculator) Decimal(p1, s1, p2, s2 int32) (precision, scale int32, clamped bool) {
	scale = max(s1, s2)
	precision = max(p1-s1, p2-s2) + scale
	if precision > c.MaxDecimalPrecision {
		return c.MaxDecimalPrecision, min(scale, c.MaxDecimalPrecision), true
	}
	return precision, scale, false
}

// Length returns the family and maximum length of the union of two
// length-bearing operands whose families unify into f. A length above the
// ceiling of f moves the result up the family chain; at the top of the
// chain the length is capped.
func (c Calculator) Length(f types.Family, l1, l2 int32) (types.Family, int32) {
	length := max(l1, l2)
	for length > f.MaxLength() {
		next, ok := f.Next()
		if !ok {
			return f, f.MaxLength()
		}
		f = next
	}
	return f, length
}

// Result builds the descriptor a and b unify into given the result family
// from the rank table. The result is nullable if either operand is.
func (c Calculator) Result(f types.Family, a, b *types.T) (_ *types.T, clamped bool, _ error) {
	var precision, scale, length int32
	switch {
	case f == types.DecimalFamily:
		// Exact integers contribute their nominal digits, e.g. INTEGER is
		// DECIMAL(10,0).
		precision, scale, clamped = c.Decimal(a.Precision(), a.Scale(), b.Precision(), b.Scale())
	case f.HasLength():
		f, length = c.Length(f, a.MaxLength(), b.MaxLength())
	}
	res, err := types.MakeScalar(f, precision, scale, length)
	if err != nil {
		return nil, false, errors.NewAssertionErrorWithWrappedErrf(err,
			"computing the union of %s and %s", redact.Safe(a), redact.Safe(b))
	}
	return res.WithNullable(a.Nullable() || b.Nullable()), clamped, nil
}

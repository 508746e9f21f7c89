// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// LimitDecimalWidth rounds d in place to the scale of t and checks that the
// result fits the precision of t. A value with too many integer digits
// fails with SQLSTATE 22003; this is how a DECIMAL union whose precision
// was clamped reports values that do not fit.
func LimitDecimalWidth(t *types.T, d *apd.Decimal) error {
	if t.Family() != types.DecimalFamily {
		return errors.AssertionFailedf("%s is not a DECIMAL type", t)
	}
	if d.Form != apd.Finite {
		return nil
	}
	precision, scale := t.Precision(), t.Scale()
	c := apd.BaseContext.WithPrecision(uint32(precision))
	c.Rounding = apd.RoundHalfUp
	c.Traps = apd.InvalidOperation
	if _, err := c.Quantize(d, d, -scale); err != nil {
		lt := "1"
		if v := precision - scale; v > 0 {
			lt = fmt.Sprintf("10^%d", v)
		}
		return pgerror.Newf(pgcode.NumericValueOutOfRange,
			"value with precision %d, scale %d must round to an absolute value less than %s",
			redact.Safe(precision), redact.Safe(scale), redact.Safe(lt))
	}
	return nil
}

// ParseDecimal parses s and limits it to the width of t.
func ParseDecimal(t *types.T, s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidCharacterValue,
			"invalid character value for cast to %s", t)
	}
	if err := LimitDecimalWidth(t, d); err != nil {
		return nil, err
	}
	return d, nil
}

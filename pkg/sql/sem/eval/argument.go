// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package eval holds the run-time checks that complete the static
// decisions of unification and overload resolution: parsing strings
// bridged into datetime types, fitting values into clamped DECIMAL types,
// and refusing NULL for parameters bound in their natural representation.
package eval

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
)

// ErrNullIntoNatural marks the failure of CheckArgument.
var ErrNullIntoNatural = errors.New("NULL bound to a natural representation")

// CheckArgument verifies that an argument value can be bound to parameter
// pos of the resolved routine sig. Binding NULL to a parameter in its
// natural representation fails with SQLSTATE 39004.
func CheckArgument(sig *overload.Signature, pos int, isNull bool) error {
	if pos < 0 || pos >= sig.Arity() {
		return errors.AssertionFailedf("%s has no parameter %d", sig, redact.Safe(pos+1))
	}
	p := sig.Params[pos]
	if !isNull || p.Kind != hostrep.Natural {
		return nil
	}
	err := pgerror.Newf(pgcode.NullIntoNatural,
		"the NULL value cannot be passed to parameter %d of %s, which is bound as %s",
		redact.Safe(pos+1), redact.Safe(sig.Name), redact.Safe(p.HostType()))
	err = errors.WithHint(err, "declare the parameter with the nullable representation")
	return pgerror.WithArgPosition(errors.Mark(err, ErrNullIntoNatural), pos)
}

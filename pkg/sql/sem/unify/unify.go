// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package unify computes the result type of type-merging constructs such as
// COALESCE and VALUE: the single type, precision and scale included, that
// every operand converts to.
package unify

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/settings"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/cockroachdb/sqlres/pkg/util/log"
)

// OverflowPolicy selects what happens when a DECIMAL union needs more
// precision than the maximum.
type OverflowPolicy int64

const (
	// OverflowDefer clamps the precision. Values that do not fit fail when
	// evaluated.
	OverflowDefer OverflowPolicy = iota
	// OverflowReject makes the union incompatible.
	OverflowReject
)

// MaxDecimalPrecision bounds the precision of unified DECIMAL types.
var MaxDecimalPrecision = settings.RegisterIntSetting(
	"sql.types.max_decimal_precision",
	"the largest precision of a DECIMAL produced by unification",
	types.MaxDecimalPrecision,
	settings.IntInRange(1, types.MaxDecimalPrecision),
)

// DecimalOverflowPolicy selects the OverflowPolicy.
var DecimalOverflowPolicy = settings.RegisterEnumSetting(
	"sql.types.decimal_overflow_policy",
	"what to do when a DECIMAL union exceeds sql.types.max_decimal_precision: "+
		"defer clamps the precision and checks values at run time, reject fails the statement",
	"defer",
	map[int64]string{
		int64(OverflowDefer):  "defer",
		int64(OverflowReject): "reject",
	},
)

// Markers distinguishing the failures of this package with errors.Is.
var (
	ErrIncompatible      = errors.New("incompatible operand types")
	ErrPrecisionOverflow = errors.New("decimal precision overflow")
	ErrTooFewOperands    = errors.New("too few operands")
	ErrUntypedOperands   = errors.New("all operands are untyped parameters")
)

// Reason classifies an incompatible outcome.
type Reason int8

const (
	// ReasonNone is the reason of a unified outcome.
	ReasonNone Reason = iota
	// ReasonFamily means the operand families have no common type.
	ReasonFamily
	// ReasonPrecision means the DECIMAL union exceeds the maximum precision
	// under OverflowReject.
	ReasonPrecision
)

// Outcome is the result of unifying operand types.
type Outcome struct {
	// Type is the unified type, or nil if the operands are incompatible.
	Type *types.T
	// Deferred is set when some operand reaches Type through a string to
	// datetime bridge, so that its values are parsed when evaluated.
	Deferred bool
	// Clamped is set when a DECIMAL precision was reduced to the maximum.
	Clamped bool

	// Reason and Position describe an incompatible outcome. Position is the
	// zero-based index of the operand that could not be unified with the
	// operands before it.
	Reason   Reason
	Position int
	// prefix is the type of the operands before Position, and operand the
	// type at Position.
	prefix, operand *types.T
}

// Unified returns whether the operands have a common type.
func (o Outcome) Unified() bool { return o.Type != nil }

// Err returns nil for a unified outcome, and otherwise an error carrying
// SQLSTATE 42815 (or 42611 for a rejected precision overflow), the
// operand position and an errors.Is marker.
func (o Outcome) Err() error {
	var err error
	switch o.Reason {
	case ReasonNone:
		return nil
	case ReasonFamily:
		err = pgerror.Newf(pgcode.DatatypeMismatch,
			"operand %d of type %s is not compatible with type %s",
			redact.Safe(o.Position+1), o.operand, o.prefix)
		err = errors.Mark(err, ErrIncompatible)
	case ReasonPrecision:
		err = pgerror.Newf(pgcode.InvalidLength,
			"operand %d of type %s cannot be unified with type %s without exceeding the maximum DECIMAL precision",
			redact.Safe(o.Position+1), o.operand, o.prefix)
		err = errors.WithHint(err, "set sql.types.decimal_overflow_policy to defer to clamp the precision")
		err = errors.Mark(errors.Mark(err, ErrIncompatible), ErrPrecisionOverflow)
	default:
		return errors.AssertionFailedf("unknown reason %d", redact.Safe(o.Reason))
	}
	return pgerror.WithArgPosition(err, o.Position)
}

// DeferredPositions returns the positions of the operands whose values are
// parsed into the unified datetime type when evaluated.
func (o Outcome) DeferredPositions(operands ...*types.T) []int {
	if !o.Deferred {
		return nil
	}
	var res []int
	for i, t := range operands {
		if t != nil && t.Family().IsCharacter() {
			res = append(res, i)
		}
	}
	return res
}

// Unifier unifies operand types under the settings of an engine instance.
// It holds no other state and is safe for concurrent use.
type Unifier struct {
	sv *settings.Values
}

// NewUnifier returns a Unifier reading its settings from sv. A nil sv uses
// the defaults.
func NewUnifier(sv *settings.Values) *Unifier {
	if sv == nil {
		sv = settings.MakeValues()
	}
	return &Unifier{sv: sv}
}

func (u *Unifier) calculator() Calculator {
	return Calculator{MaxDecimalPrecision: int32(MaxDecimalPrecision.Get(u.sv))}
}

func (u *Unifier) policy() OverflowPolicy {
	return OverflowPolicy(DecimalOverflowPolicy.Get(u.sv))
}

// Pair unifies two typed operands, the step that Unify folds over an
// operand list. Untyped parameters have no meaning for a single pair: a nil
// operand is an assertion failure, not an untyped parameter.
func (u *Unifier) Pair(ctx context.Context, a, b *types.T) (Outcome, error) {
	for i, t := range []*types.T{a, b} {
		if t == nil {
			return Outcome{}, errors.AssertionFailedf("operand %d of a pair is untyped", redact.Safe(i+1))
		}
	}
	var o Outcome
	o.Type = u.union(ctx, u.calculator(), u.policy(), &o, a, b, 1)
	return o, nil
}

// Unify left-folds the pairwise union over the operands. Nil operands are
// untyped parameters: they are skipped and take the unified type, and make
// it nullable. With no typed operand the outcome is an unresolved nil
// Type with ReasonNone; callers that require a type use Coalesce.
func (u *Unifier) Unify(ctx context.Context, operands ...*types.T) Outcome {
	calc, policy := u.calculator(), u.policy()

	var o Outcome
	var acc *types.T
	untyped := false
	for i, t := range operands {
		if t == nil {
			untyped = true
			continue
		}
		if acc == nil {
			acc = t
			continue
		}
		if acc = u.union(ctx, calc, policy, &o, acc, t, i); acc == nil {
			return o
		}
	}
	if acc != nil && untyped {
		acc = acc.WithNullable(true)
	}
	o.Type = acc
	if acc != nil {
		log.VEventf(ctx, 3, "unified %d operands into %s", len(operands), acc)
	}
	return o
}

// union returns the union of acc, the type of the operands before pos, and
// t, the type at pos, accumulating the Deferred and Clamped flags into o.
// It returns nil after recording the reason and position of an
// incompatibility in o.
func (u *Unifier) union(
	ctx context.Context, calc Calculator, policy OverflowPolicy, o *Outcome, acc, t *types.T, pos int,
) *types.T {
	e := cast.Lookup(acc.Family(), t.Family())
	if !e.Unified {
		log.VEventf(ctx, 2, "operand %d: %s and %s are incompatible", pos+1, acc, t)
		*o = Outcome{Reason: ReasonFamily, Position: pos, prefix: acc, operand: t}
		return nil
	}
	res, clamped, err := calc.Result(e.Result, acc, t)
	if err != nil {
		panic(err)
	}
	if clamped {
		if policy == OverflowReject {
			log.VEventf(ctx, 2, "operand %d: DECIMAL union of %s and %s exceeds precision %d",
				pos+1, acc, t, calc.MaxDecimalPrecision)
			*o = Outcome{Reason: ReasonPrecision, Position: pos, prefix: acc, operand: t}
			return nil
		}
		o.Clamped = true
	}
	o.Deferred = o.Deferred || e.Deferred
	return res
}

// Coalesce unifies the operands of COALESCE or VALUE. It returns an error
// for malformed operand lists: fewer than two operands (42605), or no typed
// operand (42610). Incompatible operands are reported in the outcome.
func (u *Unifier) Coalesce(ctx context.Context, operands ...*types.T) (Outcome, error) {
	if len(operands) < 2 {
		err := pgerror.Newf(pgcode.WrongArgumentCount,
			"COALESCE requires at least two operands, got %d", redact.Safe(len(operands)))
		return Outcome{}, errors.Mark(err, ErrTooFewOperands)
	}
	o := u.Unify(ctx, operands...)
	if o.Type == nil && o.Reason == ReasonNone {
		err := pgerror.New(pgcode.UntypedParameters,
			"all the operands of COALESCE are untyped parameters; at least one must have a type")
		return Outcome{}, errors.Mark(err, ErrUntypedOperands)
	}
	return o, nil
}

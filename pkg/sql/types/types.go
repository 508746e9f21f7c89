// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types describes SQL types as immutable descriptors. A descriptor
// pairs a Family with the attributes that parameterize it: precision and
// scale for numerics, a maximum length for the character, binary and LOB
// families, and nullability.
//
// Descriptors are shared freely between goroutines. Methods that change an
// attribute return a copy.
package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/lib/pq/oid"
)

// T is a SQL type descriptor.
type T struct {
	family    Family
	precision int32
	scale     int32
	maxLength int32
	nullable  bool
}

// Descriptors of the families whose attributes are fixed. All of them are
// nullable; use WithNullable(false) for a NOT NULL variant.
var (
	Boolean           = makeFixed(BooleanFamily)
	SmallInt          = makeFixed(SmallIntFamily)
	Integer           = makeFixed(IntegerFamily)
	BigInt            = makeFixed(BigIntFamily)
	Real              = makeFixed(RealFamily)
	Double            = makeFixed(DoubleFamily)
	LongVarchar       = &T{family: LongVarcharFamily, maxLength: MaxLongVarcharLength, nullable: true}
	LongVarcharForBit = &T{family: LongVarcharForBitFamily, maxLength: MaxLongVarcharLength, nullable: true}
	Date              = makeFixed(DateFamily)
	Time              = makeFixed(TimeFamily)
	Timestamp         = makeFixed(TimestampFamily)
)

// Default attributes applied by Parse when a type name omits them.
const (
	DefaultDecimalPrecision = 5
	DefaultDecimalScale     = 0
	DefaultCharLength       = 1
)

func makeFixed(f Family) *T {
	return &T{family: f, precision: f.NominalPrecision(), scale: f.NominalScale(), nullable: true}
}

// MakeDecimal constructs a nullable DECIMAL(precision, scale). It panics if
// the attributes are invalid; use MakeScalar to validate user input.
func MakeDecimal(precision, scale int32) *T {
	return mustMake(DecimalFamily, precision, scale, 0)
}

// MakeChar constructs a nullable CHAR(length).
func MakeChar(length int32) *T { return mustMake(CharFamily, 0, 0, length) }

// MakeVarchar constructs a nullable VARCHAR(length).
func MakeVarchar(length int32) *T { return mustMake(VarcharFamily, 0, 0, length) }

// MakeClob constructs a nullable CLOB(length).
func MakeClob(length int32) *T { return mustMake(ClobFamily, 0, 0, length) }

// MakeCharForBit constructs a nullable CHAR(length) FOR BIT DATA.
func MakeCharForBit(length int32) *T { return mustMake(CharForBitFamily, 0, 0, length) }

// MakeVarcharForBit constructs a nullable VARCHAR(length) FOR BIT DATA.
func MakeVarcharForBit(length int32) *T { return mustMake(VarcharForBitFamily, 0, 0, length) }

// MakeBlob constructs a nullable BLOB(length).
func MakeBlob(length int32) *T { return mustMake(BlobFamily, 0, 0, length) }

func mustMake(f Family, precision, scale, maxLength int32) *T {
	t, err := MakeScalar(f, precision, scale, maxLength)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "invalid %s descriptor", redact.Safe(f)))
	}
	return t
}

// MakeScalar constructs a nullable descriptor of the given family after
// validating the attributes. Attributes that the family does not declare
// are ignored and replaced by the family's nominal values.
func MakeScalar(f Family, precision, scale, maxLength int32) (*T, error) {
	if !f.Valid() {
		return nil, errors.AssertionFailedf("invalid type family %d", redact.Safe(int32(f)))
	}
	t := &T{family: f, nullable: true}
	switch {
	case f == DecimalFamily:
		if precision < 1 || precision > MaxDecimalPrecision {
			return nil, pgerror.Newf(pgcode.InvalidPrecision,
				"DECIMAL precision %d is out of range [1, %d]",
				redact.Safe(precision), redact.Safe(MaxDecimalPrecision))
		}
		if scale < 0 || scale > precision {
			return nil, pgerror.Newf(pgcode.InvalidPrecision,
				"DECIMAL scale %d is out of range [0, %d]", redact.Safe(scale), redact.Safe(precision))
		}
		t.precision, t.scale = precision, scale
	case f.HasLength():
		switch f {
		case LongVarcharFamily, LongVarcharForBitFamily:
			maxLength = f.MaxLength()
		}
		if maxLength < 1 || maxLength > f.MaxLength() {
			return nil, pgerror.Newf(pgcode.InvalidLength,
				"the length %d is not valid for %s; it must be in [1, %d]",
				redact.Safe(maxLength), redact.Safe(f), redact.Safe(f.MaxLength()))
		}
		t.maxLength = maxLength
	default:
		t.precision, t.scale = f.NominalPrecision(), f.NominalScale()
	}
	return t, nil
}

// Family returns the family of the type.
func (t *T) Family() Family { return t.family }

// Precision returns the precision of a numeric or datetime type: declared
// for DECIMAL, nominal otherwise. It is zero for length-bearing families.
func (t *T) Precision() int32 { return t.precision }

// Scale returns the scale of the type.
func (t *T) Scale() int32 { return t.scale }

// MaxLength returns the maximum length in characters or bytes of a
// character, binary or LOB type, and zero for the other families.
func (t *T) MaxLength() int32 { return t.maxLength }

// Nullable returns whether values of the type may be NULL.
func (t *T) Nullable() bool { return t.nullable }

// Oid returns the pgwire OID reported for the type.
func (t *T) Oid() oid.Oid { return t.family.Oid() }

// WithNullable returns a copy of t with the given nullability, or t itself
// when it already matches.
func (t *T) WithNullable(nullable bool) *T {
	if t.nullable == nullable {
		return t
	}
	c := *t
	c.nullable = nullable
	return &c
}

// Identical returns whether t and other agree on every attribute,
// nullability included.
func (t *T) Identical(other *T) bool {
	return *t == *other
}

// Equivalent returns whether t and other agree on every attribute except
// nullability.
func (t *T) Equivalent(other *T) bool {
	return t.WithNullable(true).Identical(other.WithNullable(true))
}

// SQLString returns the SQL spelling of the type, without nullability.
func (t *T) SQLString() string {
	switch t.family {
	case DecimalFamily:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.precision, t.scale)
	case CharFamily, VarcharFamily, ClobFamily, BlobFamily:
		return fmt.Sprintf("%s(%d)", t.family, t.maxLength)
	case CharForBitFamily:
		return fmt.Sprintf("CHAR(%d) FOR BIT DATA", t.maxLength)
	case VarcharForBitFamily:
		return fmt.Sprintf("VARCHAR(%d) FOR BIT DATA", t.maxLength)
	}
	return t.family.String()
}

// String implements fmt.Stringer. NOT NULL types carry the suffix.
func (t *T) String() string {
	return redact.StringWithoutMarkers(t)
}

// SafeFormat implements redact.SafeFormatter. Type names never contain user
// data.
func (t *T) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(t.SQLString()))
	if !t.nullable {
		w.SafeString(" NOT NULL")
	}
}

var _ redact.SafeFormatter = (*T)(nil)

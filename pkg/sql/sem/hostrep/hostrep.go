// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package hostrep maps SQL type families to the Go types external routines
// receive their arguments as.
//
// Every family has three representations, in order of preference: the
// natural one, which cannot hold NULL (int16 for SMALLINT); the nullable
// one (*int16); and any. Binding a value that may be NULL to a natural
// representation is statically legal but fails when a NULL arrives.
package hostrep

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// Kind indexes the representations of a family.
type Kind int8

const (
	// Natural is the representation that cannot hold NULL.
	Natural Kind = iota
	// Nullable is the pointer form of the natural representation.
	Nullable
	// Any is the untyped representation.
	Any

	numKinds = 3
)

var kindNames = [numKinds]string{"natural", "nullable", "any"}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// SafeValue implements redact.SafeValue.
func (k Kind) SafeValue() {}

var _ redact.SafeValue = Kind(0)

// ParseKind parses the name of a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, errors.Newf("unknown representation kind %q", s)
}

// Rep is a host representation.
type Rep struct {
	Kind Kind
	// GoType is the Go type the value is bound as.
	GoType string
}

// Mapping lists the representations of a family, indexed by Kind.
type Mapping [numKinds]Rep

// naturalTypes gives the natural Go type of each family; the nullable type
// is its pointer.
var naturalTypes = map[types.Family]string{
	types.BooleanFamily:           "bool",
	types.SmallIntFamily:          "int16",
	types.IntegerFamily:           "int32",
	types.BigIntFamily:            "int64",
	types.DecimalFamily:           "apd.Decimal",
	types.RealFamily:              "float32",
	types.DoubleFamily:            "float64",
	types.CharFamily:              "string",
	types.VarcharFamily:           "string",
	types.LongVarcharFamily:       "string",
	types.ClobFamily:              "string",
	types.CharForBitFamily:        "[]byte",
	types.VarcharForBitFamily:     "[]byte",
	types.LongVarcharForBitFamily: "[]byte",
	types.BlobFamily:              "[]byte",
	types.DateFamily:              "time.Time",
	types.TimeFamily:              "time.Time",
	types.TimestampFamily:         "time.Time",
}

var mappings [types.NumFamilies + 1]Mapping

func init() {
	for _, f := range types.Families {
		natural, ok := naturalTypes[f]
		if !ok {
			panic(errors.AssertionFailedf("no host representation for %s", f))
		}
		mappings[f] = Mapping{
			{Kind: Natural, GoType: natural},
			{Kind: Nullable, GoType: "*" + natural},
			{Kind: Any, GoType: "any"},
		}
	}
}

// For returns the representations of family f. It panics on an invalid
// family.
func For(f types.Family) Mapping {
	if !f.Valid() {
		panic(errors.AssertionFailedf("invalid family %d", redact.Safe(int32(f))))
	}
	return mappings[f]
}

// Rank returns the cost of binding an operand to a representation of kind
// k: lower is more specific. Natural and nullable bindings are equally
// specific whatever the nullability of the operand; a NULL reaching a
// natural binding is caught when the call is evaluated. ok is false for an
// unknown kind.
func Rank(k Kind) (rank int, ok bool) {
	switch k {
	case Natural, Nullable:
		return 1, true
	case Any:
		return 2, true
	}
	return 0, false
}

// Signature is an explicit list of host types, one per parameter, that
// selects a routine overload without ranking.
type Signature []string

// String renders the signature in the syntax ParseSignature accepts.
func (s Signature) String() string {
	return "(" + strings.Join(s, ", ") + ")"
}

// ParseSignature parses a parenthesized, comma-separated list of Go host
// types such as "(int32, *bool)". interface{} is accepted as a synonym of
// any.
func ParseSignature(s string) (Signature, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return nil, pgerror.Newf(pgcode.Syntax,
			"host signature %q must be a parenthesized list of types", s)
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return Signature{}, nil
	}
	parts := strings.Split(inner, ",")
	sig := make(Signature, len(parts))
	for i, p := range parts {
		p = strings.Join(strings.Fields(p), "")
		if p == "interface{}" {
			p = "any"
		}
		if !isHostType(p) {
			return nil, pgerror.WithArgPosition(pgerror.Newf(pgcode.Syntax,
				"host signature %q: %q is not a host type", s, p), i)
		}
		sig[i] = p
	}
	return sig, nil
}

func isHostType(s string) bool {
	if s == "any" {
		return true
	}
	base := strings.TrimPrefix(s, "*")
	for _, natural := range naturalTypes {
		if base == natural {
			return true
		}
	}
	return false
}

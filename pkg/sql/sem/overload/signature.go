// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"strings"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// Param is a routine parameter. It accepts operands whose family widens to
// the family of Type, bound as the representation of kind Kind.
type Param struct {
	Name string
	Type *types.T
	Kind hostrep.Kind
}

// Accepts returns whether an operand of family f can be bound to p.
func (p Param) Accepts(f types.Family) bool {
	return cast.Widens(f, p.Type.Family())
}

// HostType returns the Go type the parameter is bound as.
func (p Param) HostType() string {
	return hostrep.For(p.Type.Family())[p.Kind].GoType
}

// Return describes the value a routine returns. A nil Type marks a
// procedure, which returns nothing.
type Return struct {
	Type *types.T
	Kind hostrep.Kind
}

// Signature is one overload of an external routine.
type Signature struct {
	Name string
	// ExternalName names the Go function implementing the routine.
	ExternalName string
	Params       []Param
	Return       Return
}

// Arity returns the number of parameters.
func (s *Signature) Arity() int { return len(s.Params) }

// IsProcedure returns whether the routine returns no value.
func (s *Signature) IsProcedure() bool { return s.Return.Type == nil }

// HostSignature returns the host types of the parameters.
func (s *Signature) HostSignature() hostrep.Signature {
	sig := make(hostrep.Signature, len(s.Params))
	for i, p := range s.Params {
		sig[i] = p.HostType()
	}
	return sig
}

// String implements fmt.Stringer.
func (s *Signature) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter. Routine names are treated as
// safe, like other schema identifiers.
func (s *Signature) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.Name))
	w.SafeRune('(')
	for i, p := range s.Params {
		if i > 0 {
			w.SafeString(", ")
		}
		w.Printf("%s %s", p.Type.WithNullable(true), p.Kind)
	}
	w.SafeRune(')')
	if s.Return.Type != nil {
		w.Printf(" RETURNS %s %s", s.Return.Type.WithNullable(true), s.Return.Kind)
	}
}

var _ redact.SafeFormatter = (*Signature)(nil)

// formatCall renders a call for diagnostics, e.g. f(SMALLINT, ?).
func formatCall(name string, operands []*types.T) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, t := range operands {
		if i > 0 {
			b.WriteString(", ")
		}
		if t == nil {
			b.WriteByte('?')
		} else {
			b.WriteString(t.WithNullable(true).String())
		}
	}
	b.WriteByte(')')
	return b.String()
}

// ReturnContext describes what the calling expression requires of the
// routine's return value.
type ReturnContext struct {
	// WantsValue is set when the call appears in an expression, so that a
	// procedure cannot serve it.
	WantsValue bool
	// Desired, if valid, is the family the return value must widen to.
	Desired types.Family
	// NonNull requires a return representation that cannot hold NULL.
	NonNull bool
}

// admits returns whether a routine returning ret can serve the context.
func (rc ReturnContext) admits(ret Return) bool {
	if ret.Type == nil {
		return !rc.WantsValue && !rc.Desired.Valid() && !rc.NonNull
	}
	if rc.Desired.Valid() && !cast.Widens(ret.Type.Family(), rc.Desired) {
		return false
	}
	if rc.NonNull && ret.Kind != hostrep.Natural {
		return false
	}
	return true
}

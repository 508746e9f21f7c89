// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgcode

// Code is a wrapper around a string to ensure that pgcodes are used in
// different pgerror functions by avoiding accidental string input.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pgcode string.
func (c Code) String() string {
	return c.code
}

// SafeValue implements the redact.SafeValue interface.
func (c Code) SafeValue() {}

// Class returns the two-character class of the SQLSTATE.
func (c Code) Class() string {
	if len(c.code) < 2 {
		return c.code
	}
	return c.code[:2]
}

// SQLSTATE codes raised by type unification, routine resolution and the
// runtime checks that back them. The values follow the DB2 conventions used
// by embedded Java databases.
var (
	// Uncategorized is used for errors that flow out to a client
	// when there's no code known yet.
	Uncategorized = MakeCode("XXUUU")
	// Internal is used for assertion failures.
	Internal = MakeCode("XX000")

	// Section: Class 22 - Data Exception
	NumericValueOutOfRange = MakeCode("22003")
	InvalidDatetimeFormat  = MakeCode("22007")
	DatetimeFieldOverflow  = MakeCode("22008")
	InvalidCharacterValue  = MakeCode("22018")

	// Section: Class 39 - External Routine Invocation Exception
	NullIntoNatural = MakeCode("39004")

	// Section: Class 42 - Syntax Error or Access Rule Violation
	Syntax             = MakeCode("42X01")
	WrongArgumentCount = MakeCode("42605")
	UntypedParameters  = MakeCode("42610")
	InvalidLength      = MakeCode("42611")
	DatatypeMismatch   = MakeCode("42815")
	InvalidPrecision   = MakeCode("42X48")
	UndefinedRoutine   = MakeCode("42X50")
	UndefinedType      = MakeCode("42X51")
	AmbiguousRoutine   = MakeCode("42X73")
	IneligibleRoutine  = MakeCode("42Y03")

	// Section: Class X0 - Execution exceptions
	DuplicateObject = MakeCode("X0Y68")
)

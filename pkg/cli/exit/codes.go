// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exit defines the process exit codes of the command-line tool.
package exit

import "os"

// Code represents an exit code.
type Code struct {
	code int
}

// Int returns the numeric exit code.
func (c Code) Int() int { return c.code }

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition that is not a diagnostic about the input.
func UnspecifiedError() Code { return Code{1} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// Rejected (125) indicates that the input was well-formed but was
// rejected with a SQLSTATE diagnostic, such as an ambiguous call or
// incompatible operands.
func Rejected() Code { return Code{125} }

// WithCode terminates the process with the given code.
func WithCode(code Code) {
	os.Exit(code.code)
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// NoPosition is returned by GetArgPosition when the error does not
// refer to a specific operand or parameter.
const NoPosition = -1

// WithArgPosition annotates err with the zero-based ordinal of the operand
// or routine parameter that caused it. Positions are rendered one-based in
// messages, matching how users count arguments.
func WithArgPosition(err error, pos int) error {
	if err == nil || pos < 0 {
		return err
	}
	return &withArgPosition{cause: err, pos: pos}
}

// GetArgPosition returns the outermost position annotation of err, or
// NoPosition.
func GetArgPosition(err error) int {
	var w *withArgPosition
	if errors.As(err, &w) {
		return w.pos
	}
	return NoPosition
}

type withArgPosition struct {
	cause error
	pos   int
}

var _ errors.SafeFormatter = (*withArgPosition)(nil)

func (w *withArgPosition) Error() string { return w.cause.Error() }
func (w *withArgPosition) Cause() error  { return w.cause }
func (w *withArgPosition) Unwrap() error { return w.cause }

// Format implements the fmt.Formatter interface.
func (w *withArgPosition) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

// SafeFormatError implements errors.SafeFormatter.
func (w *withArgPosition) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("argument position: %d", redact.Safe(w.pos+1))
	}
	return w.cause
}

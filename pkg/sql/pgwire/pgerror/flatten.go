// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
)

// Error is the flattened form of an error chain, as handed to the layer
// that formats diagnostics for clients.
type Error struct {
	Code    string
	Message string
	Detail  string
	Hint    string
	// Position is the zero-based operand or parameter ordinal, or
	// NoPosition.
	Position int
}

// Error implements the error interface.
func (pg *Error) Error() string { return pg.Message }

// InternalErrorPrefix is prepended to error messages for internal errors.
const InternalErrorPrefix = "internal error: "

// Flatten turns any error into a pgerror with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:     GetPGCode(err).String(),
		Message:  err.Error(),
		Detail:   errors.FlattenDetails(err),
		Hint:     errors.FlattenHints(err),
		Position: GetArgPosition(err),
	}
	if resErr.Code == pgcode.Internal.String() &&
		!strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
		resErr.Message = InternalErrorPrefix + resErr.Message
	}
	return resErr
}

// Report renders the error the way the command-line tools print it, one
// field per line. The position is rendered one-based.
func (pg *Error) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ERROR: %s\nSQLSTATE: %s", pg.Message, pg.Code)
	if pg.Detail != "" {
		fmt.Fprintf(&b, "\nDETAIL: %s", pg.Detail)
	}
	if pg.Hint != "" {
		fmt.Fprintf(&b, "\nHINT: %s", pg.Hint)
	}
	if pg.Position != NoPosition {
		fmt.Fprintf(&b, "\nPOSITION: %d", pg.Position+1)
	}
	return b.String()
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// datetimeForm is an accepted string form of a datetime family: the layout
// passed to time.Parse and the shape a string must have for the layout to
// apply. Strings of the right shape that fail to parse have a field out of
// range.
type datetimeForm struct {
	layout string
	shape  *regexp.Regexp
}

func form(layout, shape string) datetimeForm {
	return datetimeForm{layout: layout, shape: regexp.MustCompile(`^` + shape + `$`)}
}

// fraction matches the optional fractional seconds time.Parse accepts after
// a seconds field.
const fraction = `(?:[.,]\d+)?`

// datetimeForms lists the accepted string forms of each datetime family.
// DATE accepts the ISO, USA and European forms; TIME the ISO, JIS, European
// and USA forms; TIMESTAMP the ISO and IBM forms.
var datetimeForms = map[types.Family][]datetimeForm{
	types.DateFamily: {
		form("2006-01-02", `\d{4}-\d{2}-\d{2}`),
		form("01/02/2006", `\d{2}/\d{2}/\d{4}`),
		form("02.01.2006", `\d{2}\.\d{2}\.\d{4}`),
	},
	types.TimeFamily: {
		form("15:04:05", `\d{1,2}:\d{2}:\d{2}`+fraction),
		form("15:04", `\d{1,2}:\d{2}`),
		form("15.04.05", `\d{1,2}\.\d{2}\.\d{2}`+fraction),
		form("15.04", `\d{1,2}\.\d{2}`),
		form("03:04 PM", `\d{2}:\d{2} [AP]M`),
	},
	types.TimestampFamily: {
		form("2006-01-02 15:04:05", `\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}:\d{2}`+fraction),
		form("2006-01-02-15.04.05", `\d{4}-\d{2}-\d{2}-\d{1,2}\.\d{2}\.\d{2}`+fraction),
		form("2006-01-02 15:04", `\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}`),
		form("2006-01-02", `\d{4}-\d{2}-\d{2}`),
	},
}

// ParseDatetime parses s as a value of the datetime family f. It fails with
// SQLSTATE 22007 when s has none of the accepted forms, and 22008 when it
// has one but a field is out of range, as in 2024-02-30.
func ParseDatetime(f types.Family, s string) (time.Time, error) {
	forms, ok := datetimeForms[f]
	if !ok {
		return time.Time{}, errors.AssertionFailedf("%s is not a datetime family", redact.Safe(f))
	}
	trimmed := strings.TrimSpace(s)
	for _, fm := range forms {
		if !fm.shape.MatchString(trimmed) {
			continue
		}
		t, err := time.Parse(fm.layout, trimmed)
		if err == nil {
			return t, nil
		}
		var pe *time.ParseError
		if errors.As(err, &pe) && strings.Contains(pe.Message, "out of range") {
			return time.Time{}, pgerror.Newf(pgcode.DatetimeFieldOverflow,
				"%q is not a valid %s: a field is out of range", s, redact.Safe(f))
		}
	}
	return time.Time{}, pgerror.Newf(pgcode.InvalidDatetimeFormat,
		"the syntax of the string representation of a %s value is incorrect: %q", redact.Safe(f), s)
}

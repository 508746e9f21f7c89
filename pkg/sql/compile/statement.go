// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package compile

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
)

// Operand is an operand of an expression site.
type Operand struct {
	// Type is nil for an untyped ? parameter.
	Type *types.T
	// Null is set for a NULL constant of Type.
	Null bool
	// Literal, if set, is the text of a string constant of Type.
	Literal *string
}

// String renders the operand in the syntax ParseSite accepts.
func (o Operand) String() string {
	switch {
	case o.Type == nil:
		return "?"
	case o.Null:
		return "NULL::" + o.Type.String()
	case o.Literal != nil:
		return "'" + strings.ReplaceAll(*o.Literal, "'", "''") + "'::" + o.Type.String()
	default:
		return o.Type.String()
	}
}

// SiteKind distinguishes the expression sites of a statement.
type SiteKind int8

const (
	// Call is a routine invocation.
	Call SiteKind = iota
	// Coalesce is a COALESCE expression.
	Coalesce
	// Value is a VALUE expression, a synonym of COALESCE.
	Value
)

var siteKeywords = [...]string{Call: "call", Coalesce: "coalesce", Value: "value"}

// Site is an expression of a statement whose type is decided at compile
// time: a routine call or a COALESCE/VALUE merge.
type Site struct {
	Kind     SiteKind
	Name     string
	Operands []Operand
	// Host, if set, is an explicit host signature for a call.
	Host hostrep.Signature
	// Context is what the enclosing expression requires of a call.
	Context overload.ReturnContext
}

// OperandTypes returns the operand types, with nil for untyped operands.
func (s *Site) OperandTypes() []*types.T {
	res := make([]*types.T, len(s.Operands))
	for i, o := range s.Operands {
		res[i] = o.Type
	}
	return res
}

// String renders the site in the syntax ParseSite accepts. Identical
// sites render identically.
func (s *Site) String() string {
	var b strings.Builder
	b.WriteString(siteKeywords[s.Kind])
	if s.Kind == Call {
		b.WriteByte(' ')
		b.WriteString(s.Name)
	}
	b.WriteByte('(')
	for i, o := range s.Operands {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	b.WriteByte(')')
	if s.Kind != Call {
		return b.String()
	}
	if s.Context.WantsValue {
		b.WriteString(" expr")
	}
	if s.Context.Desired.Valid() {
		b.WriteString(" returns ")
		b.WriteString(s.Context.Desired.Name())
	}
	if s.Context.NonNull {
		b.WriteString(" nonnull")
	}
	if s.Host != nil {
		b.WriteString(" signature ")
		b.WriteString(s.Host.String())
	}
	return b.String()
}

// Statement is a named list of expression sites.
type Statement struct {
	Name  string
	Sites []Site
}

// ParseStatement parses one site per line. Blank lines and lines starting
// with -- are skipped.
func ParseStatement(name, text string) (*Statement, error) {
	stmt := &Statement{Name: name}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		site, err := ParseSite(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: line %d", redact.Safe(name), redact.Safe(i+1))
		}
		stmt.Sites = append(stmt.Sites, site)
	}
	return stmt, nil
}

// ParseSite parses a single expression site:
//
//	coalesce(INTEGER, DECIMAL(5,2), ?)
//	value('2024-01-31'::VARCHAR(10), DATE)
//	call abs(SMALLINT) expr returns BIGINT nonnull
//	call log_event(NULL::VARCHAR(20), TIMESTAMP) signature (*string, time.Time)
func ParseSite(line string) (Site, error) {
	var site Site
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return site, siteSyntaxError(line, "expected (")
	}
	head := strings.Fields(line[:open])
	switch {
	case len(head) == 2 && strings.EqualFold(head[0], "call"):
		site.Kind, site.Name = Call, head[1]
	case len(head) == 1 && strings.EqualFold(head[0], "coalesce"):
		site.Kind, site.Name = Coalesce, "COALESCE"
	case len(head) == 1 && strings.EqualFold(head[0], "value"):
		site.Kind, site.Name = Value, "VALUE"
	default:
		return site, siteSyntaxError(line, "expected call NAME, coalesce or value")
	}

	args, rest, err := splitArgs(line, open)
	if err != nil {
		return site, err
	}
	for i, a := range args {
		o, err := parseOperand(a)
		if err != nil {
			return site, pgerror.WithArgPosition(errors.Wrapf(err, "operand %d", redact.Safe(i+1)), i)
		}
		site.Operands = append(site.Operands, o)
	}
	if site.Kind != Call {
		if strings.TrimSpace(rest) != "" {
			return site, siteSyntaxError(line, "unexpected trailing text")
		}
		return site, nil
	}
	return site, parseCallOptions(&site, rest)
}

func parseCallOptions(site *Site, rest string) error {
	if idx := strings.Index(strings.ToLower(rest), "signature"); idx >= 0 {
		sig, err := hostrep.ParseSignature(strings.TrimSpace(rest[idx+len("signature"):]))
		if err != nil {
			return err
		}
		site.Host, rest = sig, rest[:idx]
	}
	fields := strings.Fields(rest)
	for i := 0; i < len(fields); i++ {
		switch strings.ToLower(fields[i]) {
		case "expr":
			site.Context.WantsValue = true
		case "nonnull":
			site.Context.NonNull = true
		case "returns":
			if i+1 == len(fields) {
				return siteSyntaxError(rest, "expected a type family after returns")
			}
			i++
			f, ok := types.FamilyFromName(fields[i])
			if !ok {
				return pgerror.Newf(pgcode.UndefinedType, "type %q does not exist", fields[i])
			}
			site.Context.Desired = f
			site.Context.WantsValue = true
		default:
			return siteSyntaxError(rest, "unexpected "+fields[i])
		}
	}
	return nil
}

// splitArgs splits the parenthesized operand list starting at open on the
// commas that are outside nested parentheses and quotes.
func splitArgs(line string, open int) (args []string, rest string, _ error) {
	depth, start, quoted := 0, open+1, false
	for i := open; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted:
			if c == '\'' {
				quoted = false
			}
		case c == '\'':
			quoted = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				if last := strings.TrimSpace(line[start:i]); last != "" || len(args) > 0 {
					args = append(args, last)
				}
				return args, line[i+1:], nil
			}
		case c == ',' && depth == 1:
			args = append(args, strings.TrimSpace(line[start:i]))
			start = i + 1
		}
	}
	return nil, "", siteSyntaxError(line, "unbalanced parentheses or quotes")
}

func parseOperand(s string) (Operand, error) {
	switch {
	case s == "":
		return Operand{}, pgerror.New(pgcode.Syntax, "syntax error: empty operand")
	case s == "?":
		return Operand{}, nil
	case strings.HasPrefix(strings.ToUpper(s), "NULL::"):
		typ, err := types.Parse(s[len("NULL::"):])
		if err != nil {
			return Operand{}, err
		}
		return Operand{Type: typ, Null: true}, nil
	case s[0] == '\'':
		var lit strings.Builder
		i := 1
		for ; i < len(s); i++ {
			if s[i] != '\'' {
				lit.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				lit.WriteByte('\'')
				i++
				continue
			}
			break
		}
		if i >= len(s) || !strings.HasPrefix(s[i+1:], "::") {
			return Operand{}, pgerror.Newf(pgcode.Syntax,
				"syntax error: string constant %s must be cast to a type with ::", s)
		}
		typ, err := types.Parse(s[i+3:])
		if err != nil {
			return Operand{}, err
		}
		v := lit.String()
		return Operand{Type: typ, Literal: &v}, nil
	default:
		typ, err := types.Parse(s)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Type: typ}, nil
	}
}

func siteSyntaxError(line, msg string) error {
	return pgerror.Newf(pgcode.Syntax, "syntax error in %q: %s", line, redact.Safe(msg))
}

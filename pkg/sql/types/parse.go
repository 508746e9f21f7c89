// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
)

// maxFloatPrecision is the largest binary precision accepted by FLOAT(p).
// Precisions up to realFloatPrecision map to REAL.
const (
	maxFloatPrecision  = 52
	realFloatPrecision = 23
)

// Parse parses a SQL type name, for example "DECIMAL(10, 2)",
// "VARCHAR(20) FOR BIT DATA" or "CLOB(2M) NOT NULL". Omitted attributes take
// their defaults: CHAR(1), DECIMAL(5,0) and CLOB or BLOB of the maximum
// LOB length.
func Parse(s string) (*T, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := typeParser{src: s, toks: toks}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.accept("NOT") {
		if err := p.expect("NULL"); err != nil {
			return nil, err
		}
		t = t.WithNullable(false)
	}
	if !p.eof() {
		return nil, p.syntaxError()
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// static tables.
func MustParse(s string) *T {
	t, err := Parse(s)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "parsing %q", s))
	}
	return t
}

func lex(s string) ([]string, error) {
	var toks []string
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(' || c == ')' || c == ',':
			toks = append(toks, string(c))
			i++
		case c == '_' || c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)):
			j := i
			for j < len(s) && (s[j] == '_' || s[j] < unicode.MaxASCII &&
				(unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])))) {
				j++
			}
			toks = append(toks, strings.ToUpper(s[i:j]))
			i = j
		default:
			return nil, pgerror.Newf(pgcode.Syntax,
				"syntax error at or near %q in type name %q", s[i:i+1], s)
		}
	}
	return toks, nil
}

type typeParser struct {
	src  string
	toks []string
	pos  int
}

func (p *typeParser) eof() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peek() string {
	if p.eof() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *typeParser) accept(tok string) bool {
	if p.peek() == tok {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(tok string) error {
	if !p.accept(tok) {
		return p.syntaxError()
	}
	return nil
}

func (p *typeParser) syntaxError() error {
	if p.eof() {
		return pgerror.Newf(pgcode.Syntax, "syntax error: unexpected end of type name %q", p.src)
	}
	return pgerror.Newf(pgcode.Syntax,
		"syntax error at or near %q in type name %q", p.peek(), p.src)
}

func (p *typeParser) parseType() (*T, error) {
	if p.eof() {
		return nil, pgerror.New(pgcode.Syntax, "syntax error: empty type name")
	}
	name := p.toks[p.pos]
	p.pos++
	switch name {
	case "BOOLEAN":
		return Boolean, nil
	case "SMALLINT":
		return SmallInt, nil
	case "INT", "INTEGER":
		return Integer, nil
	case "BIGINT":
		return BigInt, nil
	case "DECIMAL", "DEC", "NUMERIC":
		return p.parseDecimal()
	case "REAL":
		return Real, nil
	case "DOUBLE":
		p.accept("PRECISION")
		return Double, nil
	case "FLOAT":
		return p.parseFloat()
	case "CHAR", "CHARACTER":
		switch {
		case p.accept("VARYING"):
			return p.parseVarchar()
		case p.accept("LARGE"):
			if err := p.expect("OBJECT"); err != nil {
				return nil, err
			}
			return p.parseLOB(ClobFamily)
		}
		n := int32(DefaultCharLength)
		if p.peek() == "(" {
			var err error
			if n, err = p.parseParenLength(false); err != nil {
				return nil, err
			}
		}
		f, err := p.parseForBitData(CharFamily, CharForBitFamily)
		if err != nil {
			return nil, err
		}
		return MakeScalar(f, 0, 0, n)
	case "VARCHAR":
		return p.parseVarchar()
	case "LONG":
		if err := p.expect("VARCHAR"); err != nil {
			return nil, err
		}
		f, err := p.parseForBitData(LongVarcharFamily, LongVarcharForBitFamily)
		if err != nil {
			return nil, err
		}
		if f == LongVarcharForBitFamily {
			return LongVarcharForBit, nil
		}
		return LongVarchar, nil
	case "CLOB":
		return p.parseLOB(ClobFamily)
	case "BINARY":
		if err := p.expect("LARGE"); err != nil {
			return nil, err
		}
		if err := p.expect("OBJECT"); err != nil {
			return nil, err
		}
		return p.parseLOB(BlobFamily)
	case "BLOB":
		return p.parseLOB(BlobFamily)
	case "DATE":
		return Date, nil
	case "TIME":
		return Time, nil
	case "TIMESTAMP":
		return Timestamp, nil
	}
	return nil, pgerror.Newf(pgcode.UndefinedType, "type %q does not exist", name)
}

func (p *typeParser) parseDecimal() (*T, error) {
	precision, scale := int64(DefaultDecimalPrecision), int64(DefaultDecimalScale)
	if p.accept("(") {
		var err error
		if precision, err = p.parseInt(); err != nil {
			return nil, err
		}
		if p.accept(",") {
			if scale, err = p.parseInt(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if precision > MaxDecimalPrecision || scale > precision {
		return nil, pgerror.Newf(pgcode.InvalidPrecision,
			"invalid DECIMAL precision or scale (%d,%d); precision must be in [1, %d] and scale in [0, precision]",
			redact.Safe(precision), redact.Safe(scale), redact.Safe(MaxDecimalPrecision))
	}
	return MakeScalar(DecimalFamily, int32(precision), int32(scale), 0)
}

func (p *typeParser) parseFloat() (*T, error) {
	if !p.accept("(") {
		return Double, nil
	}
	precision, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if precision < 1 || precision > maxFloatPrecision {
		return nil, pgerror.Newf(pgcode.InvalidPrecision,
			"FLOAT precision %d is out of range [1, %d]", redact.Safe(precision), redact.Safe(maxFloatPrecision))
	}
	if precision <= realFloatPrecision {
		return Real, nil
	}
	return Double, nil
}

func (p *typeParser) parseVarchar() (*T, error) {
	n, err := p.parseParenLength(false)
	if err != nil {
		return nil, err
	}
	f, err := p.parseForBitData(VarcharFamily, VarcharForBitFamily)
	if err != nil {
		return nil, err
	}
	return MakeScalar(f, 0, 0, n)
}

func (p *typeParser) parseLOB(f Family) (*T, error) {
	n := int32(MaxLOBLength)
	if p.peek() == "(" {
		var err error
		if n, err = p.parseParenLength(true); err != nil {
			return nil, err
		}
	}
	return MakeScalar(f, 0, 0, n)
}

func (p *typeParser) parseForBitData(plain, bit Family) (Family, error) {
	if !p.accept("FOR") {
		return plain, nil
	}
	if err := p.expect("BIT"); err != nil {
		return 0, err
	}
	if err := p.expect("DATA"); err != nil {
		return 0, err
	}
	return bit, nil
}

// parseParenLength parses "(n)". When multipliers are allowed n may carry a
// K, M or G suffix.
func (p *typeParser) parseParenLength(multipliers bool) (int32, error) {
	if err := p.expect("("); err != nil {
		return 0, err
	}
	tok := p.peek()
	mult := int64(1)
	if multipliers && len(tok) > 1 {
		switch tok[len(tok)-1] {
		case 'K':
			mult, tok = 1<<10, tok[:len(tok)-1]
		case 'M':
			mult, tok = 1<<20, tok[:len(tok)-1]
		case 'G':
			mult, tok = 1<<30, tok[:len(tok)-1]
		}
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, pgerror.Newf(pgcode.InvalidLength, "the length %s is out of range", p.peek())
		}
		return 0, p.syntaxError()
	}
	p.pos++
	if err := p.expect(")"); err != nil {
		return 0, err
	}
	n *= mult
	if n == 2<<30 {
		// 2G denotes the maximum LOB length.
		n = math.MaxInt32
	}
	if n < 1 || n > math.MaxInt32 {
		return 0, pgerror.Newf(pgcode.InvalidLength,
			"the length %d is out of range [1, %d]", redact.Safe(n), redact.Safe(math.MaxInt32))
	}
	return int32(n), nil
}

func (p *typeParser) parseInt() (int64, error) {
	n, err := strconv.ParseInt(p.peek(), 10, 32)
	if err != nil || n < 0 {
		if errors.Is(err, strconv.ErrRange) {
			return 0, pgerror.Newf(pgcode.InvalidPrecision, "the value %s is out of range", p.peek())
		}
		return 0, p.syntaxError()
	}
	p.pos++
	return n, nil
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strings"

	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
)

// Family specifies a group of types that are compatible with one another.
// The eighteen families form a closed set; every ordered pair of them has a
// defined unification outcome in the conversion rank table (see package
// cast). The zero value is not a valid family.
type Family int32

// The valid families, in declaration order. The order is significant only
// for iteration; unification precedence is given by Group and Rank.
const (
	// BooleanFamily is the family of the BOOLEAN type.
	BooleanFamily Family = iota + 1
	// SmallIntFamily is the 2-byte exact integer family.
	SmallIntFamily
	// IntegerFamily is the 4-byte exact integer family.
	IntegerFamily
	// BigIntFamily is the 8-byte exact integer family.
	BigIntFamily
	// DecimalFamily is the exact numeric family with declared precision and
	// scale.
	DecimalFamily
	// RealFamily is the single-precision approximate numeric family.
	RealFamily
	// DoubleFamily is the double-precision approximate numeric family.
	DoubleFamily
	// CharFamily is the fixed-length character family.
	CharFamily
	// VarcharFamily is the variable-length character family.
	VarcharFamily
	// LongVarcharFamily is the long variable-length character family.
	LongVarcharFamily
	// ClobFamily is the character large object family.
	ClobFamily
	// CharForBitFamily is the fixed-length binary family.
	CharForBitFamily
	// VarcharForBitFamily is the variable-length binary family.
	VarcharForBitFamily
	// LongVarcharForBitFamily is the long variable-length binary family.
	LongVarcharForBitFamily
	// BlobFamily is the binary large object family.
	BlobFamily
	// DateFamily is the calendar date family.
	DateFamily
	// TimeFamily is the time of day family.
	TimeFamily
	// TimestampFamily is the date and time family.
	TimestampFamily
)

// NumFamilies is the number of valid families.
const NumFamilies = int(TimestampFamily)

// Families lists every valid family in declaration order.
var Families = func() []Family {
	fs := make([]Family, 0, NumFamilies)
	for f := BooleanFamily; f <= TimestampFamily; f++ {
		fs = append(fs, f)
	}
	return fs
}()

// Group classifies families into the chains within which implicit
// conversion is possible.
type Group int8

const (
	// InvalidGroup is returned for invalid families.
	InvalidGroup Group = iota
	// BooleanGroup contains only BOOLEAN.
	BooleanGroup
	// ExactNumericGroup is SMALLINT < INTEGER < BIGINT < DECIMAL.
	ExactNumericGroup
	// ApproxNumericGroup is REAL < DOUBLE.
	ApproxNumericGroup
	// CharacterGroup is CHAR < VARCHAR < LONG VARCHAR < CLOB.
	CharacterGroup
	// BinaryGroup is CHAR FOR BIT DATA < VARCHAR FOR BIT DATA <
	// LONG VARCHAR FOR BIT DATA, plus the isolated BLOB.
	BinaryGroup
	// DatetimeGroup contains DATE, TIME and TIMESTAMP, which do not convert
	// into one another.
	DatetimeGroup
)

var groupNames = [...]string{
	InvalidGroup:       "invalid",
	BooleanGroup:       "boolean",
	ExactNumericGroup:  "exact numeric",
	ApproxNumericGroup: "approximate numeric",
	CharacterGroup:     "character",
	BinaryGroup:        "binary",
	DatetimeGroup:      "datetime",
}

// String implements fmt.Stringer.
func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return groupNames[InvalidGroup]
	}
	return groupNames[g]
}

// familyInfo is the static metadata of a family.
type familyInfo struct {
	// name is the identifier used in catalogs and on the command line.
	name string
	// sqlName is the name rendered in SQL text and messages.
	sqlName string
	group   Group
	// rank orders the family within its group.
	rank int8
	// precision and scale are the nominal values carried by every instance
	// of families without declared precision.
	precision int32
	scale     int32
	// maxLength is the length ceiling of the family; zero for families
	// without a length attribute.
	maxLength int32
	oid       oid.Oid
}

// Length ceilings, following the DB2 limits.
const (
	MaxCharLength        = 254
	MaxVarcharLength     = 32672
	MaxLongVarcharLength = 32700
	MaxLOBLength         = 2147483647
)

// MaxDecimalPrecision is the largest precision of a DECIMAL.
const MaxDecimalPrecision = 31

var families = [NumFamilies + 1]familyInfo{
	BooleanFamily: {name: "BOOLEAN", sqlName: "BOOLEAN", group: BooleanGroup,
		precision: 1, oid: oid.T_bool},
	SmallIntFamily: {name: "SMALLINT", sqlName: "SMALLINT", group: ExactNumericGroup, rank: 0,
		precision: 5, oid: oid.T_int2},
	IntegerFamily: {name: "INTEGER", sqlName: "INTEGER", group: ExactNumericGroup, rank: 1,
		precision: 10, oid: oid.T_int4},
	BigIntFamily: {name: "BIGINT", sqlName: "BIGINT", group: ExactNumericGroup, rank: 2,
		precision: 19, oid: oid.T_int8},
	DecimalFamily: {name: "DECIMAL", sqlName: "DECIMAL", group: ExactNumericGroup, rank: 3,
		oid: oid.T_numeric},
	RealFamily: {name: "REAL", sqlName: "REAL", group: ApproxNumericGroup, rank: 0,
		precision: 7, oid: oid.T_float4},
	DoubleFamily: {name: "DOUBLE", sqlName: "DOUBLE", group: ApproxNumericGroup, rank: 1,
		precision: 15, oid: oid.T_float8},
	CharFamily: {name: "CHAR", sqlName: "CHAR", group: CharacterGroup, rank: 0,
		maxLength: MaxCharLength, oid: oid.T_bpchar},
	VarcharFamily: {name: "VARCHAR", sqlName: "VARCHAR", group: CharacterGroup, rank: 1,
		maxLength: MaxVarcharLength, oid: oid.T_varchar},
	LongVarcharFamily: {name: "LONG_VARCHAR", sqlName: "LONG VARCHAR", group: CharacterGroup, rank: 2,
		maxLength: MaxLongVarcharLength, oid: oid.T_text},
	ClobFamily: {name: "CLOB", sqlName: "CLOB", group: CharacterGroup, rank: 3,
		maxLength: MaxLOBLength, oid: oid.T_text},
	CharForBitFamily: {name: "CHAR_FOR_BIT", sqlName: "CHAR FOR BIT DATA", group: BinaryGroup, rank: 0,
		maxLength: MaxCharLength, oid: oid.T_bytea},
	VarcharForBitFamily: {name: "VARCHAR_FOR_BIT", sqlName: "VARCHAR FOR BIT DATA", group: BinaryGroup, rank: 1,
		maxLength: MaxVarcharLength, oid: oid.T_bytea},
	LongVarcharForBitFamily: {name: "LONG_VARCHAR_FOR_BIT", sqlName: "LONG VARCHAR FOR BIT DATA",
		group: BinaryGroup, rank: 2, maxLength: MaxLongVarcharLength, oid: oid.T_bytea},
	BlobFamily: {name: "BLOB", sqlName: "BLOB", group: BinaryGroup, rank: 3,
		maxLength: MaxLOBLength, oid: oid.T_bytea},
	DateFamily: {name: "DATE", sqlName: "DATE", group: DatetimeGroup,
		precision: 10, oid: oid.T_date},
	TimeFamily: {name: "TIME", sqlName: "TIME", group: DatetimeGroup,
		precision: 8, oid: oid.T_time},
	TimestampFamily: {name: "TIMESTAMP", sqlName: "TIMESTAMP", group: DatetimeGroup,
		precision: 29, scale: 9, oid: oid.T_timestamp},
}

// Valid returns whether f is one of the eighteen families.
func (f Family) Valid() bool {
	return f >= BooleanFamily && f <= TimestampFamily
}

func (f Family) info() *familyInfo {
	if !f.Valid() {
		return &familyInfo{name: "UNKNOWN", sqlName: "UNKNOWN"}
	}
	return &families[f]
}

// Name returns the identifier of the family as used in catalog files and
// on the command line, e.g. LONG_VARCHAR_FOR_BIT.
func (f Family) Name() string { return f.info().name }

// String returns the SQL spelling of the family, e.g. LONG VARCHAR FOR BIT
// DATA.
func (f Family) String() string { return f.info().sqlName }

// SafeValue implements the redact.SafeValue interface.
func (f Family) SafeValue() {}

var _ redact.SafeValue = Family(0)

// Group returns the conversion group of the family.
func (f Family) Group() Group { return f.info().group }

// Rank returns the position of the family within its group. Within a group
// a higher rank absorbs a lower one.
func (f Family) Rank() int { return int(f.info().rank) }

// Oid returns the pgwire type OID the calling layer reports for values of
// the family.
func (f Family) Oid() oid.Oid { return f.info().oid }

// MaxLength returns the length ceiling of the family, or zero.
func (f Family) MaxLength() int32 { return f.info().maxLength }

// NominalPrecision returns the precision every instance of the family
// carries. It is zero for DECIMAL and the length-bearing families.
func (f Family) NominalPrecision() int32 { return f.info().precision }

// NominalScale returns the scale every instance of the family carries.
func (f Family) NominalScale() int32 { return f.info().scale }

// IsNumeric returns whether f is an exact or approximate numeric family.
func (f Family) IsNumeric() bool {
	g := f.Group()
	return g == ExactNumericGroup || g == ApproxNumericGroup
}

// IsCharacter returns whether f belongs to the character group.
func (f Family) IsCharacter() bool { return f.Group() == CharacterGroup }

// IsBinary returns whether f belongs to the binary group, BLOB included.
func (f Family) IsBinary() bool { return f.Group() == BinaryGroup }

// IsDatetime returns whether f is DATE, TIME or TIMESTAMP.
func (f Family) IsDatetime() bool { return f.Group() == DatetimeGroup }

// IsLOB returns whether f is CLOB or BLOB.
func (f Family) IsLOB() bool { return f == ClobFamily || f == BlobFamily }

// HasLength returns whether instances of f carry a maximum length.
func (f Family) HasLength() bool { return f.MaxLength() > 0 }

// HasPrecision returns whether instances of f declare their own precision
// and scale.
func (f Family) HasPrecision() bool { return f == DecimalFamily }

// Next returns the family one rank above f in its group, used when a
// length exceeds the ceiling of f. ok is false when f is the top of its
// chain or its group is not ordered by length.
func (f Family) Next() (next Family, ok bool) {
	switch f {
	case CharFamily:
		return VarcharFamily, true
	case VarcharFamily:
		return LongVarcharFamily, true
	case LongVarcharFamily:
		return ClobFamily, true
	case CharForBitFamily:
		return VarcharForBitFamily, true
	case VarcharForBitFamily:
		return LongVarcharForBitFamily, true
	}
	return 0, false
}

// FamilyFromName looks up a family by its Name or its SQL spelling,
// ignoring case and collapsing spaces and underscores.
func FamilyFromName(name string) (Family, bool) {
	norm := normalizeFamilyName(name)
	for _, f := range Families {
		if normalizeFamilyName(f.Name()) == norm || normalizeFamilyName(f.String()) == norm {
			return f, true
		}
	}
	return 0, false
}

func normalizeFamilyName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, " DATA")
}

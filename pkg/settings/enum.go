// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

// EnumSetting is a StringSetting that restricts the values to be one of the `enumValues`
type EnumSetting struct {
	common
	defaultValue int64
	enumValues   map[int64]string
}

var _ internalSetting = &EnumSetting{}

// Get retrieves the int value in the setting.
func (e *EnumSetting) Get(sv *Values) int64 {
	return sv.getInt64(e.slot)
}

// String returns the enum's string value.
func (e *EnumSetting) String(sv *Values) string {
	enumID := e.Get(sv)
	if str, ok := e.enumValues[enumID]; ok {
		return str
	}
	return "unknown(" + strconv.FormatInt(enumID, 10) + ")"
}

// DefaultString returns the default value as a string.
func (e *EnumSetting) DefaultString() string {
	return e.enumValues[e.defaultValue]
}

// Typ returns the short (1 char) string denoting the type of setting.
func (*EnumSetting) Typ() string {
	return "e"
}

// ParseEnum returns the enum value, and a boolean that indicates if it was parseable.
func (e *EnumSetting) ParseEnum(raw string) (int64, bool) {
	rawLower := strings.ToLower(raw)
	for k, v := range e.enumValues {
		if v == rawLower {
			return k, true
		}
	}
	// Attempt to parse the string as an integer since it isn't a valid enum string.
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	_, ok := e.enumValues[v]
	return v, ok
}

// GetAvailableValuesAsHint returns the possible enum settings as a string that
// can be provided as an error hint to a user.
func (e *EnumSetting) GetAvailableValuesAsHint() string {
	keys := maps.Keys(e.enumValues)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = strconv.FormatInt(k, 10) + ": " + e.enumValues[k]
	}
	return "Available values: " + strings.Join(vals, ", ")
}

// Override sets the setting to the given value.
func (e *EnumSetting) Override(sv *Values, v int64) error {
	if _, ok := e.enumValues[v]; !ok {
		return errors.WithHint(
			errors.Errorf("invalid enum value %d", v), e.GetAvailableValuesAsHint())
	}
	sv.setInt64(e.slot, v)
	return nil
}

func (e *EnumSetting) decodeAndSet(sv *Values, raw string) error {
	v, ok := e.ParseEnum(raw)
	if !ok {
		return errors.WithHint(
			errors.Errorf("invalid string value %q", raw), e.GetAvailableValuesAsHint())
	}
	return e.Override(sv, v)
}

func (e *EnumSetting) setToDefault(sv *Values) {
	if err := e.Override(sv, e.defaultValue); err != nil {
		panic(err)
	}
}

// RegisterEnumSetting defines a new setting with type int.
func RegisterEnumSetting(
	key, desc string, defaultValue string, enumValues map[int64]string,
) *EnumSetting {
	enumValuesLower := make(map[int64]string, len(enumValues))
	var i int64
	var found bool
	for k, v := range enumValues {
		enumValuesLower[k] = strings.ToLower(v)
		if v == defaultValue {
			i = k
			found = true
		}
	}
	if !found {
		panic(errors.AssertionFailedf("enum registered with default value %s not in map %v",
			defaultValue, enumValues))
	}
	setting := &EnumSetting{
		defaultValue: i,
		enumValues:   enumValuesLower,
	}
	register(key, desc, setting)
	return setting
}

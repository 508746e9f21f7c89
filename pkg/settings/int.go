// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// IntSetting is the interface of a setting variable that holds an int64.
type IntSetting struct {
	common
	defaultValue int64
	validateFn   func(int64) error
}

var _ internalSetting = &IntSetting{}

// Get retrieves the int value in the setting.
func (i *IntSetting) Get(sv *Values) int64 {
	return sv.getInt64(i.slot)
}

func (i *IntSetting) String(sv *Values) string {
	return EncodeInt(i.Get(sv))
}

// DefaultString returns the default value as a string.
func (i *IntSetting) DefaultString() string {
	return EncodeInt(i.defaultValue)
}

// Typ returns the short (1 char) string denoting the type of setting.
func (*IntSetting) Typ() string {
	return "i"
}

// Validate that a value conforms with the validation function.
func (i *IntSetting) Validate(v int64) error {
	if i.validateFn != nil {
		if err := i.validateFn(v); err != nil {
			return err
		}
	}
	return nil
}

// Override sets the setting to the given value, assuming it passes
// validation.
func (i *IntSetting) Override(sv *Values, v int64) error {
	if err := i.Validate(v); err != nil {
		return err
	}
	sv.setInt64(i.slot, v)
	return nil
}

func (i *IntSetting) decodeAndSet(sv *Values, raw string) error {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid integer %q", raw)
	}
	return i.Override(sv, v)
}

func (i *IntSetting) setToDefault(sv *Values) {
	if err := i.Override(sv, i.defaultValue); err != nil {
		panic(err)
	}
}

// RegisterIntSetting defines a new setting with type int with an optional
// validation function.
func RegisterIntSetting(
	key, desc string, defaultValue int64, validateFn func(int64) error,
) *IntSetting {
	if validateFn != nil {
		if err := validateFn(defaultValue); err != nil {
			panic(errors.Wrap(err, "invalid default"))
		}
	}
	setting := &IntSetting{
		defaultValue: defaultValue,
		validateFn:   validateFn,
	}
	register(key, desc, setting)
	return setting
}

// PositiveInt can be passed to RegisterIntSetting.
func PositiveInt(v int64) error {
	if v < 1 {
		return errors.Errorf("cannot set to a non-positive value: %d", v)
	}
	return nil
}

// IntInRange returns a validation function that checks that the value is
// within [minVal, maxVal].
func IntInRange(minVal, maxVal int64) func(int64) error {
	return func(v int64) error {
		if v < minVal || v > maxVal {
			return errors.Errorf("expected value in range [%d, %d], got: %d", minVal, maxVal, v)
		}
		return nil
	}
}

// EncodeInt encodes an int value as a string suitable for Values.Set.
func EncodeInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

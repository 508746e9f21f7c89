// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Values is a container that stores values for all registered settings.
// Each setting is assigned a unique slot (up to MaxSettings) at
// registration.
//
// A Values is safe for concurrent use: readers never block and an update
// of one setting is atomic.
type Values struct {
	container [MaxSettings]atomic.Int64
}

// MakeValues returns a Values container with every registered setting at
// its default.
func MakeValues() *Values {
	sv := &Values{}
	for _, s := range registry {
		s.setToDefault(sv)
	}
	return sv
}

func (sv *Values) getInt64(slot slotIdx) int64 {
	return sv.container[slot].Load()
}

func (sv *Values) setInt64(slot slotIdx, v int64) {
	sv.container[slot].Store(v)
}

// Set parses raw and stores it as the value of the setting named key.
func (sv *Values) Set(key, raw string) error {
	s, ok := registry[key]
	if !ok {
		return errors.Errorf("unknown setting %q", key)
	}
	if err := s.decodeAndSet(sv, raw); err != nil {
		return errors.Wrapf(err, "setting %q", key)
	}
	return nil
}

// Reset restores the setting named key to its default.
func (sv *Values) Reset(key string) error {
	s, ok := registry[key]
	if !ok {
		return errors.Errorf("unknown setting %q", key)
	}
	s.setToDefault(sv)
	return nil
}

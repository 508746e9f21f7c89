// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"fmt"
	"sort"
	"sync/atomic"

	"golang.org/x/exp/maps"
)

// registry contains all defined settings, their types and default values.
//
// Entries in registry should be accompanied by an exported, typesafe getter
// that then wraps one of the private `getInt` etc helpers.
//
// Registry should never be mutated after init (except in tests), as it is read
// concurrently by different callers.
var registry = map[string]internalSetting{}

// slotTable stores the same settings as the registry, but accessible by the
// slot index.
var slotTable [MaxSettings]internalSetting

// frozen becomes non-zero once the registry is "live".
var frozen int32

// Freeze ensures that no new settings can be defined after the engine has
// started resolving statements.
func Freeze() { atomic.StoreInt32(&frozen, 1) }

func assertNotFrozen(key string) {
	if atomic.LoadInt32(&frozen) > 0 {
		panic(fmt.Sprintf("registration must occur before the engine starts: %s", key))
	}
}

// register adds a setting to the registry.
func register(key, desc string, s internalSetting) {
	assertNotFrozen(key)
	if _, ok := registry[key]; ok {
		panic(fmt.Sprintf("setting already defined: %s", key))
	}
	if len(registry) >= MaxSettings {
		panic(fmt.Sprintf("too many settings; increase MaxSettings (%s)", key))
	}
	s.init(key, desc, slotIdx(len(registry)))
	registry[key] = s
	slotTable[s.getSlot()] = s
}

// Keys returns a sorted string array with all the known keys.
func Keys() []string {
	res := maps.Keys(registry)
	sort.Strings(res)
	return res
}

// Lookup returns a Setting by name.
func Lookup(name string) (Setting, bool) {
	s, ok := registry[name]
	if !ok {
		return nil, false
	}
	return s, true
}

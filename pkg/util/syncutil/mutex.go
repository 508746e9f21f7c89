// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package syncutil wraps the sync primitives used for guarding mutable
// state.
package syncutil

import (
	"sync"
	"sync/atomic"
)

// A Mutex is a mutual exclusion lock that can assert that it is held.
type Mutex struct {
	mu     sync.Mutex
	locked atomic.Bool
}

// Lock locks m.
func (m *Mutex) Lock() {
	m.mu.Lock()
	m.locked.Store(true)
}

// Unlock unlocks m.
func (m *Mutex) Unlock() {
	m.locked.Store(false)
	m.mu.Unlock()
}

// AssertHeld panics if the mutex is not locked. It does not check which
// goroutine holds the lock.
func (m *Mutex) AssertHeld() {
	if !m.locked.Load() {
		panic("mutex is not held")
	}
}

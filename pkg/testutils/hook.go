// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

// TestingHook sets *ptr to val and returns a closure restoring the original
// value. It is meant for package-level knobs overridden by a test:
//
//	defer testutils.TestingHook(&someKnob, true)()
func TestingHook[T any](ptr *T, val T) (restore func()) {
	orig := *ptr
	*ptr = val
	return func() { *ptr = orig }
}

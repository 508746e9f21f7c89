// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package echotest compares rendered output against a golden datadriven
// file.
package echotest

import (
	"testing"

	"github.com/cockroachdb/datadriven"
)

// Require checks that act matches the expectation recorded in the file at
// path, which holds a single directive:
//
//	echo
//	----
//	<act>
//
// Run the test with -rewrite to regenerate the file.
func Require(t *testing.T, act, path string) {
	t.Helper()
	ran := false
	datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "echo" {
			d.Fatalf(t, "unknown command %q; only echo is supported", d.Cmd)
		}
		ran = true
		return act
	})
	if !ran {
		// An empty file would otherwise pass without checking anything.
		t.Errorf("no echo directive in %s", path)
	}
}

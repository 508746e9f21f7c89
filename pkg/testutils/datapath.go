// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDataPath returns the path of a file or directory under the testdata
// directory of the package being tested. It fails the test if the path does
// not exist.
func TestDataPath(t testing.TB, relative ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{"testdata"}, relative...)...)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("test data %s: %v", path, err)
	}
	return path
}

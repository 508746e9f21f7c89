// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package echotest

import (
	"testing"

	"github.com/cockroachdb/sqlres/pkg/testutils"
)

func TestRequire(t *testing.T) {
	Require(t, "hello, echo", testutils.TestDataPath(t, "hello"))
}

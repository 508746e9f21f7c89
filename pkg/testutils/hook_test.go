// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var knob = 1

func TestTestingHook(t *testing.T) {
	restore := TestingHook(&knob, 2)
	require.Equal(t, 2, knob)
	restore()
	require.Equal(t, 1, knob)
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var i1A = RegisterIntSetting("i.1", "desc i.1", 0, nil)
var i2A = RegisterIntSetting("i.2", "", 5, IntInRange(1, 10))
var eA = RegisterEnumSetting("e", "", "foo", map[int64]string{1: "foo", 2: "bar", 3: "Baz"})

func TestCache(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sv := MakeValues()
		require.Equal(t, int64(0), i1A.Get(sv))
		require.Equal(t, int64(5), i2A.Get(sv))
		require.Equal(t, int64(1), eA.Get(sv))
		require.Equal(t, "foo", eA.String(sv))
		require.Equal(t, "5", i2A.DefaultString())
		require.Equal(t, "foo", eA.DefaultString())
	})

	t.Run("lookup", func(t *testing.T) {
		s, ok := Lookup("i.1")
		require.True(t, ok)
		require.Equal(t, i1A, s)
		require.Equal(t, "desc i.1", s.Description())
		require.Equal(t, "i", s.Typ())
		_, ok = Lookup("dne")
		require.False(t, ok)
		require.Subset(t, Keys(), []string{"e", "i.1", "i.2"})
	})

	t.Run("read and write each type", func(t *testing.T) {
		sv := MakeValues()
		require.NoError(t, sv.Set("i.2", "3"))
		require.NoError(t, sv.Set("e", "BAR"))
		require.Equal(t, int64(3), i2A.Get(sv))
		require.Equal(t, "bar", eA.String(sv))
		require.NoError(t, sv.Set("e", "3"))
		require.Equal(t, "baz", eA.String(sv))

		// Other containers are unaffected.
		require.Equal(t, int64(5), i2A.Get(MakeValues()))

		require.NoError(t, sv.Reset("i.2"))
		require.Equal(t, int64(5), i2A.Get(sv))
	})

	t.Run("an invalid update to a given setting preserves its previously set value", func(t *testing.T) {
		sv := MakeValues()
		require.NoError(t, sv.Set("i.2", "9"))
		require.EqualError(t, sv.Set("i.2", "11"),
			`setting "i.2": expected value in range [1, 10], got: 11`)
		require.Error(t, sv.Set("i.2", "false"))
		require.Equal(t, int64(9), i2A.Get(sv))

		require.Error(t, sv.Set("e", "qux"))
		require.Equal(t, "foo", eA.String(sv))
		require.Error(t, sv.Set("dne", "1"))
	})
}

func TestLoadYAML(t *testing.T) {
	sv := MakeValues()
	require.NoError(t, LoadYAML(sv, strings.NewReader("i.1: 42\ne: bar\n")))
	require.Equal(t, int64(42), i1A.Get(sv))
	require.Equal(t, "bar", eA.String(sv))

	require.NoError(t, LoadYAML(sv, strings.NewReader("")))
	require.Error(t, LoadYAML(sv, strings.NewReader("i.1: [1, 2]\n")))
	require.Error(t, LoadYAML(sv, strings.NewReader("i.2: 100\n")))
	require.Error(t, LoadYAML(sv, strings.NewReader("nope: 1\n")))
}

func TestEnumHint(t *testing.T) {
	require.Equal(t, "Available values: 1: foo, 2: bar, 3: baz", eA.GetAvailableValuesAsHint())
}

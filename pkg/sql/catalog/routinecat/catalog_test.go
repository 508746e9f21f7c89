// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package routinecat

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/cockroachdb/sqlres/pkg/testutils"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	f, err := os.Open(testutils.TestDataPath(t, "routines.yaml"))
	require.NoError(t, err)
	defer f.Close()
	c := New()
	require.NoError(t, c.Load(context.Background(), f))
	return c
}

func sigStrings(sigs []*overload.Signature) []string {
	res := make([]string, len(sigs))
	for i, s := range sigs {
		res[i] = s.String()
	}
	return res
}

func TestLoad(t *testing.T) {
	s := loadTestCatalog(t).Snapshot()
	require.Equal(t, 5, s.Len())
	require.Equal(t, int64(1), s.Version())
	require.Equal(t, []string{"ABS", "LOG_EVENT", "NOW"}, s.Names())

	require.Equal(t, []string{
		"abs(DOUBLE natural) RETURNS DOUBLE natural",
		"abs(INTEGER natural) RETURNS INTEGER natural",
		"ABS(DECIMAL(31,10) nullable) RETURNS DECIMAL(31,10) nullable",
	}, sigStrings(s.Lookup("Abs", 1)))
	require.Empty(t, s.Lookup("abs", 2))
	require.Empty(t, s.Lookup("ab", 1))

	logEvent := s.Lookup("log_event", 2)
	require.Len(t, logEvent, 1)
	require.True(t, logEvent[0].IsProcedure())
	require.Equal(t, "example.LogEvent", logEvent[0].ExternalName)
	require.Equal(t, "(string, any)", logEvent[0].HostSignature().String())

	now := s.Overloads("NOW")
	require.Len(t, now, 1)
	require.Zero(t, now[0].Arity())
	require.Equal(t, types.TimestampFamily, now[0].Return.Type.Family())
}

func TestForEach(t *testing.T) {
	s := loadTestCatalog(t).Snapshot()
	var names []string
	require.NoError(t, s.ForEach(func(sig *overload.Signature) error {
		names = append(names, sig.Name)
		return nil
	}))
	require.Equal(t, []string{"abs", "abs", "ABS", "log_event", "now"}, names)

	stop := fmt.Errorf("stop")
	n := 0
	require.Equal(t, stop, s.ForEach(func(*overload.Signature) error {
		n++
		return stop
	}))
	require.Equal(t, 1, n)
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	c := loadTestCatalog(t)
	before := c.Snapshot()

	extra := &overload.Signature{
		Name:   "abs",
		Params: []overload.Param{{Type: types.SmallInt, Kind: hostrep.Nullable}},
		Return: overload.Return{Type: types.SmallInt, Kind: hostrep.Nullable},
	}
	require.NoError(t, c.Add(ctx, extra))

	after := c.Snapshot()
	require.Len(t, before.Lookup("abs", 1), 3)
	require.Len(t, after.Lookup("abs", 1), 4)
	require.Equal(t, before.Version()+1, after.Version())
}

func TestDuplicate(t *testing.T) {
	ctx := context.Background()
	c := loadTestCatalog(t)
	before := c.Snapshot()

	fresh := &overload.Signature{
		Name:   "sign",
		Params: []overload.Param{{Type: types.Double}},
		Return: overload.Return{Type: types.Integer},
	}
	// Differs from abs(INTEGER natural) only in nullability, which is not
	// part of a parameter's identity.
	dup := &overload.Signature{
		Name:   "ABS",
		Params: []overload.Param{{Type: types.Integer.WithNullable(false)}},
		Return: overload.Return{Type: types.BigInt},
	}
	err := c.Add(ctx, fresh, dup)
	require.Error(t, err)
	require.Equal(t, pgcode.DuplicateObject, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "already exists")

	// The failed Add publishes nothing.
	require.Same(t, before, c.Snapshot())
	require.Empty(t, c.Snapshot().Lookup("sign", 1))

	// Another representation of the same type is a distinct overload.
	other := &overload.Signature{
		Name:   "abs",
		Params: []overload.Param{{Type: types.Integer, Kind: hostrep.Any}},
		Return: overload.Return{Type: types.Integer},
	}
	require.NoError(t, c.Add(ctx, other))
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	c := loadTestCatalog(t)
	v := c.Snapshot().Version()
	require.NoError(t, c.Replace(ctx, &overload.Signature{Name: "nop"}))
	s := c.Snapshot()
	require.Equal(t, 1, s.Len())
	require.Equal(t, v+1, s.Version())
	require.Len(t, s.Lookup("NOP", 0), 1)
}

func TestParseErrors(t *testing.T) {
	testData := []struct {
		name string
		in   string
		code pgcode.Code
		err  string
	}{
		{
			name: "unknown field",
			in:   "routines:\n- name: f\n  param: []\n",
			code: pgcode.Uncategorized,
			err:  "field param not found",
		},
		{
			name: "missing name",
			in:   "routines:\n- external: x\n",
			code: pgcode.Uncategorized,
			err:  "routine 1 has no name",
		},
		{
			name: "bad type",
			in:   "routines:\n- name: f\n  params:\n  - {type: WIDGET}\n",
			code: pgcode.UndefinedType,
			err:  "routine f parameter 1",
		},
		{
			name: "bad rep",
			in:   "routines:\n- name: f\n  params:\n  - {type: INTEGER, rep: boxed}\n",
			code: pgcode.Uncategorized,
			err:  `unknown representation kind "boxed"`,
		},
		{
			name: "bad return type",
			in:   "routines:\n- name: f\n  returns: {type: VARCHAR}\n",
			code: pgcode.Syntax,
			err:  "routine f return type",
		},
	}
	for _, d := range testData {
		t.Run(d.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(d.in))
			require.Error(t, err)
			require.Contains(t, err.Error(), d.err)
			require.Equal(t, d.code, pgerror.GetPGCode(err))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	sigs, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, sigs)
}

func TestConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	c := New()
	const writers = 4
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				require.NoError(t, c.Add(ctx, &overload.Signature{
					Name:   fmt.Sprintf("f%d_%d", w, i),
					Params: []overload.Param{{Type: types.Integer}},
				}))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := int64(-1)
			for i := 0; i < 100; i++ {
				s := c.Snapshot()
				require.GreaterOrEqual(t, s.Version(), last)
				require.Equal(t, int(s.Version()), s.Len())
				last = s.Version()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, writers*perWriter, c.Snapshot().Len())
}

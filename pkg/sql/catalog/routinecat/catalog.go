// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package routinecat holds the external routines known to an engine
// instance. Readers work against immutable snapshots; writers publish a new
// snapshot for every change, so that a statement compiled against one
// snapshot never observes a later declaration.
package routinecat

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/util/log"
	"github.com/cockroachdb/sqlres/pkg/util/syncutil"
	"github.com/google/btree"
	"golang.org/x/exp/maps"
)

const btreeDegree = 8

// entry indexes a signature by its folded name, its arity and the order in
// which it was declared.
type entry struct {
	key   string
	arity int
	seq   uint64
	sig   *overload.Signature
}

var _ btree.Item = (*entry)(nil)

// Less implements btree.Item.
func (e *entry) Less(than btree.Item) bool {
	o := than.(*entry)
	if e.key != o.key {
		return e.key < o.key
	}
	if e.arity != o.arity {
		return e.arity < o.arity
	}
	return e.seq < o.seq
}

func foldName(name string) string { return strings.ToUpper(name) }

// Snapshot is an immutable set of routine signatures.
type Snapshot struct {
	tree    *btree.BTree
	version int64
	nextSeq uint64
}

func emptySnapshot() *Snapshot {
	return &Snapshot{tree: btree.New(btreeDegree)}
}

// Version is incremented by every change published to the catalog.
func (s *Snapshot) Version() int64 { return s.version }

// Len returns the number of signatures.
func (s *Snapshot) Len() int { return s.tree.Len() }

// Lookup returns the overloads of name with the given arity, in
// declaration order. Names are matched case-insensitively.
func (s *Snapshot) Lookup(name string, arity int) []*overload.Signature {
	var res []*overload.Signature
	key := foldName(name)
	s.tree.AscendGreaterOrEqual(&entry{key: key, arity: arity}, func(i btree.Item) bool {
		e := i.(*entry)
		if e.key != key || e.arity != arity {
			return false
		}
		res = append(res, e.sig)
		return true
	})
	return res
}

// Overloads returns every overload of name, ordered by arity and then by
// declaration order.
func (s *Snapshot) Overloads(name string) []*overload.Signature {
	var res []*overload.Signature
	key := foldName(name)
	s.tree.AscendGreaterOrEqual(&entry{key: key}, func(i btree.Item) bool {
		e := i.(*entry)
		if e.key != key {
			return false
		}
		res = append(res, e.sig)
		return true
	})
	return res
}

// Names returns the distinct routine names, sorted.
func (s *Snapshot) Names() []string {
	names := make(map[string]struct{})
	s.tree.Ascend(func(i btree.Item) bool {
		names[i.(*entry).key] = struct{}{}
		return true
	})
	res := maps.Keys(names)
	sort.Strings(res)
	return res
}

// ForEach calls fn for every signature in name order. Iteration stops at
// the first error, which is returned.
func (s *Snapshot) ForEach(fn func(*overload.Signature) error) error {
	var err error
	s.tree.Ascend(func(i btree.Item) bool {
		err = fn(i.(*entry).sig)
		return err == nil
	})
	return err
}

// with returns a copy of s extended with sigs. s is left untouched.
func (s *Snapshot) with(sigs []*overload.Signature) (*Snapshot, error) {
	next := &Snapshot{
		tree:    s.tree.Clone(),
		version: s.version + 1,
		nextSeq: s.nextSeq,
	}
	for _, sig := range sigs {
		if err := validate(sig); err != nil {
			return nil, err
		}
		for _, existing := range next.Lookup(sig.Name, sig.Arity()) {
			if sameParams(existing, sig) {
				return nil, pgerror.Newf(pgcode.DuplicateObject,
					"routine %s already exists", redact.Safe(sig.String()))
			}
		}
		next.tree.ReplaceOrInsert(&entry{
			key:   foldName(sig.Name),
			arity: sig.Arity(),
			seq:   next.nextSeq,
			sig:   sig,
		})
		next.nextSeq++
	}
	return next, nil
}

func validate(sig *overload.Signature) error {
	if sig.Name == "" {
		return errors.AssertionFailedf("routine without a name")
	}
	for i, p := range sig.Params {
		if p.Type == nil {
			return errors.AssertionFailedf(
				"parameter %d of routine %s has no type", redact.Safe(i+1), redact.Safe(sig.Name))
		}
	}
	return nil
}

// sameParams returns whether two signatures of the same name and arity
// declare the same parameter types and representations.
func sameParams(a, b *overload.Signature) bool {
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if pa.Kind != pb.Kind || !pa.Type.WithNullable(true).Identical(pb.Type.WithNullable(true)) {
			return false
		}
	}
	return true
}

// Catalog publishes snapshots of the routines known to an engine instance.
// It is safe for concurrent use.
type Catalog struct {
	mu      syncutil.Mutex
	current atomic.Pointer[Snapshot]
}

// New returns an empty catalog.
func New() *Catalog {
	c := &Catalog{}
	c.current.Store(emptySnapshot())
	return c
}

// Snapshot returns the current snapshot. It never blocks.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Add declares sigs and publishes the resulting snapshot. Either every
// signature is added or, on error, none is.
func (c *Catalog) Add(ctx context.Context, sigs ...*overload.Signature) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.current.Load().with(sigs)
	if err != nil {
		return err
	}
	c.publishLocked(ctx, next)
	return nil
}

// Replace discards every declared routine in favor of sigs.
func (c *Catalog) Replace(ctx context.Context, sigs ...*overload.Signature) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	base := emptySnapshot()
	base.version = c.current.Load().version
	next, err := base.with(sigs)
	if err != nil {
		return err
	}
	c.publishLocked(ctx, next)
	return nil
}

func (c *Catalog) publishLocked(ctx context.Context, next *Snapshot) {
	c.mu.AssertHeld()
	c.current.Store(next)
	log.VEventf(ctx, 1, "published routine catalog version %d with %d signatures",
		next.version, next.Len())
}

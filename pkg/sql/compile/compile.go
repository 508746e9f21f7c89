// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package compile decides the types of the expression sites of statements:
// it resolves routine calls against a snapshot of the routine catalog and
// unifies the operands of COALESCE and VALUE. Each statement memoizes its
// decisions, so identical sites are only decided once. Checks on the values
// of constant operands are left to Compiled.Evaluate.
package compile

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/settings"
	"github.com/cockroachdb/sqlres/pkg/sql/catalog/routinecat"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/eval"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/unify"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/cockroachdb/sqlres/pkg/util/log"
	"golang.org/x/sync/errgroup"
)

// Parallelism bounds the number of statements CompileAll compiles at once.
var Parallelism = settings.RegisterIntSetting(
	"sql.compile.parallelism",
	"maximum number of statements compiled concurrently by a batch",
	4,
	settings.IntInRange(1, 256),
)

// Result is the decision made for one expression site.
type Result struct {
	Site string
	// Type is the type of the expression, or nil for a procedure call.
	Type *types.T
	// Signature is the overload a call resolved to.
	Signature *overload.Signature
	// Deferred lists the operands whose values are parsed into Type when
	// the expression is evaluated.
	Deferred []int
	// Clamped is set when the DECIMAL precision of Type was clamped.
	Clamped bool

	site *Site
}

// String renders the result for diagnostics and tests.
func (r Result) String() string {
	var b strings.Builder
	switch {
	case r.Signature != nil && r.Type == nil:
		fmt.Fprintf(&b, "procedure %s", r.Signature)
	case r.Signature != nil:
		fmt.Fprintf(&b, "%s via %s", r.Type, r.Signature)
	default:
		b.WriteString(r.Type.String())
	}
	if r.Clamped {
		b.WriteString(" clamped")
	}
	if len(r.Deferred) > 0 {
		fmt.Fprintf(&b, " deferred=%v", r.Deferred)
	}
	return b.String()
}

// Compiled is a compiled statement.
type Compiled struct {
	Name string
	// Version is the version of the catalog snapshot the statement was
	// compiled against.
	Version int64
	Results []Result
	// MemoHits counts sites answered from the statement's memo.
	MemoHits int
}

// Evaluate runs the checks that compilation defers to evaluation against
// the constant operands of the statement: bridged strings must parse as
// the datetime result, numeric constants must fit a DECIMAL result, and a
// NULL may not be passed to a parameter bound in its natural
// representation. The first failure is returned, naming the statement and
// the site.
func (c *Compiled) Evaluate(ctx context.Context) error {
	ctx = logtags.AddTag(ctx, "stmt", c.Name)
	for i, r := range c.Results {
		if err := r.evaluate(); err != nil {
			log.VEventf(logtags.AddTag(ctx, "expr", i+1), 1, "%s failed: %v", redact.Safe(r.Site), err)
			return errors.Wrapf(err, "%s: expression %d", redact.Safe(c.Name), redact.Safe(i+1))
		}
	}
	return nil
}

func (r *Result) evaluate() error {
	if r.site == nil {
		return errors.AssertionFailedf("result %s has no site", redact.Safe(r.Site))
	}
	if r.site.Kind == Call {
		for pos, op := range r.site.Operands {
			if err := eval.CheckArgument(r.Signature, pos, op.Null); err != nil {
				return err
			}
		}
		return nil
	}
	for _, pos := range r.Deferred {
		if lit := r.site.Operands[pos].Literal; lit != nil {
			if _, err := eval.ParseDatetime(r.Type.Family(), *lit); err != nil {
				return pgerror.WithArgPosition(err, pos)
			}
		}
	}
	if r.Type.Family() == types.DecimalFamily {
		for pos, op := range r.site.Operands {
			if op.Literal == nil || !op.Type.Family().IsNumeric() {
				continue
			}
			if _, err := eval.ParseDecimal(r.Type, *op.Literal); err != nil {
				return pgerror.WithArgPosition(err, pos)
			}
		}
	}
	return nil
}

// Compiler compiles statements under the settings of an engine instance.
// It is safe for concurrent use.
type Compiler struct {
	sv       *settings.Values
	catalog  *routinecat.Catalog
	unifier  *unify.Unifier
	resolver *overload.Resolver
}

// NewCompiler returns a compiler resolving calls against cat. A nil sv
// uses the default settings and a nil cat an empty catalog.
func NewCompiler(sv *settings.Values, cat *routinecat.Catalog) *Compiler {
	if sv == nil {
		sv = settings.MakeValues()
	}
	if cat == nil {
		cat = routinecat.New()
	}
	return &Compiler{
		sv:       sv,
		catalog:  cat,
		unifier:  unify.NewUnifier(sv),
		resolver: overload.NewResolver(sv),
	}
}

// Compile compiles stmt against the current catalog snapshot. The first
// failing site aborts compilation; its error names the statement and the
// site.
func (c *Compiler) Compile(ctx context.Context, stmt *Statement) (*Compiled, error) {
	return c.compile(ctx, c.catalog.Snapshot(), stmt)
}

// CompileAll compiles a batch of statements concurrently against a single
// catalog snapshot. Results are returned in the order of stmts; the first
// error cancels the statements not yet started.
func (c *Compiler) CompileAll(ctx context.Context, stmts []*Statement) ([]*Compiled, error) {
	snap := c.catalog.Snapshot()
	res := make([]*Compiled, len(stmts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(int(Parallelism.Get(c.sv)))
	for i := range stmts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			compiled, err := c.compile(ctx, snap, stmts[i])
			res[i] = compiled
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Compiler) compile(
	ctx context.Context, snap *routinecat.Snapshot, stmt *Statement,
) (*Compiled, error) {
	ctx = logtags.AddTag(ctx, "stmt", stmt.Name)
	out := &Compiled{
		Name:    stmt.Name,
		Version: snap.Version(),
		Results: make([]Result, 0, len(stmt.Sites)),
	}
	memo := make(map[string]Result, len(stmt.Sites))
	for i := range stmt.Sites {
		site := &stmt.Sites[i]
		key := site.String()
		if r, ok := memo[key]; ok {
			out.MemoHits++
			out.Results = append(out.Results, r)
			continue
		}
		siteCtx := logtags.AddTag(ctx, "expr", i+1)
		r, err := c.compileSite(siteCtx, snap, site)
		if err != nil {
			log.VEventf(siteCtx, 1, "%s failed: %v", redact.Safe(key), err)
			return nil, errors.Wrapf(err, "%s: expression %d", redact.Safe(stmt.Name), redact.Safe(i+1))
		}
		r.Site, r.site = key, site
		memo[key] = r
		out.Results = append(out.Results, r)
	}
	log.VEventf(ctx, 2, "compiled %d expressions against catalog version %d",
		len(out.Results), out.Version)
	return out, nil
}

func (c *Compiler) compileSite(
	ctx context.Context, snap *routinecat.Snapshot, site *Site,
) (Result, error) {
	if site.Kind == Call {
		return c.compileCall(ctx, snap, site)
	}
	return c.compileMerge(ctx, site)
}

func (c *Compiler) compileMerge(ctx context.Context, site *Site) (Result, error) {
	operands := site.OperandTypes()
	o, err := c.unifier.Coalesce(ctx, operands...)
	if err != nil {
		return Result{}, err
	}
	if err := o.Err(); err != nil {
		return Result{}, err
	}
	return Result{
		Type:     o.Type,
		Deferred: o.DeferredPositions(operands...),
		Clamped:  o.Clamped,
	}, nil
}

func (c *Compiler) compileCall(
	ctx context.Context, snap *routinecat.Snapshot, site *Site,
) (Result, error) {
	operands := site.OperandTypes()
	candidates := snap.Lookup(site.Name, len(operands))
	var o overload.Outcome
	var err error
	if site.Host != nil {
		o, err = c.resolver.ResolveExplicit(ctx, site.Name, candidates, site.Host, operands, site.Context)
	} else {
		o, err = c.resolver.Resolve(ctx, site.Name, candidates, operands, site.Context)
	}
	if err != nil {
		return Result{}, err
	}
	if err := o.Err(); err != nil {
		return Result{}, err
	}
	sig := o.Signature
	r := Result{Signature: sig}
	if ret := sig.Return; ret.Type != nil {
		r.Type = ret.Type.WithNullable(ret.Kind != hostrep.Natural)
	}
	return r, nil
}

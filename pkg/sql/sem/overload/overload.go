// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package overload picks, among the overloads of an external routine, the
// one a call binds to.
//
// Candidates are narrowed in successive passes: by name and arity, then
// position by position by whether the operand's family widens to the
// parameter's, then by the call's return context. The survivors are ranked
// by the representations their parameters bind operands as, and then by
// how far operands must widen. A unique best survivor is Resolved; a tie
// is Ambiguous, regardless of the order in which overloads are declared.
package overload

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/settings"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqlres/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"github.com/cockroachdb/sqlres/pkg/util/log"
)

// MaxCandidates bounds the number of overloads considered for one call.
var MaxCandidates = settings.RegisterIntSetting(
	"sql.routines.max_candidates",
	"the maximum number of overloads a routine call is resolved against",
	math.MaxUint8,
	settings.IntInRange(1, math.MaxUint8),
)

// Markers distinguishing the outcomes of resolution with errors.Is.
var (
	ErrUnresolvable     = errors.New("no matching routine")
	ErrAmbiguous        = errors.New("ambiguous routine call")
	ErrIneligibleReturn = errors.New("no routine with an eligible return type")
)

// Kind tags an Outcome.
type Kind uint8

const (
	// Unresolvable means no candidate applies.
	Unresolvable Kind = iota
	// Resolved means exactly one candidate is best.
	Resolved
	// Ambiguous means several candidates tie for best.
	Ambiguous
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	}
	return "unresolvable"
}

// SafeValue implements redact.SafeValue.
func (k Kind) SafeValue() {}

// Rank orders applicable candidates; lower is better. Representation is
// the sum over parameters of the representation ranks of hostrep.Rank, and
// Distance the sum of conversion distances from operand to parameter
// family. Representation is compared first and Distance only orders
// candidates tied on it; candidates equal on both are ambiguous.
type Rank struct {
	Representation int
	Distance       int
}

// Less returns whether r is strictly better than o.
func (r Rank) Less(o Rank) bool {
	if r.Representation != o.Representation {
		return r.Representation < o.Representation
	}
	return r.Distance < o.Distance
}

// Outcome is the result of resolving a call.
type Outcome struct {
	Kind Kind
	// Signature is the chosen overload when Resolved.
	Signature *Signature
	// Rank is the rank of the chosen or tied overloads.
	Rank Rank
	// Candidates are the tied overloads when Ambiguous, ordered by their
	// string form.
	Candidates []*Signature
	// Position is the zero-based operand at which the last candidates were
	// eliminated (Unresolvable) or the first parameter at which tied
	// candidates differ (Ambiguous), or pgerror.NoPosition.
	Position int
	// ReturnIneligible is set on an Unresolvable outcome when candidates
	// applied to the operands but none could serve the return context.
	ReturnIneligible bool

	call string
}

// Err returns nil for a Resolved outcome and otherwise the diagnostic:
// 42X50 for an unresolvable call, 42Y03 when only the return context
// excluded candidates, and 42X73 for an ambiguous call.
func (o Outcome) Err() error {
	var err error
	switch {
	case o.Kind == Resolved:
		return nil
	case o.Kind == Ambiguous:
		err = pgerror.Newf(pgcode.AmbiguousRoutine,
			"routine call %s is ambiguous", redact.Safe(o.call))
		names := make([]string, len(o.Candidates))
		for i, c := range o.Candidates {
			names[i] = c.String()
		}
		err = errors.WithDetailf(err, "candidates: %s", strings.Join(names, "; "))
		if o.Position != pgerror.NoPosition {
			err = errors.WithDetailf(err, "candidates differ at parameter %d", o.Position+1)
		}
		err = errors.WithHint(err, "use an explicit host signature to select one overload")
		err = errors.Mark(err, ErrAmbiguous)
	case o.ReturnIneligible:
		err = pgerror.Newf(pgcode.IneligibleRoutine,
			"no overload of %s has a return type eligible in this context", redact.Safe(o.call))
		err = errors.Mark(err, ErrIneligibleReturn)
	default:
		err = pgerror.Newf(pgcode.UndefinedRoutine,
			"no routine matches %s", redact.Safe(o.call))
		err = errors.Mark(err, ErrUnresolvable)
	}
	return pgerror.WithArgPosition(err, o.Position)
}

// Resolver resolves routine calls under the settings of an engine
// instance. It holds no other state and is safe for concurrent use.
type Resolver struct {
	sv *settings.Values
}

// NewResolver returns a Resolver reading its settings from sv. A nil sv
// uses the defaults.
func NewResolver(sv *settings.Values) *Resolver {
	if sv == nil {
		sv = settings.MakeValues()
	}
	return &Resolver{sv: sv}
}

func (r *Resolver) initIdxs(candidates []*Signature) ([]uint8, error) {
	if limit := MaxCandidates.Get(r.sv); int64(len(candidates)) > limit {
		return nil, errors.AssertionFailedf(
			"too many overloads (%d > %d)", redact.Safe(len(candidates)), redact.Safe(limit))
	}
	idxs := make([]uint8, len(candidates))
	for i := range idxs {
		idxs[i] = uint8(i)
	}
	return idxs, nil
}

// Resolve picks the overload of name that a call with the given operand
// types binds to. A nil operand is an untyped parameter, which every
// parameter accepts. Candidates with another name or arity are ignored.
//
// The returned error is reserved for calls that cannot be resolved at all
// because of the configuration; the outcome of resolution, including
// failure, is in the Outcome.
func (r *Resolver) Resolve(
	ctx context.Context,
	name string,
	candidates []*Signature,
	operands []*types.T,
	rc ReturnContext,
) (Outcome, error) {
	idxs, err := r.initIdxs(candidates)
	if err != nil {
		return Outcome{}, err
	}
	o := Outcome{Position: pgerror.NoPosition, call: formatCall(name, operands)}

	idxs = filterOverloads(candidates, idxs, func(s *Signature) bool {
		return strings.EqualFold(s.Name, name) && s.Arity() == len(operands)
	})
	if len(idxs) == 0 {
		log.VEventf(ctx, 2, "%s: no overload with %d parameters", redact.Safe(o.call), len(operands))
		return o, nil
	}

	for i, t := range operands {
		if t == nil {
			continue
		}
		idxs = filterOverloads(candidates, idxs, func(s *Signature) bool {
			return s.Params[i].Accepts(t.Family())
		})
		if len(idxs) == 0 {
			log.VEventf(ctx, 2, "%s: no overload accepts operand %d", redact.Safe(o.call), i+1)
			o.Position = i
			return o, nil
		}
	}

	idxs = filterOverloads(candidates, idxs, func(s *Signature) bool {
		return rc.admits(s.Return)
	})
	if len(idxs) == 0 {
		log.VEventf(ctx, 2, "%s: no overload has an eligible return type", redact.Safe(o.call))
		o.ReturnIneligible = true
		return o, nil
	}

	ranks := make(map[uint8]Rank, len(idxs))
	for _, idx := range idxs {
		ranks[idx] = rankOf(candidates[idx], operands)
	}
	best := ranks[idxs[0]]
	for _, idx := range idxs[1:] {
		if ranks[idx].Less(best) {
			best = ranks[idx]
		}
	}
	var tied []*Signature
	for _, idx := range idxs {
		if ranks[idx] == best {
			tied = append(tied, candidates[idx])
		}
	}
	o.Rank = best
	if len(tied) == 1 {
		o.Kind = Resolved
		o.Signature = tied[0]
		log.VEventf(ctx, 2, "%s resolved to %s", redact.Safe(o.call), o.Signature)
		return o, nil
	}
	sort.Slice(tied, func(i, j int) bool {
		return tied[i].String() < tied[j].String()
	})
	o.Kind = Ambiguous
	o.Candidates = tied
	o.Position = firstDifference(tied)
	log.VEventf(ctx, 2, "%s is ambiguous between %d overloads", redact.Safe(o.call), len(tied))
	return o, nil
}

// ResolveExplicit picks the overload of name whose parameters are bound as
// exactly the host types of sig, without ranking. When operands are given
// they must also widen to the chosen parameters. Overloads that share a
// host signature, such as CHAR and VARCHAR parameters, are ambiguous.
func (r *Resolver) ResolveExplicit(
	ctx context.Context,
	name string,
	candidates []*Signature,
	sig hostrep.Signature,
	operands []*types.T,
	rc ReturnContext,
) (Outcome, error) {
	idxs, err := r.initIdxs(candidates)
	if err != nil {
		return Outcome{}, err
	}
	call := name + sig.String()
	if operands != nil {
		call = formatCall(name, operands)
	}
	o := Outcome{Position: pgerror.NoPosition, call: call}
	if operands != nil && len(operands) != len(sig) {
		return o, nil
	}

	idxs = filterOverloads(candidates, idxs, func(s *Signature) bool {
		if !strings.EqualFold(s.Name, name) || s.Arity() != len(sig) {
			return false
		}
		for i, p := range s.Params {
			if p.HostType() != sig[i] {
				return false
			}
			if operands != nil && operands[i] != nil && !p.Accepts(operands[i].Family()) {
				return false
			}
		}
		return true
	})
	if len(idxs) == 0 {
		log.VEventf(ctx, 2, "%s: no overload has host signature %s", redact.Safe(o.call), redact.Safe(sig.String()))
		return o, nil
	}
	idxs = filterOverloads(candidates, idxs, func(s *Signature) bool {
		return rc.admits(s.Return)
	})
	switch len(idxs) {
	case 0:
		o.ReturnIneligible = true
	case 1:
		o.Kind = Resolved
		o.Signature = candidates[idxs[0]]
		if operands != nil {
			o.Rank = rankOf(o.Signature, operands)
		}
	default:
		o.Kind = Ambiguous
		for _, idx := range idxs {
			o.Candidates = append(o.Candidates, candidates[idx])
		}
		sort.Slice(o.Candidates, func(i, j int) bool {
			return o.Candidates[i].String() < o.Candidates[j].String()
		})
		o.Position = firstDifference(o.Candidates)
	}
	return o, nil
}

// rankOf ranks a candidate that accepts every operand.
func rankOf(s *Signature, operands []*types.T) Rank {
	var r Rank
	for i, p := range s.Params {
		if t := operands[i]; t != nil {
			d, _ := cast.Distance(t.Family(), p.Type.Family())
			r.Distance += d
		}
		rep, ok := hostrep.Rank(p.Kind)
		if !ok {
			panic(errors.AssertionFailedf("parameter %d of %s has invalid representation %d",
				redact.Safe(i+1), s, redact.Safe(int8(p.Kind))))
		}
		r.Representation += rep
	}
	return r
}

// firstDifference returns the first parameter at which the candidates do
// not all agree, or pgerror.NoPosition.
func firstDifference(candidates []*Signature) int {
	first := candidates[0]
	for i, p := range first.Params {
		for _, c := range candidates[1:] {
			q := c.Params[i]
			if q.Kind != p.Kind || !q.Type.Equivalent(p.Type) {
				return i
			}
		}
	}
	return pgerror.NoPosition
}

// filterOverloads removes the overloads which do not satisfy the predicate
// from overloadIdxs. The order of the remaining indexes is not preserved.
func filterOverloads(
	overloads []*Signature, overloadIdxs []uint8, fn func(*Signature) bool,
) []uint8 {
	for i := 0; i < len(overloadIdxs); {
		if fn(overloads[overloadIdxs[i]]) {
			i++
		} else {
			overloadIdxs[i], overloadIdxs[len(overloadIdxs)-1] = overloadIdxs[len(overloadIdxs)-1], overloadIdxs[i]
			overloadIdxs = overloadIdxs[:len(overloadIdxs)-1]
		}
	}
	return overloadIdxs
}

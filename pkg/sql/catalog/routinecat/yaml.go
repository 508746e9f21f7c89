// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package routinecat

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/hostrep"
	"github.com/cockroachdb/sqlres/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqlres/pkg/sql/types"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Routines []routineDecl `yaml:"routines"`
}

type routineDecl struct {
	Name     string      `yaml:"name"`
	External string      `yaml:"external"`
	Params   []paramDecl `yaml:"params"`
	Returns  *typeDecl   `yaml:"returns"`
}

type paramDecl struct {
	Name     string `yaml:"name"`
	typeDecl `yaml:",inline"`
}

type typeDecl struct {
	Type string `yaml:"type"`
	Rep  string `yaml:"rep"`
}

func (d typeDecl) resolve() (*types.T, hostrep.Kind, error) {
	typ, err := types.Parse(d.Type)
	if err != nil {
		return nil, 0, err
	}
	kind := hostrep.Natural
	if d.Rep != "" {
		if kind, err = hostrep.ParseKind(d.Rep); err != nil {
			return nil, 0, err
		}
	}
	return typ, kind, nil
}

// Parse decodes routine declarations. A routine without a returns clause is
// a procedure; a missing rep means the natural representation.
//
//	routines:
//	- name: pow
//	  external: math.Pow
//	  params:
//	  - {name: x, type: DOUBLE}
//	  - {name: y, type: DOUBLE, rep: nullable}
//	  returns: {type: DOUBLE}
func Parse(r io.Reader) ([]*overload.Signature, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decoding routine catalog")
	}
	sigs := make([]*overload.Signature, 0, len(f.Routines))
	for i, d := range f.Routines {
		if d.Name == "" {
			return nil, errors.Newf("routine %d has no name", redact.Safe(i+1))
		}
		sig := &overload.Signature{
			Name:         d.Name,
			ExternalName: d.External,
			Params:       make([]overload.Param, len(d.Params)),
		}
		for j, p := range d.Params {
			typ, kind, err := p.resolve()
			if err != nil {
				return nil, errors.Wrapf(err, "routine %s parameter %d", redact.Safe(d.Name), redact.Safe(j+1))
			}
			sig.Params[j] = overload.Param{Name: p.Name, Type: typ, Kind: kind}
		}
		if d.Returns != nil {
			typ, kind, err := d.Returns.resolve()
			if err != nil {
				return nil, errors.Wrapf(err, "routine %s return type", redact.Safe(d.Name))
			}
			sig.Return = overload.Return{Type: typ, Kind: kind}
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// Load parses declarations from r and adds them to the catalog.
func (c *Catalog) Load(ctx context.Context, r io.Reader) error {
	sigs, err := Parse(r)
	if err != nil {
		return err
	}
	return c.Add(ctx, sigs...)
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package settings

import (
	"fmt"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a flat mapping of setting keys to values and applies it to
// sv. Keys are applied in sorted order; the first invalid entry aborts the
// load and leaves earlier entries applied.
//
//	sql.types.max_decimal_precision: 20
//	sql.types.decimal_overflow_policy: reject
func LoadYAML(sv *Values, r io.Reader) error {
	var raw map[string]interface{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "decoding settings")
	}
	keys := maps.Keys(raw)
	sort.Strings(keys)
	for _, k := range keys {
		v := raw[k]
		switch v.(type) {
		case map[string]interface{}, []interface{}, nil:
			return errors.Errorf("setting %q: expected a scalar value", k)
		}
		if err := sv.Set(k, fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// sqlres is the command-line interface to type unification and routine
// resolution.
package main

import "github.com/cockroachdb/sqlres/pkg/cli"

func main() {
	cli.Main()
}

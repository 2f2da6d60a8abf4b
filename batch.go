// batch.go: Concurrent binding of many argument vectors
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package janus

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of binding one argument vector.
type Result struct {
	Args        []string
	Config      *ParsedConfig
	Diagnostics Diagnostics
}

// BindAll binds every argv against the shared schema concurrently, running
// at most limit binders at a time (limit <= 0 means no limit). Results are
// returned in input order. Binding problems are reported per Result; the
// only error is a cancelled or expired ctx.
func BindAll(ctx context.Context, schema *Schema, argvs [][]string, limit int, opts ...BindOption) ([]Result, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}

	results := make([]Result, len(argvs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, argv := range argvs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg, diags := Parse(schema, argv, opts...)
			results[i] = Result{Args: argv, Config: cfg, Diagnostics: diags}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The group context is always done after Wait; only the caller's
	// context tells whether the batch was cut short.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

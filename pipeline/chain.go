// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipeline provides a small generic ordered-stage executor. It
// underlies the stats composition pipeline, where the order stages run in
// is part of the contract — realm base, then permanent pill gains, then
// equipment, then techniques, then percentage application, then temporary
// pill multipliers, then final clamps, with each stage seeing the prior
// stage's output rather than the original input.
package pipeline

import (
	"context"
	"fmt"
)

// Stage transforms a value of type T, returning the next value in the
// chain or an error that aborts execution.
type Stage[T any] func(context.Context, T) (T, error)

// namedStage pairs a stage with a label used in error messages.
type namedStage[T any] struct {
	name string
	fn   Stage[T]
}

// Chain is an ordered sequence of stages applied to a value of type T.
// Stages run in registration order; this package never reorders or
// parallelizes them, because the operations it composes are not
// commutative (adding a flat bonus before a percentage multiplier gives a
// different result than applying them in the reverse order).
type Chain[T any] struct {
	stages []namedStage[T]
}

// NewChain creates an empty chain.
func NewChain[T any]() *Chain[T] {
	return &Chain[T]{}
}

// Add appends a named stage to the end of the chain.
func (c *Chain[T]) Add(name string, fn Stage[T]) *Chain[T] {
	c.stages = append(c.stages, namedStage[T]{name: name, fn: fn})
	return c
}

// Execute runs every stage in order, threading the output of one stage into
// the input of the next. If a stage returns an error, execution stops
// immediately and the error is wrapped with the failing stage's name.
func (c *Chain[T]) Execute(ctx context.Context, initial T) (T, error) {
	value := initial
	for _, s := range c.stages {
		next, err := s.fn(ctx, value)
		if err != nil {
			return value, fmt.Errorf("pipeline: stage %q: %w", s.name, err)
		}
		value = next
	}
	return value, nil
}

// StageNames returns the registered stage names in execution order.
// Useful for tests asserting a chain was wired in the right order.
func (c *Chain[T]) StageNames() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

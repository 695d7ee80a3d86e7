// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package events provides a small type-safe event bus used for the
// housekeeping notifications described in the system's external events
// section: world boss lifecycle, bounty expiry, and pending-gift reaping.
// The combat engine and stats pipeline do not use this bus — they are
// plain synchronous functions — this is strictly for cross-cutting
// notifications raised by the periodic sweeper and the dispatcher.
package events

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/duskveil/pathforge/core"
)

// Handler is a typed event handler function that accepts context.
type Handler[T any] func(context.Context, T) error

// Bus routes published values to subscribers registered against a Ref.
// A single Bus instance is process-wide; it is safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
	next int
}

type subscription struct {
	id       string
	priority int
	call     func(context.Context, any) error
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers a typed handler against a TypedRef. Handlers for the
// same ref run in ascending priority order (lower runs first); ties run in
// registration order. Returns a subscription id usable with Unsubscribe.
func Subscribe[T any](bus *Bus, ref *core.TypedRef[T], priority int, handler Handler[T]) string {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.next++
	id := fmt.Sprintf("sub-%d", bus.next)
	key := ref.String()
	bus.subs[key] = append(bus.subs[key], subscription{
		id:       id,
		priority: priority,
		call: func(ctx context.Context, v any) error {
			typed, ok := v.(T)
			if !ok {
				return nil
			}
			return handler(ctx, typed)
		},
	})
	sort.SliceStable(bus.subs[key], func(i, j int) bool {
		return bus.subs[key][i].priority < bus.subs[key][j].priority
	})
	return id
}

// Unsubscribe removes a handler previously registered with Subscribe.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, entries := range b.subs {
		for i, e := range entries {
			if e.id == id {
				b.subs[key] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to every handler subscribed to ref's key, in
// priority order. The first handler error aborts delivery and is returned.
func Publish[T any](ctx context.Context, bus *Bus, ref *core.TypedRef[T], event T) error {
	bus.mu.RLock()
	entries := append([]subscription(nil), bus.subs[ref.String()]...)
	bus.mu.RUnlock()

	for _, e := range entries {
		if err := e.call(ctx, event); err != nil {
			return fmt.Errorf("handler %s for %s: %w", e.id, ref.String(), err)
		}
	}
	return nil
}

// Clear removes every subscription. Intended for test teardown.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]subscription)
}

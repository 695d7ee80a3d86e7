// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package inventory implements the storage ring: a capacity-limited
// multiset of items keyed by name, plus equip/unequip against a player's
// equipment slots and the two-step gift protocol.
package inventory

import "github.com/duskveil/pathforge/rpgerr"

// Ring is a capacity-limited multiset of item stacks. Capacity bounds the
// number of distinct item names, not the size of any one stack.
type Ring struct {
	Capacity int
	Items    map[string]int
}

// NewRing creates an empty ring with the given distinct-item capacity.
func NewRing(capacity int) *Ring {
	return &Ring{Capacity: capacity, Items: make(map[string]int)}
}

// Store adds count of name to the ring. Fails CapacityExceeded only when
// name is new and the ring is already at capacity; existing stacks grow
// without capacity pressure.
func (r *Ring) Store(name string, count int) error {
	if count <= 0 {
		return nil
	}
	if _, exists := r.Items[name]; !exists && len(r.Items) >= r.Capacity {
		return rpgerr.New(rpgerr.CodeCapacityExceeded, "storage ring is full",
			rpgerr.WithMeta("name", name),
			rpgerr.WithMeta("current", len(r.Items)),
			rpgerr.WithMeta("cap", r.Capacity))
	}
	r.Items[name] += count
	return nil
}

// Retrieve removes count of name from the ring, failing if the stack is
// absent or short. Removing the last unit of a stack deletes the key.
func (r *Ring) Retrieve(name string, count int) error {
	if count <= 0 {
		return nil
	}
	have := r.Items[name]
	if have < count {
		return rpgerr.ResourceExhaustedf("insufficient %s (have %d, need %d)", name, have, count)
	}
	remaining := have - count
	if remaining == 0 {
		delete(r.Items, name)
	} else {
		r.Items[name] = remaining
	}
	return nil
}

// Discard is a destructive retrieve — same semantics, distinct name for the
// command-surface operation it backs.
func (r *Ring) Discard(name string, count int) error {
	return r.Retrieve(name, count)
}

// Has reports whether the ring holds at least count of name.
func (r *Ring) Has(name string, count int) bool {
	return r.Items[name] >= count
}

// Count returns the current stack size for name (0 if absent).
func (r *Ring) Count(name string) int {
	return r.Items[name]
}

// Upgrade replaces this ring's capacity with newCapacity, only when it
// strictly exceeds the current capacity. Item stacks carry over unchanged.
func (r *Ring) Upgrade(newCapacity int) error {
	if newCapacity <= r.Capacity {
		return rpgerr.PrerequisiteNotMet("new storage ring must have greater capacity")
	}
	r.Capacity = newCapacity
	return nil
}

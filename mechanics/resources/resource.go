// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resources provides infrastructure for managing bounded numeric
// pools: a player's hp/mp/blood-qi, and the per-attribute ceilings that cap
// permanent pill gains. It is intentionally small — no event bus, no
// rest-trigger vocabulary — because nothing in this system restores a
// resource on anything but elapsed time or an explicit breakthrough.
package resources

import (
	"github.com/duskveil/pathforge/core"
)

// Resource represents a bounded numeric pool: hp, mp, blood qi, or a
// permanent-gain ceiling.
type Resource interface {
	core.Entity // Resources are entities with ID and Type

	// Owner returns the entity that owns this resource.
	Owner() core.Entity

	// Key returns the resource identifier (e.g., "hp", "mp", "atk_percent").
	Key() string

	// Current returns the current amount of this resource.
	Current() int

	// Maximum returns the maximum amount of this resource.
	Maximum() int

	// Consume attempts to use the specified amount of resource.
	// Returns an error if insufficient resources are available.
	Consume(amount int) error

	// Restore adds the specified amount to the resource, up to maximum.
	Restore(amount int)

	// SetCurrent sets the current value directly, clamped to [0, maximum].
	SetCurrent(value int)

	// SetMaximum sets the maximum value, clamping current if it now exceeds it.
	SetMaximum(value int)

	// IsAvailable returns true if any resource is available.
	IsAvailable() bool
}

// ResourceType categorizes a resource for display and bookkeeping.
type ResourceType string

// Resource type constants used across the player's combat pools.
const (
	ResourceTypeHP       ResourceType = "hp"
	ResourceTypeMP       ResourceType = "mp"
	ResourceTypeBloodQi  ResourceType = "blood_qi"
	ResourceTypePillGain ResourceType = "pill_gain_ceiling"
)

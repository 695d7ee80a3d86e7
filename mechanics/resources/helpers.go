// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package resources

import (
	"fmt"

	"github.com/duskveil/pathforge/core"
)

// NewHPPool creates the hp resource for a combatant.
func NewHPPool(owner core.Entity, current, maximum int) *SimpleResource {
	return NewSimpleResource(SimpleResourceConfig{
		ID:      fmt.Sprintf("%s-hp", owner.GetID()),
		Type:    ResourceTypeHP,
		Owner:   owner,
		Key:     "hp",
		Current: current,
		Maximum: maximum,
	})
}

// NewMPPool creates the mp resource for a combatant. Body-path players use
// NewBloodQiPool instead, which keys its pool as "blood_qi".
func NewMPPool(owner core.Entity, current, maximum int) *SimpleResource {
	return NewSimpleResource(SimpleResourceConfig{
		ID:      fmt.Sprintf("%s-mp", owner.GetID()),
		Type:    ResourceTypeMP,
		Owner:   owner,
		Key:     "mp",
		Current: current,
		Maximum: maximum,
	})
}

// NewBloodQiPool creates the blood-qi resource for a body-path player.
func NewBloodQiPool(owner core.Entity, current, maximum int) *SimpleResource {
	return NewSimpleResource(SimpleResourceConfig{
		ID:      fmt.Sprintf("%s-blood-qi", owner.GetID()),
		Type:    ResourceTypeBloodQi,
		Owner:   owner,
		Key:     "blood_qi",
		Current: current,
		Maximum: maximum,
	})
}

// NewPillGainCeiling creates a bounded counter tracking how much of a given
// attribute's permanent pill gain ceiling has been consumed. attribute is a
// key such as "max_hp_percent" or "physical_attack".
func NewPillGainCeiling(owner core.Entity, attribute string, ceiling int) *Counter {
	return NewCounter(fmt.Sprintf("%s-pillgain-%s", owner.GetID(), attribute), ceiling)
}

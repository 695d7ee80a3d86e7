// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskveil/pathforge/dice"
)

// TestHitProbability_ClampsToTestableBounds covers the §8 testable property
// directly: a combatant whose hit_rate-dodge_rate computes to 0.2 still
// hits 30% of the time, and one whose difference exceeds 0.95 is capped
// there rather than guaranteed to land.
func TestHitProbability_ClampsToTestableBounds(t *testing.T) {
	assert.Equal(t, 0.3, hitProbability(0.2, 0))
	assert.Equal(t, 0.95, hitProbability(1.0, 0))
	assert.Equal(t, 0.5, hitProbability(0.6, 0.1))
}

func TestMitigate_CapsAtSeventyFivePercent(t *testing.T) {
	assert.InDelta(t, 0.0, mitigate(0), 1e-9)
	assert.InDelta(t, 0.5, mitigate(100), 1e-9)
	assert.InDelta(t, 0.75, mitigate(1000), 1e-9, "mitigation never exceeds 75%% regardless of defense")
}

// TestResolveDamage_AppliesMitigationAndVariance checks the shared damage
// formula with crits disabled (crit rate 0): every hit lands within the
// mitigated raw value's ±10% variance band.
func TestResolveDamage_AppliesMitigationAndVariance(t *testing.T) {
	roller := dice.NewSeededRoller(7)
	mitigated := 100.0 * (1 - mitigate(100))
	for i := 0; i < 50; i++ {
		dealt, _ := resolveDamage(roller, 100, 100, 0, 1.5)
		lo := int(mitigated * 0.9)
		hi := int(mitigated*1.1) + 1
		assert.GreaterOrEqual(t, dealt, lo)
		assert.LessOrEqual(t, dealt, hi)
	}
}

func TestResolveDamage_FloorsAtOne(t *testing.T) {
	roller := dice.NewSeededRoller(1)
	dealt, _ := resolveDamage(roller, 1, 100000, 0, 1.0)
	assert.Equal(t, 1, dealt)
}

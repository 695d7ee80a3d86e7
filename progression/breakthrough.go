// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package progression implements the breakthrough state machine: the
// precondition check, success-probability roll, and the success/death/
// survive branches that advance or end a player's realm_index.
package progression

import (
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/dice"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
)

// Outcome is the terminal branch an AttemptBreakthrough call resolved to.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeSurvived    Outcome = "survived"
	OutcomeResurrected Outcome = "resurrected"
	OutcomeDeleted     Outcome = "deleted"
)

// Result reports the branch a breakthrough attempt took and the player's
// new realm index when it succeeded.
type Result struct {
	Outcome       Outcome
	NewRealmIndex int
	SuccessChance float64
}

// defaultDeathMultiplier is the unadjusted death-rate scale AttemptBreakthrough
// uses when its deathMultiplier argument is not positive; larger
// deathMultiplier values raise the rolled death probability.
const defaultDeathMultiplier = 1.0

// AttemptBreakthrough runs one full transition: precondition check,
// probability computation (optionally raised by a breakthrough pill up to
// its cap), the roll, and the success/death/survive branch. p is mutated
// in place; the caller commits it as part of the same transaction that
// consumed pill (if any) from the player's inventory.
func AttemptBreakthrough(roller dice.Roller, p *player.Player, realms catalog.RealmTable, pill *catalog.PillDef, tempBonus, deathMultiplier float64) (*Result, error) {
	if deathMultiplier <= 0 {
		deathMultiplier = defaultDeathMultiplier
	}

	if p.RealmIndex >= realms.Len()-1 {
		return nil, rpgerr.PrerequisiteNotMet("already at the final realm")
	}
	next, err := realms.Entry(p.RealmIndex + 1)
	if err != nil {
		return nil, rpgerr.Wrap(err, "load next realm entry")
	}
	if p.Experience < next.RequiredExperience {
		return nil, rpgerr.PrerequisiteNotMet("insufficient experience for breakthrough")
	}

	prob := next.BaseSuccessRate + tempBonus
	if pill != nil {
		if pill.Kind != catalog.PillBreakthrough {
			return nil, rpgerr.InvalidTarget("pill is not a breakthrough pill")
		}
		prob = minF(prob+pill.BreakthroughBonus, pill.BreakthroughCap)
	}
	prob = clampF(prob, 0, 1)

	roll, err := roller.Roll(10000)
	if err != nil {
		return nil, rpgerr.Wrap(err, "roll breakthrough success")
	}

	result := &Result{SuccessChance: prob}
	if float64(roll) <= prob*10000 {
		advance(p, next)
		result.Outcome = OutcomeSuccess
		result.NewRealmIndex = p.RealmIndex
		return result, nil
	}

	minRoll, err := roller.Roll(10000)
	if err != nil {
		return nil, rpgerr.Wrap(err, "roll death probability")
	}
	spread := next.DeathProbabilityMax - next.DeathProbabilityMin
	deathProb := clampF((next.DeathProbabilityMin+spread*float64(minRoll)/10000)*deathMultiplier, 0, 1)

	checkRoll, err := roller.Roll(10000)
	if err != nil {
		return nil, rpgerr.Wrap(err, "roll death check")
	}
	if float64(checkRoll) > deathProb*10000 {
		p.Experience -= int(float64(p.Experience) * 0.1)
		result.Outcome = OutcomeSurvived
		return result, nil
	}

	if p.HasResurrectionToken {
		p.HasResurrectionToken = false
		halveAttributes(p)
		result.Outcome = OutcomeResurrected
		return result, nil
	}

	result.Outcome = OutcomeDeleted
	return result, nil
}

func advance(p *player.Player, next catalog.RealmEntry) {
	p.RealmIndex++
	for attr, gain := range next.AttributeGains {
		addAttributeGain(p, attr, gain)
	}
	p.HP, p.MaxHP = next.BaseHP, next.BaseHP
	p.SetPool(next.BaseMP, next.BaseMP)
}

func addAttributeGain(p *player.Player, attr string, gain int) {
	switch attr {
	case "physical_attack":
		p.PhysicalAttack += gain
	case "magic_attack":
		p.MagicAttack += gain
	case "physical_defense":
		p.PhysicalDefense += gain
	case "magic_defense":
		p.MagicDefense += gain
	case "mental_power":
		p.MentalPower += gain
	case "speed":
		p.Speed += gain
	}
}

func halveAttributes(p *player.Player) {
	p.PhysicalAttack /= 2
	p.MagicAttack /= 2
	p.PhysicalDefense /= 2
	p.MagicDefense /= 2
	p.MentalPower /= 2
	p.Speed /= 2
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

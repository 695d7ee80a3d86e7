// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package combat implements the deterministic-given-seed, turn-based battle
// engine: round structure, action resolution, damage formulas, and the
// closed effect-kind table. Nothing here persists; the caller propagates
// hp/mp back to player.Player per battle kind.
package combat

import (
	"math"

	"github.com/duskveil/pathforge/stats"
)

// Effect kind constants, the closed enum behind stats.Effect.Kind.
const (
	KindStun      = "stun"
	KindFreeze    = "freeze"
	KindParalysis = "paralysis"
	KindConfusion = "confusion"

	KindBleed = "bleed"
	KindBurn  = "burn"
	KindPoison = "poison"

	KindSlow       = "slow"
	KindArmorBreak = "armor_break"
	KindMagicBreak = "magic_break"

	KindAttackBoost   = "attack_boost"
	KindDefenseBoost  = "defense_boost"
	KindSpeedBoost    = "speed_boost"
	KindDodgeBoost    = "dodge_boost"
	KindCriticalBoost = "critical_boost"

	KindShield     = "shield"
	KindHeal       = "heal"
	KindSelfDamage = "self_damage"
	KindMPBurn     = "mp_burn"
	KindPurify     = "purify"
)

func isImmobilize(kind string) bool {
	return kind == KindStun || kind == KindFreeze || kind == KindParalysis
}

func isDoT(kind string) bool {
	return kind == KindBleed || kind == KindBurn || kind == KindPoison
}

// fractionOrFlat applies the convention used throughout this system for
// effect magnitudes: a value below 1 is a fraction of maxHP (or of the
// matching base stat), anything else is a flat amount.
func fractionOrFlat(value float64, maxHP int) int {
	if value > 0 && value < 1 {
		return int(value * float64(maxHP))
	}
	if value < 0 && value > -1 {
		return int(value * float64(maxHP))
	}
	return int(value)
}

// sumEffectValues adds up the Value of every buff/debuff of kind.
func sumEffectValues(effects []stats.Effect, kind string) float64 {
	var total float64
	for _, e := range effects {
		if e.Kind == kind {
			total += e.Value
		}
	}
	return total
}

// splitBoost separates a boost's contributions into a multiplicative
// component (values under 1 in magnitude, treated as a fraction) and a
// flat component (anything else), mirroring the fractionOrFlat idiom used
// for shield/heal/DoT magnitudes.
func splitBoost(effects []stats.Effect, kind string) (multiplier, flat float64) {
	for _, e := range effects {
		if e.Kind != kind {
			continue
		}
		if math.Abs(e.Value) < 1 {
			multiplier += e.Value
		} else {
			flat += e.Value
		}
	}
	return multiplier, flat
}

// decrementDurations ticks every buff/debuff duration down by 1, dropping
// entries that reach zero. Called once per round before actions resolve.
func decrementDurations(c *stats.CombatStats) {
	c.Buffs = decrementList(c.Buffs)
	c.Debuffs = decrementList(c.Debuffs)
}

func decrementList(effects []stats.Effect) []stats.Effect {
	kept := effects[:0]
	for _, e := range effects {
		e.Duration--
		if e.Duration > 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// tickCooldowns decrements every positive skill cooldown by 1, removing
// entries that reach zero.
func tickCooldowns(c *stats.CombatStats) {
	for id, remaining := range c.SkillCooldowns {
		if remaining <= 0 {
			continue
		}
		remaining--
		if remaining == 0 {
			delete(c.SkillCooldowns, id)
		} else {
			c.SkillCooldowns[id] = remaining
		}
	}
}

// applyDoT deducts damage-over-time for every bleed/burn/poison debuff and
// reports whether the combatant died from it.
func applyDoT(c *stats.CombatStats, log *[]string) (died bool) {
	for _, e := range c.Debuffs {
		if !isDoT(e.Kind) {
			continue
		}
		dmg := fractionOrFlat(e.Value, c.MaxHP)
		if dmg <= 0 {
			continue
		}
		c.HP -= dmg
		if c.HP < 0 {
			c.HP = 0
		}
		*log = append(*log, logf("%s takes %d %s damage", c.ID, dmg, e.Kind))
		if c.HP == 0 {
			*log = append(*log, logf("%s was killed by %s", c.ID, e.Kind))
			return true
		}
	}
	return false
}

// applyDamage subtracts from shield first, then hp; returns the amount that
// actually reduced hp (for lifesteal accounting).
func applyDamage(c *stats.CombatStats, amount int) int {
	if amount <= 0 {
		return 0
	}
	if c.Shield > 0 {
		if c.Shield >= amount {
			c.Shield -= amount
			return 0
		}
		amount -= c.Shield
		c.Shield = 0
	}
	actual := amount
	if actual > c.HP {
		actual = c.HP
	}
	c.HP -= actual
	return actual
}

// effectiveView is a combatant's per-round effective stats after buffs,
// debuffs, and breaks are folded onto the composed base.
type effectiveView struct {
	PhysicalAttack  int
	MagicAttack     int
	PhysicalDefense int
	MagicDefense    int
	Speed           int

	CritRate   float64
	CritDamage float64
	HitRate    float64
	DodgeRate  float64
}

// applyMultFlat applies a multiplicative adjustment and a flat adjustment
// to base, then floors the result.
func applyMultFlat(base int, multiplier, flat float64, floor int) int {
	v := int(float64(base)*(1+multiplier) + flat)
	if v < floor {
		return floor
	}
	return v
}

// computeEffective folds a combatant's buffs and debuffs onto its composed
// base stats for one action. attack_boost/defense_boost/speed_boost are
// generic (apply to both the physical and magic lane); armor_break only
// reduces the physical lane and magic_break only the magic lane, matching
// the "armor" vs "magic" naming in the effect-kind table.
func computeEffective(c *stats.CombatStats) effectiveView {
	atkBoostMult, atkBoostFlat := splitBoost(c.Buffs, KindAttackBoost)
	defBoostMult, defBoostFlat := splitBoost(c.Buffs, KindDefenseBoost)
	armorBreakMult, _ := splitBoost(c.Debuffs, KindArmorBreak)
	magicBreakMult, _ := splitBoost(c.Debuffs, KindMagicBreak)

	speedBoostMult, speedBoostFlat := splitBoost(c.Buffs, KindSpeedBoost)
	slow := sumEffectValues(c.Debuffs, KindSlow)

	view := effectiveView{
		PhysicalAttack:  applyMultFlat(c.PhysicalAttack, atkBoostMult-armorBreakMult, atkBoostFlat, 1),
		MagicAttack:     applyMultFlat(c.MagicAttack, atkBoostMult-magicBreakMult, atkBoostFlat, 1),
		PhysicalDefense: applyMultFlat(c.PhysicalDefense, defBoostMult-armorBreakMult, defBoostFlat, 0),
		MagicDefense:    applyMultFlat(c.MagicDefense, defBoostMult-magicBreakMult, defBoostFlat, 0),
		Speed:           applyMultFlat(c.Speed, speedBoostMult-slow, speedBoostFlat, 1),
		CritDamage:      math.Max(1.0, c.CriticalDamage),
		HitRate:         clampF(c.HitRate, 0.5, 1.0),
	}
	view.CritRate = clampF(c.CriticalRate+sumEffectValues(c.Buffs, KindCriticalBoost), 0, 1)
	view.DodgeRate = clampF(c.DodgeRate+sumEffectValues(c.Buffs, KindDodgeBoost)-0.5*slow, 0, 0.8)
	return view
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

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stats implements the layered pipeline that derives a combatant's
// effective CombatStats from a player's persistent state plus the static
// catalogs, using the generic pipeline.Chain executor so that stage order
// is structural rather than a matter of convention.
package stats

import "github.com/duskveil/pathforge/core"

// Effect is a single buff or debuff instance: a tagged union over a closed
// kind enum, carrying its remaining duration and optional source. The
// combat engine is the only thing that appends to or mutates a CombatStats'
// Buffs/Debuffs lists; the pipeline always starts them empty.
type Effect struct {
	Kind     string
	Value    float64
	Duration int
	Chance   float64
	Source   *core.Ref
}

// ResolvedSkill is a skill compiled for battle use: everything the combat
// engine needs to score and resolve it without further catalog lookups.
type ResolvedSkill struct {
	ID                 string
	Name               string
	DamageKind         string // "physical" | "magic"
	BaseDamage         int
	AttackRatio        float64
	MPCost             int
	CooldownRounds     int
	Lifesteal          float64
	MPExhaustedPenalty float64
	Effects            []EffectTemplate
}

// EffectTemplate mirrors catalog.EffectTemplate; duplicated here so combat
// and stats don't need to import catalog just to read an effect shape that
// has already been resolved off the skill definition.
type EffectTemplate struct {
	Kind     string
	Value    float64
	Duration int
	Chance   float64
}

// CombatStats is a flattened, per-battle snapshot of a combatant's
// effective stats, ready for the combat engine. Never persisted.
type CombatStats struct {
	ID string

	HP, MaxHP int
	MP, MaxMP int

	PhysicalAttack  int
	MagicAttack     int
	PhysicalDefense int
	MagicDefense    int
	Speed           int

	CriticalRate   float64
	CriticalDamage float64
	HitRate        float64
	DodgeRate      float64

	Skills         []ResolvedSkill
	SkillCooldowns map[string]int

	Shield  int
	Buffs   []Effect
	Debuffs []Effect
}

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog declares the read-only static configuration this system
// depends on: realm table, skill/technique/item/pill definitions, and the
// bounty/adventure-route/rift tables the economy settles against. Nothing in
// this package loads data from disk or a database — that loader lives
// outside this module's scope; catalog only names the shapes and read
// interfaces every other package composes against.
package catalog

// RealmEntry describes one rung of the realm table: the experience required
// to break through into it, the base success probability of that
// breakthrough, the attribute gains awarded on success, and the base
// resource pools a combatant at this realm starts from.
type RealmEntry struct {
	Name                string
	RequiredExperience  int
	BaseSuccessRate     float64
	AttributeGains      map[string]int
	BaseHP              int
	BaseMP              int
	BaseSpeed           int
	DeathProbabilityMin float64
	DeathProbabilityMax float64
}

// DamageKind is the damage category a skill or attack deals.
type DamageKind string

const (
	DamagePhysical DamageKind = "physical"
	DamageMagic    DamageKind = "magic"
)

// EffectTemplate is the static description of an effect a skill or pill may
// apply; combat turns one of these into a live combat.Effect instance.
type EffectTemplate struct {
	Kind     string
	Value    float64
	Duration int
	Chance   float64 // 0 means "always applies" per the default-1.0 convention
}

// SkillDef is the static definition of a learnable/equippable skill.
type SkillDef struct {
	ID               string
	Name             string
	DamageKind       DamageKind
	BaseDamage       int
	AttackRatio      float64
	MPCost           int
	CooldownRounds   int
	RealmRequirement int
	Price            int
	Lifesteal        float64
	MPExhaustedPenalty float64
	Effects          []EffectTemplate
}

// TechniqueDef is the static definition of a technique (功法): fixed
// attribute bonuses plus passive and growth-pipeline modifiers.
type TechniqueDef struct {
	ID                string
	Name              string
	AttributeBonuses  map[string]int
	PassiveEffects    map[string]float64 // keys ending "_percent" are percentage effects
	GrowthModifiers   map[string]float64
}

// ItemType is the catalog-wide type tag for an equippable or storable item.
type ItemType string

const (
	ItemWeapon        ItemType = "weapon"
	ItemArmor         ItemType = "armor"
	ItemMainTechnique ItemType = "main_technique"
	ItemTechnique     ItemType = "technique"
	ItemPill          ItemType = "pill"
	ItemMaterial      ItemType = "material"
	ItemStorageRing   ItemType = "storage_ring"
)

// ItemDef is the static definition of an item: its type, rank, realm gate,
// and type-specific attribute fields (ignored when not applicable to Type).
type ItemDef struct {
	ID               string
	Name             string
	Type             ItemType
	Rank             int
	RealmRequirement int
	AttributeBonuses map[string]int // attacks, defenses, speed, crit, hp_bonus, mp_bonus
	RingCapacity     int            // only meaningful when Type == ItemStorageRing
}

// PillKind distinguishes the three pill effect shapes named in the glossary.
type PillKind string

const (
	PillBreakthrough PillKind = "breakthrough"
	PillPermanent    PillKind = "permanent"
	PillTemporary    PillKind = "temporary"
)

// PillDef is the static definition of a consumable pill.
type PillDef struct {
	ID       string
	Name     string
	Kind     PillKind
	Price    int

	// PillBreakthrough fields.
	BreakthroughBonus float64
	BreakthroughCap   float64

	// PillPermanent fields: percent gains apply to bases, flat gains add
	// directly, both bounded elsewhere by a per-attribute ceiling.
	PermanentPercentGains map[string]float64
	PermanentFlatGains    map[string]int

	// PillTemporary fields: multipliers apply to a matching stat, bonuses
	// add to crit/dodge rate. DurationSeconds sets the expiry window.
	TemporaryMultipliers map[string]float64
	TemporaryBonuses     map[string]float64
	DurationSeconds      int64
}

// BountyDef is the static definition of a bounty task: a flat reward paid
// on completion, with no elapsed-time component.
type BountyDef struct {
	ID             string
	Name           string
	RewardGold     int
	RewardExp      int
	ExpirySeconds  int64
	RealmRequirement int
}

// AdventureRouteDef parameterizes economy.SettleAdventure the same way a
// realm entry parameterizes cultivation: a duration ceiling and a base
// reward rate.
type AdventureRouteDef struct {
	ID              string
	Name            string
	DurationSeconds int64
	BaseRatePerMin  float64
}

// RiftDef parameterizes economy.SettleRift analogously to AdventureRouteDef.
type RiftDef struct {
	ID              string
	Name            string
	DurationSeconds int64
	BaseRatePerMin  float64
}

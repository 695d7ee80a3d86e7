// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package player defines the authoritative persistent entity for a user:
// identity, progression, resources, base combat stats, equipment, skills,
// pill state, and the activity-state fields the activity scheduler mutates.
package player

import (
	"strconv"

	"github.com/duskveil/pathforge/core"
)

// CultivationPath is a player's chosen cultivation discipline.
type CultivationPath string

const (
	PathSpirit CultivationPath = "spirit"
	PathBody   CultivationPath = "body"
)

// EquipmentSlot names one of the four at-most-one equipment slots.
type EquipmentSlot string

const (
	SlotWeapon        EquipmentSlot = "weapon"
	SlotArmor         EquipmentSlot = "armor"
	SlotMainTechnique EquipmentSlot = "main_technique"
	SlotStorageRing   EquipmentSlot = "storage_ring"
)

// TemporaryEffect is one entry of active_temporary_effects: a pill-granted
// multiplier or bonus with an absolute expiry timestamp.
type TemporaryEffect struct {
	Kind       string // e.g. "atk_multiplier", "hit_bonus"
	Value      float64
	ExpiryUnix int64
	PillName   string
}

// Player is the authoritative persistent entity for a user.
type Player struct {
	// Identity.
	UserID      string
	DisplayName string

	// Progression.
	RealmIndex      int
	CultivationPath CultivationPath
	Experience      int
	Lifespan        int

	// Resources. Body-path players use BloodQi/MaxBloodQi in place of the
	// spirit pool's mp semantics; both fields are always present so the
	// stats pipeline never branches on path when it doesn't have to.
	Gold        int
	HP, MaxHP   int
	MP, MaxMP   int
	BloodQi     int
	MaxBloodQi  int

	// Base combat stats.
	PhysicalAttack  int
	MagicAttack     int
	PhysicalDefense int
	MagicDefense    int
	MentalPower     int
	Speed           int
	CriticalRate    float64
	CriticalDamage  float64
	HitRate         float64
	DodgeRate       float64

	// Equipment slots, at most one item id each. Empty string means unset.
	EquippedWeapon        string
	EquippedArmor         string
	EquippedMainTechnique string
	EquippedStorageRing   string

	// Skill collections.
	LearnedSkills  map[string]bool
	EquippedSkills []string // ordered, capacity 2, subset of LearnedSkills

	// Pill effects state.
	ActiveTemporaryEffects []TemporaryEffect
	PermanentPillGains     map[string]float64 // attribute -> cumulative value, bounded by a ceiling
	HasResurrectionToken   bool
	HasDebuffShield        bool
	PillInventory          map[string]int // pill name -> count

	// Activity state, mutated only by the activity scheduler.
	Activity ActivityState

	// Timestamps.
	LastCheckInDate      int64
	CultivationStartTime int64
	LastStartTime        map[ActivityKind]int64
}

// New creates a Player freshly entering cultivation, per the lifecycle
// described in §3.1: realm 0, zeroed progression, empty collections.
func New(userID string, path CultivationPath) *Player {
	return &Player{
		UserID:             userID,
		CultivationPath:    path,
		RealmIndex:         0,
		LearnedSkills:      make(map[string]bool),
		EquippedSkills:     make([]string, 0, 2),
		PermanentPillGains: make(map[string]float64),
		PillInventory:      make(map[string]int),
		LastStartTime:      make(map[ActivityKind]int64),
		Activity:           ActivityState{Kind: KindNone},
	}
}

// GetID implements core.Entity.
func (p *Player) GetID() string { return p.UserID }

// GetType implements core.Entity.
func (p *Player) GetType() string { return "player" }

var _ core.Entity = (*Player)(nil)

// MaxPool returns the current and max value of this player's secondary
// resource pool — mp for spirit path, blood qi for body path.
func (p *Player) MaxPool() (current, maximum int) {
	if p.CultivationPath == PathBody {
		return p.BloodQi, p.MaxBloodQi
	}
	return p.MP, p.MaxMP
}

// SetPool writes back the secondary resource pool for this player's path.
func (p *Player) SetPool(current, maximum int) {
	if p.CultivationPath == PathBody {
		p.BloodQi, p.MaxBloodQi = current, maximum
		return
	}
	p.MP, p.MaxMP = current, maximum
}

// CheckInvariants validates the universal invariants from §8 that must hold
// at every quiescent moment. It does not mutate the player.
func (p *Player) CheckInvariants() error {
	if p.HP < 0 || p.HP > p.MaxHP {
		return core.NewValidationError("hp", strconv.Itoa(p.HP), "out of [0, max_hp]", nil)
	}
	if p.MP < 0 || p.MP > p.MaxMP {
		return core.NewValidationError("mp", strconv.Itoa(p.MP), "out of [0, max_mp]", nil)
	}
	if len(p.EquippedSkills) > 2 {
		return core.NewValidationError("equipped_skills", strconv.Itoa(len(p.EquippedSkills)), "exceeds capacity 2", nil)
	}
	for _, id := range p.EquippedSkills {
		if !p.LearnedSkills[id] {
			return core.NewValidationError("equipped_skills", id, "not in learned_skills", nil)
		}
	}
	return nil
}

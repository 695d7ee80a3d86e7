// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package worldboss implements the shared-resource contention model for a
// world boss: concurrent challengers compare-and-swap against its hp pool,
// the alive-to-defeated flip is irrevocable, and only the flipping
// challenger earns the full reward — others get a damage-proportional
// consolation share.
package worldboss

import (
	"sync"

	"github.com/duskveil/pathforge/combat"
	"github.com/duskveil/pathforge/core"
	"github.com/duskveil/pathforge/dice"
	"github.com/duskveil/pathforge/mechanics/resources"
	"github.com/duskveil/pathforge/rpgerr"
	"github.com/duskveil/pathforge/stats"
)

// ConsolationCap bounds the share of the full reward a non-flipping
// challenger can earn from their tallied damage.
const ConsolationCap = 0.30

// Boss is a single shared world boss instance. Every exported method takes
// Boss's own lock, so the compare-and-swap on hp and the irrevocable
// alive→defeated flip are atomic with respect to concurrent challengers.
type Boss struct {
	mu sync.Mutex

	ID   string
	Name string

	hp *resources.SimpleResource

	PhysicalAttack  int
	PhysicalDefense int
	Speed           int

	Alive        bool
	Participants map[string]int // userID -> cumulative damage dealt
}

var _ core.Entity = (*bossEntity)(nil)

type bossEntity struct{ id string }

func (e bossEntity) GetID() string   { return e.id }
func (e bossEntity) GetType() string { return "world_boss" }

// New constructs a fresh, alive boss with the given stats.
func New(id, name string, maxHP, attack, defense, speed int) *Boss {
	return &Boss{
		ID:              id,
		Name:            name,
		hp:              resources.NewSimpleResource(resources.SimpleResourceConfig{ID: id + "_hp", Type: resources.ResourceTypeHP, Owner: bossEntity{id}, Key: "hp", Current: maxHP, Maximum: maxHP}),
		PhysicalAttack:  attack,
		PhysicalDefense: defense,
		Speed:           speed,
		Alive:           true,
		Participants:    make(map[string]int),
	}
}

// HP returns the boss's current/maximum hp under lock.
func (b *Boss) HP() (current, maximum int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hp.Current(), b.hp.Maximum()
}

// ChallengeResult reports one challenger's contest against the boss.
type ChallengeResult struct {
	Battle      *combat.Result
	DamageDealt int
	Flipped     bool // true only for the challenger whose hit brought hp to 0
}

// ResolveChallenge runs challenger's combat stats against the boss's
// current snapshot inside the boss's own critical section: read hp, fight,
// compare-and-swap hp, and flip alive→defeated if this challenger's damage
// brought it to zero. Defeated bosses reject further challenges.
func (b *Boss) ResolveChallenge(roller dice.Roller, challenger stats.CombatStats) (*ChallengeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Alive {
		return nil, rpgerr.ConflictingState("world boss has already been defeated")
	}

	bossStats := stats.CombatStats{
		ID:              b.ID,
		HP:              b.hp.Current(),
		MaxHP:           b.hp.Maximum(),
		PhysicalAttack:  b.PhysicalAttack,
		PhysicalDefense: b.PhysicalDefense,
		Speed:           b.Speed,
		HitRate:         0.8,
		DodgeRate:       0.05,
		CriticalRate:    0.05,
		CriticalDamage:  1.5,
	}

	result := combat.Resolve(roller, combat.KindBoss, challenger, bossStats)

	dealt := bossStats.HP - result.P2Final.HP
	if dealt < 0 {
		dealt = 0
	}
	b.Participants[challenger.ID] += dealt

	b.hp.SetCurrent(result.P2Final.HP)

	flipped := false
	if result.P2Final.HP <= 0 {
		b.Alive = false
		flipped = true
	}

	return &ChallengeResult{Battle: result, DamageDealt: dealt, Flipped: flipped}, nil
}

// SettleRewards computes the payout for every tallied participant once the
// boss has been defeated: the flipping challenger gets fullReward in full;
// everyone else gets a damage-proportional share capped at ConsolationCap
// of fullReward.
func (b *Boss) SettleRewards(flipperID string, fullReward int) map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	rewards := make(map[string]int, len(b.Participants))
	total := 0
	for id, dmg := range b.Participants {
		if id != flipperID {
			total += dmg
		}
	}
	for id, dmg := range b.Participants {
		if id == flipperID {
			rewards[id] = fullReward
			continue
		}
		if total == 0 {
			continue
		}
		share := float64(dmg) / float64(total)
		if share > ConsolationCap {
			share = ConsolationCap
		}
		rewards[id] = int(share * float64(fullReward))
	}
	return rewards
}

// SpawnIfAbsent returns current unchanged if it is alive, otherwise
// constructs a fresh boss auto-sized from avgPlayerExperience — the
// periodic sweeper's world-boss housekeeping item.
func SpawnIfAbsent(current *Boss, avgPlayerExperience int) *Boss {
	if current != nil && current.Alive {
		return current
	}
	maxHP := avgPlayerExperience*50 + 10000
	attack := avgPlayerExperience/20 + 50
	defense := avgPlayerExperience/30 + 20
	return New("world_boss", "Ancient Calamity", maxHP, attack, defense, 15)
}

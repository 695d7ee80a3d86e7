// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package events

import "github.com/duskveil/pathforge/core"

// BossSpawned is published when the sweeper brings a new world boss online.
type BossSpawned struct {
	BossID string
	Name   string
	MaxHP  int
}

// BossDefeated is published the instant a challenger's compare-and-swap
// flips a world boss from alive to defeated.
type BossDefeated struct {
	BossID    string
	KillerID  string
	DamageLog map[string]int // participant id -> total damage dealt
}

// BountyExpired is published when the sweeper reaps a stale bounty task.
type BountyExpired struct {
	UserID    string
	BountyID  string
}

// GiftReaped is published when the sweeper drops a pending gift that has
// sat unaccepted past its retention window.
type GiftReaped struct {
	SenderID   string
	ReceiverID string
	ItemName   string
	Count      int
}

var (
	// RefBossSpawned routes world-boss-spawn notifications.
	RefBossSpawned = &core.TypedRef[BossSpawned]{Ref: core.MustNewRef(core.RefInput{Module: "world", Type: "event", Value: "boss_spawned"})}
	// RefBossDefeated routes world-boss-defeat notifications.
	RefBossDefeated = &core.TypedRef[BossDefeated]{Ref: core.MustNewRef(core.RefInput{Module: "world", Type: "event", Value: "boss_defeated"})}
	// RefBountyExpired routes stale-bounty-reap notifications.
	RefBountyExpired = &core.TypedRef[BountyExpired]{Ref: core.MustNewRef(core.RefInput{Module: "world", Type: "event", Value: "bounty_expired"})}
	// RefGiftReaped routes stale-pending-gift notifications.
	RefGiftReaped = &core.TypedRef[GiftReaped]{Ref: core.MustNewRef(core.RefInput{Module: "world", Type: "event", Value: "gift_reaped"})}
)

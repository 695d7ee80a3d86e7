// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package player

// ActivityKind enumerates the mutually exclusive busy states a player can
// be in. KindNone is the Idle state.
type ActivityKind string

const (
	KindNone          ActivityKind = ""
	KindCultivating   ActivityKind = "cultivating"
	KindAdventuring   ActivityKind = "adventuring"
	KindExploring     ActivityKind = "exploring"
	KindCrafting      ActivityKind = "crafting"
	KindBounty        ActivityKind = "bounty"
	KindBossCombat    ActivityKind = "boss_combat"
	KindDualPending   ActivityKind = "dual_pending"
	KindDualConfirmed ActivityKind = "dual_confirmed"
)

// ActivityState is a player's current busy/idle state. A player is Idle
// when Kind == KindNone; any other Kind means Busy(kind, started_at,
// deadline, payload) per §3.3.
type ActivityState struct {
	Kind      ActivityKind
	StartedAt int64
	Deadline  int64
	Payload   map[string]string
}

// Idle reports whether this state is the Idle state.
func (s ActivityState) Idle() bool {
	return s.Kind == KindNone
}

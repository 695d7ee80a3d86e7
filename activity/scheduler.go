// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package activity implements the mutual-exclusion scheduler that gates a
// player's timed activities (cultivation, adventures, rifts, duels, ...)
// and the lazy elapsed-time settlement those activities rely on. It owns
// no state of its own: every operation reads and writes the
// player.ActivityState embedded in the Player it's given.
package activity

import (
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
)

// RebirthCooldownSeconds is the global cooldown for the rebirth (abandon
// path) activity kind, enforced via last_start_time regardless of user.
const RebirthCooldownSeconds = 3600

// DuelCooldownSeconds and SparCooldownSeconds gate the combat-kind
// commands layered on top of this scheduler at the command layer.
const (
	DuelCooldownSeconds = 300
	SparCooldownSeconds = 60
)

// Start records a new Busy activity for p, failing with ConflictingState if
// p is not currently Idle.
func Start(p *player.Player, kind player.ActivityKind, now, duration int64, payload map[string]string) error {
	if !p.Activity.Idle() {
		return rpgerr.ConflictingState("player is already busy with " + string(p.Activity.Kind))
	}
	p.Activity = player.ActivityState{
		Kind:      kind,
		StartedAt: now,
		Deadline:  now + duration,
		Payload:   payload,
	}
	if p.LastStartTime == nil {
		p.LastStartTime = make(map[player.ActivityKind]int64)
	}
	p.LastStartTime[kind] = now
	return nil
}

// Check returns the current activity's deadline, failing if p is Idle or
// busy with a different kind than requested.
func Check(p *player.Player, requiredKind player.ActivityKind) (deadline int64, err error) {
	if p.Activity.Idle() {
		return 0, rpgerr.ConflictingState("player is not busy")
	}
	if p.Activity.Kind != requiredKind {
		return 0, rpgerr.InvalidTarget("player is busy with a different activity kind")
	}
	return p.Activity.Deadline, nil
}

// Finish validates p is Busy(requiredKind, ...) and now is past the
// deadline, then clears activity state to Idle and returns the elapsed
// time clamped to the scheduled duration. A premature finish returns
// TimingRestriction with the remaining time attached as metadata.
func Finish(p *player.Player, requiredKind player.ActivityKind, now int64) (elapsed int64, err error) {
	if p.Activity.Idle() {
		return 0, rpgerr.ConflictingState("player is not busy")
	}
	if p.Activity.Kind != requiredKind {
		return 0, rpgerr.InvalidTarget("player is busy with a different activity kind")
	}
	if now < p.Activity.Deadline {
		return 0, rpgerr.TimingRestriction("activity is not yet complete", rpgerr.WithMeta("remaining_seconds", p.Activity.Deadline-now))
	}

	scheduledDuration := p.Activity.Deadline - p.Activity.StartedAt
	elapsed = now - p.Activity.StartedAt
	if elapsed > scheduledDuration {
		elapsed = scheduledDuration
	}

	p.Activity = player.ActivityState{Kind: player.KindNone}
	return elapsed, nil
}

// Abort force-clears p's activity state regardless of deadline, used by
// system-driven cleanups (e.g. a breakthrough death).
func Abort(p *player.Player) {
	p.Activity = player.ActivityState{Kind: player.KindNone}
}

// OnCooldown reports whether kind was started for p within cooldownSeconds
// of now, per the last_start_time model.
func OnCooldown(p *player.Player, kind player.ActivityKind, now, cooldownSeconds int64) bool {
	last, ok := p.LastStartTime[kind]
	if !ok {
		return false
	}
	return now-last < cooldownSeconds
}

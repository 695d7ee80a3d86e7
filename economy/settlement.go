// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package economy settles the reward side of lazily-finished timed
// activities: cultivation experience/hp/mp regen, and the generalized
// adventure/rift/bounty formulas parameterized by their static catalogs.
package economy

import (
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
)

// CultivationBaseExpPerMinute is the unmodified experience rate before
// root multiplier, technique bonus, and temporary multipliers are applied.
const CultivationBaseExpPerMinute = 10.0

// CultivationRegenPerMinute is the fraction of max hp/mp recovered per
// elapsed minute of cultivation, before technique regen bonuses.
const CultivationRegenPerMinute = 0.005

// CultivationMaxDuration returns the elapsed-time clamp for cultivation:
// 24h plus 6h for every 9 realms advanced.
func CultivationMaxDuration(realmIndex int) int64 {
	const day = 24 * 3600
	const sixHours = 6 * 3600
	return day + int64(realmIndex/9)*sixHours
}

// SettleCultivation computes the experience gain and hp/mp regen for
// elapsedSeconds of cultivation (already clamped by the caller's activity
// scheduler to CultivationMaxDuration), applying root multiplier,
// technique experience multiplier, and the sum of active temporary
// cultivation multipliers.
func SettleCultivation(p *player.Player, elapsedSeconds int64, rootMultiplier, techniqueExpMultiplier float64) (expGain int, hpGain, mpGain int) {
	minutes := float64(elapsedSeconds) / 60

	tempMultiplier := 0.0
	for _, eff := range p.ActiveTemporaryEffects {
		if eff.Kind == "cultivation_exp_multiplier" {
			tempMultiplier += eff.Value
		}
	}

	exp := minutes * CultivationBaseExpPerMinute * rootMultiplier * (1 + techniqueExpMultiplier)
	if tempMultiplier > 0 {
		exp *= tempMultiplier
	}

	hp := int(minutes * CultivationRegenPerMinute * float64(p.MaxHP))
	_, maxPool := p.MaxPool()
	mp := int(minutes * CultivationRegenPerMinute * float64(maxPool))

	return int(exp), hp, mp
}

// SettleAdventure settles a finished adventure route: elapsed time is
// clamped to the route's DurationSeconds, reward scales linearly with the
// route's base rate per minute.
func SettleAdventure(routes catalog.AdventureRouteCatalog, routeID string, elapsedSeconds int64) (expGain int, err error) {
	route, err := routes.Route(routeID)
	if err != nil {
		return 0, rpgerr.Wrap(err, "load adventure route")
	}
	if elapsedSeconds > route.DurationSeconds {
		elapsedSeconds = route.DurationSeconds
	}
	minutes := float64(elapsedSeconds) / 60
	return int(minutes * route.BaseRatePerMin), nil
}

// SettleRift settles a finished rift exploration analogously to
// SettleAdventure, parameterized by catalog.RiftCatalog.
func SettleRift(rifts catalog.RiftCatalog, riftID string, elapsedSeconds int64) (expGain int, err error) {
	rift, err := rifts.Rift(riftID)
	if err != nil {
		return 0, rpgerr.Wrap(err, "load rift")
	}
	if elapsedSeconds > rift.DurationSeconds {
		elapsedSeconds = rift.DurationSeconds
	}
	minutes := float64(elapsedSeconds) / 60
	return int(minutes * rift.BaseRatePerMin), nil
}

// SettleBounty pays the flat reward for a completed bounty: no elapsed-time
// component, unlike cultivation/adventure/rift.
func SettleBounty(bounties catalog.BountyCatalog, bountyID string) (gold, exp int, err error) {
	bounty, err := bounties.Bounty(bountyID)
	if err != nil {
		return 0, 0, rpgerr.Wrap(err, "load bounty")
	}
	return bounty.RewardGold, bounty.RewardExp, nil
}

// PassiveIncome implements the "tick-since-last-collect" idiom shared by
// blessed land, spirit farm, spirit eye, dual cultivation, and check-in:
// a flat-per-minute rate multiplied by elapsed time since lastCollectUnix,
// capped at maxAccrualSeconds of accrual so an abandoned feature doesn't
// pay out an unbounded backlog.
func PassiveIncome(lastCollectUnix, nowUnix int64, ratePerMinute float64, maxAccrualSeconds int64) int {
	elapsed := nowUnix - lastCollectUnix
	if elapsed < 0 {
		return 0
	}
	if elapsed > maxAccrualSeconds {
		elapsed = maxAccrualSeconds
	}
	minutes := float64(elapsed) / 60
	return int(minutes * ratePerMinute)
}

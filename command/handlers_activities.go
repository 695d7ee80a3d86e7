// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package command

import (
	"context"
	"fmt"

	"github.com/duskveil/pathforge/activity"
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/economy"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
)

func handleStartAdventure(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("start_adventure requires a route id")
	}
	routeID := req.Arguments[0]
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	route, err := wc.Routes.Route(routeID)
	if err != nil {
		return Response{}, rpgerr.NotFoundf("route %q", routeID)
	}

	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := activity.Start(p, player.KindAdventuring, deps.Now(), route.DurationSeconds, map[string]string{"route_id": routeID}); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you set out on the " + route.Name}, nil
}

func handleAdventureStatus(ctx context.Context, deps *Deps, req Request) (Response, error) {
	return reportActivityDeadline(ctx, deps, req, player.KindAdventuring)
}

func handleFinishAdventure(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	routeID := p.Activity.Payload["route_id"]
	elapsed, err := activity.Finish(p, player.KindAdventuring, deps.Now())
	if err != nil {
		return Response{}, err
	}
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	exp, err := economy.SettleAdventure(wc.Routes, routeID, elapsed)
	if err != nil {
		return Response{}, err
	}
	p.Experience += exp
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: fmt.Sprintf("the adventure yields %d experience", exp)}, nil
}

func handleRiftList(ctx context.Context, deps *Deps, req Request) (Response, error) {
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	rifts := wc.Rifts.List()
	text := fmt.Sprintf("%d rifts open", len(rifts))
	for _, r := range rifts {
		text += fmt.Sprintf("\n%s (%s)", r.Name, r.ID)
	}
	return Response{Text: text}, nil
}

func handleEnterRift(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("enter_rift requires a rift id")
	}
	riftID := req.Arguments[0]
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	rift, err := wc.Rifts.Rift(riftID)
	if err != nil {
		return Response{}, rpgerr.NotFoundf("rift %q", riftID)
	}

	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := activity.Start(p, player.KindExploring, deps.Now(), rift.DurationSeconds, map[string]string{"rift_id": riftID}); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you step into " + rift.Name}, nil
}

func handleFinishExploration(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	riftID := p.Activity.Payload["rift_id"]
	elapsed, err := activity.Finish(p, player.KindExploring, deps.Now())
	if err != nil {
		return Response{}, err
	}
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	exp, err := economy.SettleRift(wc.Rifts, riftID, elapsed)
	if err != nil {
		return Response{}, err
	}
	p.Experience += exp
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: fmt.Sprintf("the rift yields %d experience", exp)}, nil
}

// handleExitRift is the early-abandon counterpart to finish_exploration: it
// forfeits the elapsed-time reward entirely rather than settling a partial
// one, matching the activity scheduler's Abort semantics.
func handleExitRift(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if _, err := activity.Check(p, player.KindExploring); err != nil {
		return Response{}, err
	}
	activity.Abort(p)
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you retreat from the rift empty-handed"}, nil
}

func handleBountyList(ctx context.Context, deps *Deps, req Request) (Response, error) {
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	bounties := wc.Bounties.List()
	text := fmt.Sprintf("%d bounties posted", len(bounties))
	for _, b := range bounties {
		text += fmt.Sprintf("\n%s (%s): %d gold", b.Name, b.ID, b.RewardGold)
	}
	return Response{Text: text}, nil
}

func handleAcceptBounty(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("accept_bounty requires a bounty id")
	}
	bountyID := req.Arguments[0]
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	bounty, err := wc.Bounties.Bounty(bountyID)
	if err != nil {
		return Response{}, rpgerr.NotFoundf("bounty %q", bountyID)
	}
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if p.RealmIndex < bounty.RealmRequirement {
		return Response{}, rpgerr.PrerequisiteNotMet("insufficient realm for this bounty")
	}
	if err := activity.Start(p, player.KindBounty, deps.Now(), bounty.ExpirySeconds, map[string]string{"bounty_id": bountyID}); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you accept the bounty: " + bounty.Name}, nil
}

func handleBountyStatus(ctx context.Context, deps *Deps, req Request) (Response, error) {
	return reportActivityDeadline(ctx, deps, req, player.KindBounty)
}

func handleCompleteBounty(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	bountyID := p.Activity.Payload["bounty_id"]
	// Bounties pay a flat reward regardless of timing, so Check rather than
	// Finish: completing one doesn't need to be past its own deadline, only
	// to still be the player's active activity.
	if _, err := activity.Check(p, player.KindBounty); err != nil {
		return Response{}, err
	}
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	gold, exp, err := economy.SettleBounty(wc.Bounties, bountyID)
	if err != nil {
		return Response{}, err
	}
	activity.Abort(p)
	p.Gold += gold
	p.Experience += exp
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: fmt.Sprintf("bounty complete: %d gold, %d experience", gold, exp)}, nil
}

func handleAbandonBounty(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if _, err := activity.Check(p, player.KindBounty); err != nil {
		return Response{}, err
	}
	activity.Abort(p)
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "bounty abandoned"}, nil
}

func reportActivityDeadline(ctx context.Context, deps *Deps, req Request, kind player.ActivityKind) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	deadline, err := activity.Check(p, kind)
	if err != nil {
		return Response{}, err
	}
	remaining := deadline - deps.Now()
	if remaining < 0 {
		remaining = 0
	}
	return Response{Text: fmt.Sprintf("%d seconds remaining", remaining)}, nil
}

func handleUsePill(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("use_pill requires a pill name")
	}
	name := req.Arguments[0]
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	def, err := wc.Pills.Pill(name)
	if err != nil {
		return Response{}, rpgerr.NotFoundf("pill %q", name)
	}
	if def.Kind == catalog.PillBreakthrough {
		return Response{}, rpgerr.InvalidTarget("breakthrough pills are taken with the breakthrough command")
	}
	if err := p.ConsumePill(name); err != nil {
		return Response{}, err
	}

	switch def.Kind {
	case catalog.PillPermanent:
		for attr, pct := range def.PermanentPercentGains {
			p.GrantPermanentGain(attr+"_percent", pct, 1.0)
		}
		for attr, flat := range def.PermanentFlatGains {
			p.GrantPermanentGain(attr, float64(flat), 1e9)
		}
	case catalog.PillTemporary:
		now := deps.Now()
		for kind, mult := range def.TemporaryMultipliers {
			p.ActiveTemporaryEffects = append(p.ActiveTemporaryEffects, player.TemporaryEffect{
				Kind: kind, Value: mult, ExpiryUnix: now + def.DurationSeconds, PillName: name,
			})
		}
		for kind, bonus := range def.TemporaryBonuses {
			p.ActiveTemporaryEffects = append(p.ActiveTemporaryEffects, player.TemporaryEffect{
				Kind: kind, Value: bonus, ExpiryUnix: now + def.DurationSeconds, PillName: name,
			})
		}
	}
	// Breakthrough pills are refused above: the breakthrough handler passes
	// them into progression.AttemptBreakthrough and consumes them there.

	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you consume the " + def.Name}, nil
}

func handleShowPills(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	p.PurgeExpiredEffects(deps.Now())
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	if len(p.PillInventory) == 0 {
		return Response{Text: "no pills held"}, nil
	}
	text := "pills held:"
	for name, count := range p.PillInventory {
		text += fmt.Sprintf("\n%s x%d", name, count)
	}
	return Response{Text: text}, nil
}

func handleLearnSkill(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("learn_skill requires a skill id")
	}
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	wc, err := deps.Store.WorldCatalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	if err := p.LearnSkill(wc.Skills, req.Arguments[0]); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "skill learned: " + req.Arguments[0]}, nil
}

func handleEquipSkill(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("equip_skill requires a skill id")
	}
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := p.EquipSkill(req.Arguments[0]); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "skill equipped: " + req.Arguments[0]}, nil
}

func handleUnequipSkill(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("unequip_skill requires a skill id")
	}
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := p.UnequipSkill(req.Arguments[0]); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "skill unequipped: " + req.Arguments[0]}, nil
}

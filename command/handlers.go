// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/duskveil/pathforge/activity"
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/combat"
	"github.com/duskveil/pathforge/economy"
	"github.com/duskveil/pathforge/events"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/progression"
	"github.com/duskveil/pathforge/rpgerr"
	"github.com/duskveil/pathforge/stats"
)

func handleInfo(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	text := fmt.Sprintf("%s — realm %d, exp %d, hp %d/%d", p.DisplayName, p.RealmIndex, p.Experience, p.HP, p.MaxHP)
	return Response{Text: text}, nil
}

func handleEnterCultivation(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("enter_cultivation requires a path argument")
	}
	path := player.CultivationPath(req.Arguments[0])
	if path != player.PathSpirit && path != player.PathBody {
		return Response{}, rpgerr.InvalidTarget("path must be spirit or body")
	}

	p := player.New(req.UserID, path)
	p.DisplayName = req.DisplayName
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "you begin cultivating the " + string(path) + " path"}, nil
}

func handleStartCultivation(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	now := deps.Now()
	if err := activity.Start(p, player.KindCultivating, now, economy.CultivationMaxDuration(p.RealmIndex), nil); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: "cultivation begins"}, nil
}

func handleEndCultivation(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	now := deps.Now()
	elapsed, err := activity.Finish(p, player.KindCultivating, now)
	if err != nil {
		return Response{}, err
	}
	exp, hp, mp := economy.SettleCultivation(p, elapsed, 1.0, 0)
	p.Experience += exp
	p.HP = minInt(p.HP+hp, p.MaxHP)
	curPool, maxPool := p.MaxPool()
	p.SetPool(minInt(curPool+mp, maxPool), maxPool)

	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	return Response{Text: fmt.Sprintf("you gained %d experience", exp)}, nil
}

func handleBreakthrough(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	cat, err := deps.Store.Catalogs(ctx)
	if err != nil {
		return Response{}, err
	}

	// An optional first argument names a breakthrough pill from the player's
	// inventory; it is passed to the attempt and consumed with it.
	var pill *catalog.PillDef
	if len(req.Arguments) > 0 {
		wc, err := deps.Store.WorldCatalogs(ctx)
		if err != nil {
			return Response{}, err
		}
		def, err := wc.Pills.Pill(req.Arguments[0])
		if err != nil || p.PillInventory[req.Arguments[0]] <= 0 {
			return Response{}, rpgerr.NotFoundf("pill %q", req.Arguments[0])
		}
		pill = &def
	}
	result, err := progression.AttemptBreakthrough(deps.Roller, p, cat.Realms, pill, 0, 1.0)
	if err != nil {
		return Response{}, err
	}
	if pill != nil {
		_ = p.ConsumePill(req.Arguments[0])
	}
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	if result.Outcome == progression.OutcomeDeleted {
		deps.Logger.WithField("user", req.UserID).WithField("realm", p.RealmIndex).Warn("breakthrough death")
		return Response{Text: "you perished during the breakthrough"}, nil
	}
	return Response{Text: "breakthrough outcome: " + string(result.Outcome)}, nil
}

func handleDuel(ctx context.Context, deps *Deps, req Request) (Response, error) {
	return resolvePvP(ctx, deps, req, combat.KindDuel)
}

func handleSpar(ctx context.Context, deps *Deps, req Request) (Response, error) {
	return resolvePvP(ctx, deps, req, combat.KindSpar)
}

func resolvePvP(ctx context.Context, deps *Deps, req Request, kind combat.Kind) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("a target is required")
	}
	attacker, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	defender, err := deps.Store.LoadPlayer(ctx, req.Arguments[0])
	if err != nil {
		return Response{}, err
	}
	cat, err := deps.Store.Catalogs(ctx)
	if err != nil {
		return Response{}, err
	}

	now := deps.Now()
	attackerStats, err := stats.Compose(ctx, attacker, cat, now)
	if err != nil {
		return Response{}, err
	}
	defenderStats, err := stats.Compose(ctx, defender, cat, now)
	if err != nil {
		return Response{}, err
	}

	result := combat.Resolve(deps.Roller, kind, attackerStats, defenderStats)
	combat.Propagate(attacker, result.P1Final, kind)
	combat.Propagate(defender, result.P2Final, kind)

	if err := deps.Store.SavePlayer(ctx, attacker); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SavePlayer(ctx, defender); err != nil {
		return Response{}, err
	}

	outcome := "draw"
	if result.WinnerID != "" {
		outcome = result.WinnerID + " wins"
	}
	return Response{Text: fmt.Sprintf("%s (%d rounds)", outcome, result.Rounds)}, nil
}

func handleChallengeBoss(ctx context.Context, deps *Deps, req Request) (Response, error) {
	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	cat, err := deps.Store.Catalogs(ctx)
	if err != nil {
		return Response{}, err
	}
	boss, err := deps.Store.LoadBoss(ctx)
	if err != nil {
		return Response{}, err
	}

	now := deps.Now()
	pStats, err := stats.Compose(ctx, p, cat, now)
	if err != nil {
		return Response{}, err
	}

	result, err := boss.ResolveChallenge(deps.Roller, pStats)
	if err != nil {
		return Response{}, err
	}
	combat.Propagate(p, result.Battle.P1Final, combat.KindBoss)

	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveBoss(ctx, boss); err != nil {
		return Response{}, err
	}

	if result.Flipped {
		deps.Logger.WithField("user", req.UserID).WithField("boss", boss.ID).Info("world boss slain")
		if err := events.Publish(ctx, deps.Bus, events.RefBossDefeated, events.BossDefeated{
			BossID: boss.ID, KillerID: req.UserID, DamageLog: boss.Participants,
		}); err != nil {
			return Response{}, err
		}
		return Response{Text: "you deliver the final blow and slay the world boss"}, nil
	}
	return Response{Text: fmt.Sprintf("you deal %d damage to the world boss", result.DamageDealt)}, nil
}

func handleStore(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("store requires an item name")
	}
	count := parseCount(req.Arguments, 1)

	ring, err := deps.Store.LoadRing(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := ring.Store(req.Arguments[0], count); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, req.UserID, ring); err != nil {
		return Response{}, err
	}
	return Response{Text: "stored"}, nil
}

func handleRetrieve(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 1 {
		return Response{}, rpgerr.InvalidTarget("retrieve requires an item name")
	}
	count := parseCount(req.Arguments, 1)

	ring, err := deps.Store.LoadRing(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	if err := ring.Retrieve(req.Arguments[0], count); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, req.UserID, ring); err != nil {
		return Response{}, err
	}
	return Response{Text: "retrieved"}, nil
}

func handleGift(ctx context.Context, deps *Deps, req Request) (Response, error) {
	if len(req.Arguments) < 2 {
		return Response{}, rpgerr.InvalidTarget("gift requires a target and an item name")
	}
	targetID, name := req.Arguments[0], req.Arguments[1]
	count := parseCount(req.Arguments, 2)

	ring, err := deps.Store.LoadRing(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	book, err := deps.Store.LoadGiftBook(ctx)
	if err != nil {
		return Response{}, err
	}
	if err := book.Gift(ring, req.UserID, targetID, name, count); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, req.UserID, ring); err != nil {
		return Response{}, err
	}
	if err := deps.Store.RecordGiftSentAt(ctx, targetID, deps.Now()); err != nil {
		return Response{}, err
	}
	return Response{Text: "gift sent"}, nil
}

func handleAcceptGift(ctx context.Context, deps *Deps, req Request) (Response, error) {
	book, err := deps.Store.LoadGiftBook(ctx)
	if err != nil {
		return Response{}, err
	}
	pending, ok := book.Peek(req.UserID)
	if !ok {
		return Response{}, rpgerr.NotFound("pending gift")
	}

	receiverRing, err := deps.Store.LoadRing(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	senderRing, err := deps.Store.LoadRing(ctx, pending.SenderID)
	if err != nil {
		return Response{}, err
	}
	if err := book.Accept(receiverRing, senderRing, req.UserID); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, req.UserID, receiverRing); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, pending.SenderID, senderRing); err != nil {
		return Response{}, err
	}
	_ = deps.Store.ClearGiftSentAt(ctx, req.UserID)
	return Response{Text: "gift accepted"}, nil
}

func handleRejectGift(ctx context.Context, deps *Deps, req Request) (Response, error) {
	book, err := deps.Store.LoadGiftBook(ctx)
	if err != nil {
		return Response{}, err
	}
	pending, ok := book.Peek(req.UserID)
	if !ok {
		return Response{}, rpgerr.NotFound("pending gift")
	}
	senderRing, err := deps.Store.LoadRing(ctx, pending.SenderID)
	if err != nil {
		return Response{}, err
	}
	if err := book.Reject(senderRing, req.UserID); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveRing(ctx, pending.SenderID, senderRing); err != nil {
		return Response{}, err
	}
	_ = deps.Store.ClearGiftSentAt(ctx, req.UserID)
	return Response{Text: "gift rejected"}, nil
}

// handleCollectBlessedLand is one of the supplemented "other systems"
// handlers: it delegates to economy.PassiveIncome rather than a bespoke
// blessed-land subsystem, per the tick-since-last-collect idiom shared by
// blessed land, spirit farm, spirit eye, dual cultivation, and check-in.
func handleCollectBlessedLand(ctx context.Context, deps *Deps, req Request) (Response, error) {
	last, rate, err := deps.Store.LoadBlessedLandCollect(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	now := deps.Now()
	const maxAccrual = 24 * 3600
	gold := economy.PassiveIncome(last, now, rate, maxAccrual)

	p, err := deps.Store.LoadPlayer(ctx, req.UserID)
	if err != nil {
		return Response{}, err
	}
	p.Gold += gold
	if err := deps.Store.SavePlayer(ctx, p); err != nil {
		return Response{}, err
	}
	if err := deps.Store.SaveBlessedLandCollect(ctx, req.UserID, now); err != nil {
		return Response{}, err
	}
	return Response{Text: fmt.Sprintf("collected %d gold", gold)}, nil
}

func parseCount(args []string, index int) int {
	if len(args) <= index {
		return 1
	}
	n, err := strconv.Atoi(args[index])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

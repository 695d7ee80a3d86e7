// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/duskveil/pathforge/dice"
	"github.com/duskveil/pathforge/events"
	"github.com/duskveil/pathforge/rpgerr"
)

// Deps bundles the per-dispatch collaborators a Handler needs: the store,
// a roller for anything randomized, a clock function rather than a direct
// time.Now call so tests can supply a fixed instant, and a logger for the
// handful of events worth a structured log line (command outcomes,
// breakthrough deaths, world-boss kills).
type Deps struct {
	Store  Store
	Roller dice.Roller
	Now    func() int64
	Logger *logrus.Entry
	Bus    *events.Bus
}

// Handler resolves a single command against Deps and a Request.
type Handler func(ctx context.Context, deps *Deps, req Request) (Response, error)

// Dispatcher wires every subsystem behind one Dispatch entry point,
// matching the adapter → command → domain-package data flow.
type Dispatcher struct {
	deps     Deps
	handlers map[string]Handler
	sf       singleflight.Group
}

// NewDispatcher constructs a Dispatcher with the full default command
// table registered. A nil logger falls back to a discarded-output entry so
// callers that don't care about logging don't need to construct one.
func NewDispatcher(store Store, roller dice.Roller, now func() int64, logger *logrus.Entry, bus *events.Bus) *Dispatcher {
	if logger == nil {
		l := logrus.New()
		logger = logrus.NewEntry(l)
	}
	if bus == nil {
		bus = events.NewBus()
	}
	d := &Dispatcher{
		deps:     Deps{Store: store, Roller: roller, Now: now, Logger: logger, Bus: bus},
		handlers: make(map[string]Handler),
	}
	d.registerDefaults()
	return d
}

// Register adds or overrides a single command's handler; tests use this to
// substitute a stub for a handler under exercise.
func (d *Dispatcher) Register(command string, h Handler) {
	d.handlers[command] = h
}

// Dispatch resolves req.Command against the registered handler table and
// runs it with this Dispatcher's Deps. Concurrent dispatches that share the
// same user and command collapse onto a single handler invocation via
// singleflight — the case that matters in practice is two copies of a
// double-tapped "finish this activity" command racing each other; the
// second caller gets the first's result instead of double-settling.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	h, ok := d.handlers[req.Command]
	if !ok {
		return Response{}, rpgerr.NotFoundf("unknown command %q", req.Command)
	}

	key := req.UserID + ":" + req.Command
	v, err, shared := d.sf.Do(key, func() (any, error) {
		return h(ctx, &d.deps, req)
	})

	// A fresh correlation id per dispatch, not per singleflight-collapsed
	// call, so two callers sharing a result still get distinct log lines to
	// trace back to their own request.
	entry := d.deps.Logger.WithFields(logrus.Fields{
		"request": uuid.NewString(),
		"user":    req.UserID,
		"command": req.Command,
		"shared":  shared,
	})
	if err != nil {
		entry.WithError(err).Warn("command failed")
		return Response{}, err
	}
	entry.Info("command dispatched")
	return v.(Response), nil
}

func (d *Dispatcher) registerDefaults() {
	d.handlers["info"] = handleInfo
	d.handlers["enter_cultivation"] = handleEnterCultivation
	d.handlers["start_cultivation"] = handleStartCultivation
	d.handlers["end_cultivation"] = handleEndCultivation
	d.handlers["breakthrough"] = handleBreakthrough
	d.handlers["duel"] = handleDuel
	d.handlers["spar"] = handleSpar
	d.handlers["challenge_boss"] = handleChallengeBoss
	d.handlers["store"] = handleStore
	d.handlers["retrieve"] = handleRetrieve
	d.handlers["gift"] = handleGift
	d.handlers["accept_gift"] = handleAcceptGift
	d.handlers["reject_gift"] = handleRejectGift
	d.handlers["collect_blessed_land"] = handleCollectBlessedLand

	d.handlers["start_adventure"] = handleStartAdventure
	d.handlers["adventure_status"] = handleAdventureStatus
	d.handlers["finish_adventure"] = handleFinishAdventure
	d.handlers["rift_list"] = handleRiftList
	d.handlers["enter_rift"] = handleEnterRift
	d.handlers["finish_exploration"] = handleFinishExploration
	d.handlers["exit_rift"] = handleExitRift
	d.handlers["bounty_list"] = handleBountyList
	d.handlers["accept_bounty"] = handleAcceptBounty
	d.handlers["bounty_status"] = handleBountyStatus
	d.handlers["complete_bounty"] = handleCompleteBounty
	d.handlers["abandon_bounty"] = handleAbandonBounty
	d.handlers["use_pill"] = handleUsePill
	d.handlers["show_pills"] = handleShowPills
	d.handlers["learn_skill"] = handleLearnSkill
	d.handlers["equip_skill"] = handleEquipSkill
	d.handlers["unequip_skill"] = handleUnequipSkill
}

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sweeper implements the periodic housekeeping pass described
// alongside the command dispatcher: spawning a new world boss when none is
// alive, expiring bounty activities that ran past their deadline, and
// purging pending gifts older than the configured expiry window. None of
// these are required for correctness — they are housekeeping an operator
// runs on a cadence, not part of any request's critical path.
package sweeper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/duskveil/pathforge/activity"
	"github.com/duskveil/pathforge/command"
	"github.com/duskveil/pathforge/events"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/worldboss"
)

// Sweeper runs the three housekeeping passes concurrently via errgroup,
// mirroring the parallel-fetch pattern the example pack uses for
// independent I/O-bound work. Each pass publishes its outcome onto bus so
// a chat adapter (or anything else) can subscribe without this package
// knowing who's listening.
type Sweeper struct {
	store  command.Store
	bus    *events.Bus
	now    func() int64
	log    *logrus.Entry
	expiry time.Duration
}

// New constructs a Sweeper. A nil logger falls back to a discarded entry.
func New(store command.Store, bus *events.Bus, now func() int64, giftExpiry time.Duration, log *logrus.Entry) *Sweeper {
	if log == nil {
		l := logrus.New()
		log = logrus.NewEntry(l)
	}
	return &Sweeper{store: store, bus: bus, now: now, expiry: giftExpiry, log: log}
}

// Run executes all three passes concurrently and returns the first error,
// if any, canceling the others' shared context.
func (s *Sweeper) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.spawnBossIfAbsent(ctx) })
	g.Go(func() error { return s.expireStaleBounties(ctx) })
	g.Go(func() error { return s.reapPendingGifts(ctx) })
	return g.Wait()
}

func (s *Sweeper) spawnBossIfAbsent(ctx context.Context) error {
	current, err := s.store.LoadBoss(ctx)
	if err != nil {
		current = nil
	}
	if current != nil && current.Alive {
		return nil
	}

	avgExp, err := s.store.AveragePlayerExperience(ctx)
	if err != nil {
		return err
	}
	next := worldboss.SpawnIfAbsent(current, avgExp)
	if next == current {
		return nil
	}
	if err := s.store.SaveBoss(ctx, next); err != nil {
		return err
	}
	s.log.WithField("boss", next.ID).Info("world boss spawned")
	_, maxHP := next.HP()
	return events.Publish(ctx, s.bus, events.RefBossSpawned, events.BossSpawned{
		BossID: next.ID, Name: next.Name, MaxHP: maxHP,
	})
}

func (s *Sweeper) expireStaleBounties(ctx context.Context) error {
	busy, err := s.store.ListPlayersByActivity(ctx, player.KindBounty)
	if err != nil {
		return err
	}
	now := s.now()
	for _, p := range busy {
		deadline, err := activity.Check(p, player.KindBounty)
		if err != nil || now < deadline {
			continue
		}
		bountyID := p.Activity.Payload["bounty_id"]
		activity.Abort(p)
		if err := s.store.SavePlayer(ctx, p); err != nil {
			return err
		}
		s.log.WithField("user", p.UserID).Info("stale bounty expired")
		if err := events.Publish(ctx, s.bus, events.RefBountyExpired, events.BountyExpired{
			UserID: p.UserID, BountyID: bountyID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sweeper) reapPendingGifts(ctx context.Context) error {
	book, err := s.store.LoadGiftBook(ctx)
	if err != nil {
		return err
	}
	sentAt, err := s.store.PendingGiftSentAt(ctx)
	if err != nil {
		return err
	}

	cutoff := s.now() - int64(s.expiry.Seconds())
	var stale []string
	for receiverID, at := range sentAt {
		if at <= cutoff {
			stale = append(stale, receiverID)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	var reaped []events.GiftReaped
	book.ExpireOlderThan(stale, func(senderID, name string, count int) {
		senderRing, err := s.store.LoadRing(ctx, senderID)
		if err != nil {
			return
		}
		_ = senderRing.Store(name, count)
		_ = s.store.SaveRing(ctx, senderID, senderRing)
		reaped = append(reaped, events.GiftReaped{SenderID: senderID, ItemName: name, Count: count})
	})
	for i, receiverID := range stale {
		_ = s.store.ClearGiftSentAt(ctx, receiverID)
		if i < len(reaped) {
			reaped[i].ReceiverID = receiverID
		}
	}
	s.log.WithField("count", len(stale)).Info("pending gifts reaped")
	for _, r := range reaped {
		if err := events.Publish(ctx, s.bus, events.RefGiftReaped, r); err != nil {
			return err
		}
	}
	return nil
}

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package sweeper_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskveil/pathforge/activity"
	"github.com/duskveil/pathforge/command"
	"github.com/duskveil/pathforge/events"
	"github.com/duskveil/pathforge/inventory"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
	"github.com/duskveil/pathforge/stats"
	"github.com/duskveil/pathforge/sweeper"
	"github.com/duskveil/pathforge/worldboss"
)

// fakeStore is a minimal command.Store implementation local to this
// package's tests, covering only what the sweeper's three passes touch.
type fakeStore struct {
	mu         sync.Mutex
	players    map[string]*player.Player
	rings      map[string]*inventory.Ring
	giftBook   *inventory.GiftBook
	giftSentAt map[string]int64
	boss       *worldboss.Boss
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:    make(map[string]*player.Player),
		rings:      make(map[string]*inventory.Ring),
		giftBook:   inventory.NewGiftBook(),
		giftSentAt: make(map[string]int64),
	}
}

func (s *fakeStore) LoadPlayer(_ context.Context, userID string) (*player.Player, error) {
	p, ok := s.players[userID]
	if !ok {
		return nil, rpgerr.NotFoundf("player %q", userID)
	}
	return p, nil
}
func (s *fakeStore) SavePlayer(_ context.Context, p *player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.UserID] = p
	return nil
}
func (s *fakeStore) Catalogs(_ context.Context) (stats.Catalogs, error) { return stats.Catalogs{}, nil }
func (s *fakeStore) WorldCatalogs(_ context.Context) (command.WorldCatalogs, error) {
	return command.WorldCatalogs{}, nil
}
func (s *fakeStore) LoadRing(_ context.Context, userID string) (*inventory.Ring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rings[userID]
	if !ok {
		r = inventory.NewRing(50)
		s.rings[userID] = r
	}
	return r, nil
}
func (s *fakeStore) SaveRing(_ context.Context, userID string, ring *inventory.Ring) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rings[userID] = ring
	return nil
}
func (s *fakeStore) LoadGiftBook(_ context.Context) (*inventory.GiftBook, error) { return s.giftBook, nil }
func (s *fakeStore) LoadBoss(_ context.Context) (*worldboss.Boss, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.boss == nil {
		return nil, rpgerr.NotFound("no boss")
	}
	return s.boss, nil
}
func (s *fakeStore) SaveBoss(_ context.Context, b *worldboss.Boss) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boss = b
	return nil
}
func (s *fakeStore) LoadBlessedLandCollect(_ context.Context, _ string) (int64, float64, error) {
	return 0, 1.0, nil
}
func (s *fakeStore) SaveBlessedLandCollect(_ context.Context, _ string, _ int64) error { return nil }
func (s *fakeStore) ListPlayersByActivity(_ context.Context, kind player.ActivityKind) ([]*player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*player.Player
	for _, p := range s.players {
		if p.Activity.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *fakeStore) AveragePlayerExperience(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.players) == 0 {
		return 0, nil
	}
	total := 0
	for _, p := range s.players {
		total += p.Experience
	}
	return total / len(s.players), nil
}
func (s *fakeStore) RecordGiftSentAt(_ context.Context, receiverID string, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.giftSentAt[receiverID] = at
	return nil
}
func (s *fakeStore) ClearGiftSentAt(_ context.Context, receiverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.giftSentAt, receiverID)
	return nil
}
func (s *fakeStore) PendingGiftSentAt(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.giftSentAt))
	for k, v := range s.giftSentAt {
		out[k] = v
	}
	return out, nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestRun_SpawnsBossWhenNoneAlive(t *testing.T) {
	store := newFakeStore()
	bus := events.NewBus()
	var spawned events.BossSpawned
	events.Subscribe(bus, events.RefBossSpawned, 0, func(_ context.Context, e events.BossSpawned) error {
		spawned = e
		return nil
	})
	sw := sweeper.New(store, bus, func() int64 { return 1000 }, 5*time.Minute, testLogger())

	require.NoError(t, sw.Run(context.Background()))

	boss, err := store.LoadBoss(context.Background())
	require.NoError(t, err)
	assert.True(t, boss.Alive)
	assert.Equal(t, boss.ID, spawned.BossID, "spawn publishes a BossSpawned event")
}

func TestRun_ExpiresStaleBounty(t *testing.T) {
	store := newFakeStore()
	bus := events.NewBus()
	p := player.New("u1", player.PathSpirit)
	require.NoError(t, activity.Start(p, player.KindBounty, 1000, 60, map[string]string{"bounty_id": "b1"}))
	require.NoError(t, store.SavePlayer(context.Background(), p))

	sw := sweeper.New(store, bus, func() int64 { return 1000 + 120 }, 5*time.Minute, testLogger())
	require.NoError(t, sw.Run(context.Background()))

	reloaded, err := store.LoadPlayer(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, player.KindNone, reloaded.Activity.Kind)
}

func TestRun_ReapsStaleGiftBackToSender(t *testing.T) {
	store := newFakeStore()
	bus := events.NewBus()
	senderRing, err := store.LoadRing(context.Background(), "sender")
	require.NoError(t, err)
	require.NoError(t, senderRing.Store("pill", 2))
	require.NoError(t, store.SaveRing(context.Background(), "sender", senderRing))

	book, err := store.LoadGiftBook(context.Background())
	require.NoError(t, err)
	require.NoError(t, book.Gift(senderRing, "sender", "receiver", "pill", 2))
	require.NoError(t, store.SaveRing(context.Background(), "sender", senderRing))
	require.NoError(t, store.RecordGiftSentAt(context.Background(), "receiver", 1000))

	sw := sweeper.New(store, bus, func() int64 { return 1000 + 600 }, 5*time.Minute, testLogger())
	require.NoError(t, sw.Run(context.Background()))

	reclaimed, err := store.LoadRing(context.Background(), "sender")
	require.NoError(t, err)
	assert.Equal(t, 2, reclaimed.Count("pill"))

	_, stillPending := book.Peek("receiver")
	assert.False(t, stillPending)
}

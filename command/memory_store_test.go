// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package command

import (
	"context"
	"sync"

	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/inventory"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
	"github.com/duskveil/pathforge/stats"
	"github.com/duskveil/pathforge/worldboss"
)

// memoryStore is an in-process Store used only by this package's own tests
// and by the dispatcher tests in this package; it exercises the Dispatcher's
// wiring without a real database behind it.
type memoryStore struct {
	mu sync.Mutex

	players    map[string]*player.Player
	rings      map[string]*inventory.Ring
	giftBook   *inventory.GiftBook
	boss       *worldboss.Boss
	catalogs   stats.Catalogs
	blessed    map[string]blessedLandEntry
	giftSentAt map[string]int64
}

type blessedLandEntry struct {
	lastCollectUnix int64
	rate            float64
}

func newMemoryStore(cat stats.Catalogs) *memoryStore {
	return &memoryStore{
		players:  make(map[string]*player.Player),
		rings:    make(map[string]*inventory.Ring),
		giftBook: inventory.NewGiftBook(),
		catalogs:   cat,
		blessed:    make(map[string]blessedLandEntry),
		giftSentAt: make(map[string]int64),
	}
}

func (s *memoryStore) LoadPlayer(_ context.Context, userID string) (*player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[userID]
	if !ok {
		return nil, rpgerr.NotFoundf("player %q", userID)
	}
	return p, nil
}

func (s *memoryStore) SavePlayer(_ context.Context, p *player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.UserID] = p
	return nil
}

func (s *memoryStore) Catalogs(_ context.Context) (stats.Catalogs, error) {
	return s.catalogs, nil
}

func (s *memoryStore) WorldCatalogs(_ context.Context) (WorldCatalogs, error) {
	return WorldCatalogs{
		Bounties: catalog.MemoryBounties{
			"b1": {ID: "b1", Name: "Wolf Pelts", RewardGold: 50, RewardExp: 20, ExpirySeconds: 3600},
		},
		Routes: catalog.MemoryRoutes{
			"r1": {ID: "r1", Name: "Misty Valley", DurationSeconds: 600, BaseRatePerMin: 2.0},
		},
		Rifts: catalog.MemoryRifts{
			"rift1": {ID: "rift1", Name: "Shattered Abyss", DurationSeconds: 600, BaseRatePerMin: 3.0},
		},
		Pills:  catalog.MemoryPills{},
		Skills: s.catalogs.Skills,
	}, nil
}

func (s *memoryStore) LoadRing(_ context.Context, userID string) (*inventory.Ring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rings[userID]
	if !ok {
		r = inventory.NewRing(50)
		s.rings[userID] = r
	}
	return r, nil
}

func (s *memoryStore) SaveRing(_ context.Context, userID string, ring *inventory.Ring) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rings[userID] = ring
	return nil
}

func (s *memoryStore) LoadGiftBook(_ context.Context) (*inventory.GiftBook, error) {
	return s.giftBook, nil
}

func (s *memoryStore) LoadBoss(_ context.Context) (*worldboss.Boss, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.boss == nil {
		return nil, rpgerr.NotFound("no world boss is currently active")
	}
	return s.boss, nil
}

func (s *memoryStore) SaveBoss(_ context.Context, b *worldboss.Boss) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boss = b
	return nil
}

func (s *memoryStore) LoadBlessedLandCollect(_ context.Context, userID string) (int64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blessed[userID]
	if !ok {
		return 0, 1.0, nil
	}
	return e.lastCollectUnix, e.rate, nil
}

func (s *memoryStore) SaveBlessedLandCollect(_ context.Context, userID string, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.blessed[userID]
	e.lastCollectUnix = at
	if e.rate == 0 {
		e.rate = 1.0
	}
	s.blessed[userID] = e
	return nil
}

func (s *memoryStore) ListPlayersByActivity(_ context.Context, kind player.ActivityKind) ([]*player.Player, error) {
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

func (s *memoryStore) AveragePlayerExperience(_ context.Context) (int, error) {
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

func (s *memoryStore) RecordGiftSentAt(_ context.Context, receiverID string, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.giftSentAt[receiverID] = at
	return nil
}

func (s *memoryStore) ClearGiftSentAt(_ context.Context, receiverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.giftSentAt, receiverID)
	return nil
}

func (s *memoryStore) PendingGiftSentAt(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.giftSentAt))
	for k, v := range s.giftSentAt {
		out[k] = v
	}
	return out, nil
}

var _ Store = (*memoryStore)(nil)

func testCatalogs() stats.Catalogs {
	return stats.Catalogs{
		Realms: catalog.MemoryRealmTable{
			{Name: "Qi Condensation", BaseHP: 100, BaseMP: 50, BaseSuccessRate: 1.0},
			{Name: "Foundation Establishment", BaseHP: 200, BaseMP: 100, BaseSuccessRate: 1.0},
		},
		Items:      catalog.MemoryItems{},
		Techniques: catalog.MemoryTechniques{},
		Skills:     catalog.MemorySkills{},
	}
}

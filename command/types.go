// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package command implements the external command surface: a single
// Dispatcher that wires every subsystem (combat, progression, activity,
// inventory, economy, worldboss) behind Dispatch(ctx, Request). Store and
// Adapter are the two external-collaborator interfaces — persistence and
// the chat-platform adapter — and are specified, not implemented, here.
package command

import (
	"context"

	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/inventory"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/stats"
	"github.com/duskveil/pathforge/worldboss"
)

// WorldCatalogs bundles the read-only catalogs the bounty/adventure/rift/
// pill command handlers resolve against, kept separate from stats.Catalogs
// since those four have nothing to do with stats composition.
type WorldCatalogs struct {
	Bounties catalog.BountyCatalog
	Routes   catalog.AdventureRouteCatalog
	Rifts    catalog.RiftCatalog
	Pills    catalog.PillCatalog
	Skills   catalog.SkillCatalog
}

// Request is one command invocation as received from the adapter.
type Request struct {
	UserID         string
	DisplayName    string
	Command        string
	Arguments      []string
	MessageContext map[string]string
}

// Response is a plain text block; clients may render monospaced formatting.
type Response struct {
	Text string
}

// Store is the persistence collaborator. Every method takes the context so
// a real implementation can run it as part of a transaction that commits
// atomically with the caller's per-user critical section.
type Store interface {
	LoadPlayer(ctx context.Context, userID string) (*player.Player, error)
	SavePlayer(ctx context.Context, p *player.Player) error

	Catalogs(ctx context.Context) (stats.Catalogs, error)
	WorldCatalogs(ctx context.Context) (WorldCatalogs, error)

	LoadRing(ctx context.Context, userID string) (*inventory.Ring, error)
	SaveRing(ctx context.Context, userID string, ring *inventory.Ring) error

	LoadGiftBook(ctx context.Context) (*inventory.GiftBook, error)

	LoadBoss(ctx context.Context) (*worldboss.Boss, error)
	SaveBoss(ctx context.Context, b *worldboss.Boss) error

	// LoadBlessedLandCollect and SaveBlessedLandCollect back the
	// tick-since-last-collect passive income features.
	LoadBlessedLandCollect(ctx context.Context, userID string) (lastCollectUnix int64, rate float64, err error)
	SaveBlessedLandCollect(ctx context.Context, userID string, at int64) error

	// ListPlayersByActivity and AveragePlayerExperience back the periodic
	// sweeper's stale-bounty pass and world-boss auto-sizing spawn check.
	ListPlayersByActivity(ctx context.Context, kind player.ActivityKind) ([]*player.Player, error)
	AveragePlayerExperience(ctx context.Context) (int, error)

	// RecordGiftSentAt, ClearGiftSentAt, and PendingGiftSentAt back the
	// sweeper's stale-gift reaping pass; PendingGift itself carries no
	// timestamp, so the store tracks gift age externally.
	RecordGiftSentAt(ctx context.Context, receiverID string, at int64) error
	ClearGiftSentAt(ctx context.Context, receiverID string) error
	PendingGiftSentAt(ctx context.Context) (map[string]int64, error)
}

// Adapter is the chat-platform collaborator a real deployment uses to
// deliver a Response back to the user who issued the Request.
type Adapter interface {
	Send(ctx context.Context, userID string, resp Response) error
}

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the handful of process-wide tunables this module
// needs from the environment: the RNG seed override, the periodic
// sweeper's cadence, the gift expiry window, and the duel/spar cooldowns.
// The static game data (realm table, item/skill/technique catalogs) is
// explicitly out of scope here — it is injected through the catalog
// interfaces by the host application, not loaded by this package.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved set of process-wide tunables.
type Config struct {
	// RNGSeed seeds the production dice roller. Zero means "use a random
	// seed," set only for reproducing a reported bug.
	RNGSeed uint64

	// SweeperInterval is how often the periodic sweeper runs its pass over
	// world boss spawning, stale bounty expiry, and pending-gift reaping.
	SweeperInterval time.Duration

	// GiftExpiry is how long an unaccepted gift sits in a GiftBook before
	// the sweeper reaps it back to the sender.
	GiftExpiry time.Duration

	DuelCooldown time.Duration
	SparCooldown time.Duration
}

// Default returns the tunables a fresh deployment runs with absent any
// environment overrides.
func Default() Config {
	return Config{
		RNGSeed:         0,
		SweeperInterval: 5 * time.Minute,
		GiftExpiry:      5 * time.Minute,
		DuelCooldown:    300 * time.Second,
		SparCooldown:    60 * time.Second,
	}
}

// Load reads envFile (if present — a missing file is not an error, it just
// means the process environment is used as-is) and then resolves Config
// from environment variables, falling back to Default for anything unset
// or unparsable.
func Load(envFile string) Config {
	_ = godotenv.Load(envFile)

	cfg := Default()
	cfg.RNGSeed = getEnvUint64("RNG_SEED", cfg.RNGSeed)
	cfg.SweeperInterval = getEnvDuration("SWEEPER_INTERVAL_SECS", cfg.SweeperInterval)
	cfg.GiftExpiry = getEnvDuration("GIFT_EXPIRY_SECS", cfg.GiftExpiry)
	cfg.DuelCooldown = getEnvDuration("DUEL_COOLDOWN_SECS", cfg.DuelCooldown)
	cfg.SparCooldown = getEnvDuration("SPAR_COOLDOWN_SECS", cfg.SparCooldown)
	return cfg
}

func getEnvUint64(key string, fallback uint64) uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// getEnvDuration reads key as a count of seconds, matching the other
// example repos' convention of suffixing env var names with _SECS rather
// than accepting a Go duration string.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

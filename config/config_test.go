// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/duskveil/pathforge/config"
)

func TestLoad_FallsBackToDefaultsWhenUnset(t *testing.T) {
	cfg := config.Load("testdata/nonexistent.env")
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_ReadsEnvOverrides(t *testing.T) {
	t.Setenv("RNG_SEED", "42")
	t.Setenv("DUEL_COOLDOWN_SECS", "120")
	t.Setenv("SPAR_COOLDOWN_SECS", "not-a-number")

	cfg := config.Load("testdata/nonexistent.env")
	assert.Equal(t, uint64(42), cfg.RNGSeed)
	assert.Equal(t, 120*time.Second, cfg.DuelCooldown)
	assert.Equal(t, config.Default().SparCooldown, cfg.SparCooldown, "unparsable override falls back to default")
}

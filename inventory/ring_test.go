// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskveil/pathforge/inventory"
)

func TestRing_StoreRetrieveRoundTrip(t *testing.T) {
	ring := inventory.NewRing(10)

	require.NoError(t, ring.Store("spirit_stone", 5))
	assert.Equal(t, 5, ring.Count("spirit_stone"))

	require.NoError(t, ring.Retrieve("spirit_stone", 5))
	assert.Equal(t, 0, ring.Count("spirit_stone"))
	assert.False(t, ring.Has("spirit_stone", 1))
}

func TestRing_CapacityExceededOnlyForNewItems(t *testing.T) {
	ring := inventory.NewRing(1)
	require.NoError(t, ring.Store("spirit_stone", 1))

	// Existing stack grows without capacity pressure.
	require.NoError(t, ring.Store("spirit_stone", 100))
	assert.Equal(t, 101, ring.Count("spirit_stone"))

	// A new distinct item exceeds capacity.
	err := ring.Store("jade_blade", 1)
	assert.Error(t, err)
}

func TestRing_RetrieveInsufficient(t *testing.T) {
	ring := inventory.NewRing(5)
	require.NoError(t, ring.Store("herb", 2))

	err := ring.Retrieve("herb", 5)
	assert.Error(t, err)
	assert.Equal(t, 2, ring.Count("herb"), "failed retrieve must not mutate the stack")
}

func TestRing_Upgrade(t *testing.T) {
	ring := inventory.NewRing(10)
	require.NoError(t, ring.Upgrade(20))
	assert.Equal(t, 20, ring.Capacity)

	assert.Error(t, ring.Upgrade(20), "must strictly exceed current capacity")
	assert.Error(t, ring.Upgrade(5))
}

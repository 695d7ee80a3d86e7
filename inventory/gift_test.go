// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskveil/pathforge/inventory"
)

// TestGift_RejectRestoresSender covers scenario 5 of the testable properties:
// A gifts B a unique weapon, B rejects, A's ring restores the item and the
// pending gift is cleared.
func TestGift_RejectRestoresSender(t *testing.T) {
	book := inventory.NewGiftBook()
	senderRing := inventory.NewRing(10)
	require.NoError(t, senderRing.Store("unique_weapon", 1))

	require.NoError(t, book.Gift(senderRing, "A", "B", "unique_weapon", 1))
	assert.False(t, senderRing.Has("unique_weapon", 1))
	_, pending := book.Peek("B")
	assert.True(t, pending)

	require.NoError(t, book.Reject(senderRing, "B"))
	assert.True(t, senderRing.Has("unique_weapon", 1))
	_, pending = book.Peek("B")
	assert.False(t, pending)
}

// TestGift_AcceptFailsWhenReceiverFull continues scenario 5: accept fails
// when B's ring is full, B's pending entry is cleared, and A's ring
// restores the item.
func TestGift_AcceptFailsWhenReceiverFull(t *testing.T) {
	book := inventory.NewGiftBook()
	senderRing := inventory.NewRing(10)
	receiverRing := inventory.NewRing(1)
	require.NoError(t, receiverRing.Store("existing_item", 1))
	require.NoError(t, senderRing.Store("unique_weapon", 1))

	require.NoError(t, book.Gift(senderRing, "A", "B", "unique_weapon", 1))

	err := book.Accept(receiverRing, senderRing, "B")
	assert.Error(t, err)
	assert.True(t, senderRing.Has("unique_weapon", 1))
	_, pending := book.Peek("B")
	assert.False(t, pending)
}

func TestGift_AcceptSucceeds(t *testing.T) {
	book := inventory.NewGiftBook()
	senderRing := inventory.NewRing(10)
	receiverRing := inventory.NewRing(10)
	require.NoError(t, senderRing.Store("unique_weapon", 1))

	require.NoError(t, book.Gift(senderRing, "A", "B", "unique_weapon", 1))
	require.NoError(t, book.Accept(receiverRing, senderRing, "B"))

	assert.True(t, receiverRing.Has("unique_weapon", 1))
	assert.False(t, senderRing.Has("unique_weapon", 1))
}

func TestGift_CannotGiftSelf(t *testing.T) {
	book := inventory.NewGiftBook()
	senderRing := inventory.NewRing(10)
	require.NoError(t, senderRing.Store("item", 1))

	err := book.Gift(senderRing, "A", "A", "item", 1)
	assert.Error(t, err)
	assert.True(t, senderRing.Has("item", 1))
}

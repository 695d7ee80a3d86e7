// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory

import "github.com/duskveil/pathforge/rpgerr"

// PendingGift records a gift in transit: retrieved from the sender's ring,
// not yet stored into the receiver's. Held only in process memory per the
// documented limitation — a restart drops in-flight gifts.
type PendingGift struct {
	SenderID   string
	ReceiverID string
	ItemName   string
	Count      int
}

// GiftBook tracks pending gifts keyed by receiver id. The only invariant it
// must uphold is that a pending gift is never simultaneously in the
// sender's ring.
type GiftBook struct {
	pending map[string]PendingGift
}

// NewGiftBook creates an empty gift book.
func NewGiftBook() *GiftBook {
	return &GiftBook{pending: make(map[string]PendingGift)}
}

// Gift retrieves name from sender's ring and records a pending gift for
// receiverID. Step 1 of the two-step protocol.
func (g *GiftBook) Gift(senderRing *Ring, senderID, receiverID, name string, count int) error {
	if senderID == receiverID {
		return rpgerr.New(rpgerr.CodeConflictingState, "cannot gift to yourself")
	}
	if _, exists := g.pending[receiverID]; exists {
		return rpgerr.New(rpgerr.CodeConflictingState, "receiver already has a pending gift")
	}
	if err := senderRing.Retrieve(name, count); err != nil {
		return err
	}
	g.pending[receiverID] = PendingGift{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ItemName:   name,
		Count:      count,
	}
	return nil
}

// Accept stores the pending gift into receiverRing. On capacity failure the
// item is restored to the sender's ring and the error propagated; either
// way the pending entry is cleared.
func (g *GiftBook) Accept(receiverRing, senderRing *Ring, receiverID string) error {
	gift, ok := g.pending[receiverID]
	if !ok {
		return rpgerr.NotFound("pending gift")
	}
	delete(g.pending, receiverID)

	if err := receiverRing.Store(gift.ItemName, gift.Count); err != nil {
		_ = senderRing.Store(gift.ItemName, gift.Count)
		return err
	}
	return nil
}

// Reject restores the pending gift to the sender's ring and clears it.
func (g *GiftBook) Reject(senderRing *Ring, receiverID string) error {
	gift, ok := g.pending[receiverID]
	if !ok {
		return rpgerr.NotFound("pending gift")
	}
	delete(g.pending, receiverID)
	return senderRing.Store(gift.ItemName, gift.Count)
}

// Peek reports the pending gift for receiverID, if any.
func (g *GiftBook) Peek(receiverID string) (PendingGift, bool) {
	gift, ok := g.pending[receiverID]
	return gift, ok
}

// ExpireOlderThan removes the pending gifts addressed to receiverIDs and
// hands each one to restore — used by the periodic sweeper's 5-minute gift
// reaping pass. It takes no cutoff of its own: since
// PendingGift does not itself carry a timestamp, callers track gift age by
// receiverID externally and pass the set of ids to drop; ExpireOlderThan is
// a thin convenience over that removal so the sweeper has one call site.
func (g *GiftBook) ExpireOlderThan(receiverIDs []string, restore func(senderID, name string, count int)) {
	for _, id := range receiverIDs {
		gift, ok := g.pending[id]
		if !ok {
			continue
		}
		delete(g.pending, id)
		if restore != nil {
			restore(gift.SenderID, gift.ItemName, gift.Count)
		}
	}
}

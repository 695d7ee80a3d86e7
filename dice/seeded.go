// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dice

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// SeededRoller implements Roller using a seeded PRNG. Unlike CryptoRoller,
// two SeededRollers constructed with the same seed produce identical
// sequences — breakthrough attempts, loot rolls, and combat tests that need
// to assert on an exact outcome use this instead of the crypto roller.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a roller seeded deterministically from seed.
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Roll returns a random number from 1 to size (inclusive).
func (s *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("dice: invalid die size %d", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size.
func (s *SeededRoller) RollN(count, size int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dice: invalid die size %d", size)
	}
	if count < 0 {
		return nil, fmt.Errorf("dice: invalid die count %d", count)
	}

	results := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

// Chance rolls a d100 and reports whether the result falls within the given
// percent chance (1-100). Percent values at or below 0 always fail and at
// or above 100 always succeed without rolling.
func (s *SeededRoller) Chance(percent int) (bool, error) {
	if percent <= 0 {
		return false, nil
	}
	if percent >= 100 {
		return true, nil
	}
	roll, err := s.Roll(100)
	if err != nil {
		return false, err
	}
	return roll <= percent, nil
}

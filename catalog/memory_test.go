// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskveil/pathforge/catalog"
)

func TestMemoryRealmTable(t *testing.T) {
	table := catalog.MemoryRealmTable{
		{Name: "Qi Condensation", RequiredExperience: 0, BaseSuccessRate: 1.0},
		{Name: "Foundation Establishment", RequiredExperience: 1000, BaseSuccessRate: 0.8},
	}

	assert.Equal(t, 2, table.Len())

	entry, err := table.Entry(1)
	assert.NoError(t, err)
	assert.Equal(t, "Foundation Establishment", entry.Name)

	_, err = table.Entry(5)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = table.Entry(-1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMemorySkills(t *testing.T) {
	skills := catalog.MemorySkills{
		"freeze": {ID: "freeze", Name: "Freeze", DamageKind: catalog.DamageMagic, MPCost: 10},
	}

	got, err := skills.Skill("freeze")
	assert.NoError(t, err)
	assert.Equal(t, "Freeze", got.Name)

	_, err = skills.Skill("unknown")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMemoryBountiesList(t *testing.T) {
	bounties := catalog.MemoryBounties{
		"b1": {ID: "b1", Name: "Slay the Wolves", RewardGold: 100},
		"b2": {ID: "b2", Name: "Clear the Mine", RewardGold: 200},
	}

	list := bounties.List()
	assert.Len(t, list, 2)

	_, err := bounties.Bounty("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

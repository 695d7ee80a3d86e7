// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory

import (
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/core"
	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/rpgerr"
)

// slotFor maps a catalog item type to the equipment slot it occupies.
// Pills and materials have no slot at all.
func slotFor(t catalog.ItemType) (player.EquipmentSlot, bool) {
	switch t {
	case catalog.ItemWeapon:
		return player.SlotWeapon, true
	case catalog.ItemArmor:
		return player.SlotArmor, true
	case catalog.ItemMainTechnique:
		return player.SlotMainTechnique, true
	case catalog.ItemStorageRing:
		return player.SlotStorageRing, true
	default:
		return "", false
	}
}

// Equip moves itemID from the ring into the matching equipment slot,
// failing if the slot is occupied, the item has no slot, or the player's
// realm is below the item's requirement.
func Equip(p *player.Player, ring *Ring, items catalog.ItemCatalog, itemID string) error {
	def, err := items.Item(itemID)
	if err != nil {
		return rpgerr.NotFoundf("item %q", itemID)
	}

	slot, ok := slotFor(def.Type)
	if !ok {
		return core.NewEquipmentError("equip", p.UserID, itemID, "", core.ErrNotEquippable)
	}

	if p.RealmIndex < def.RealmRequirement {
		return core.NewEquipmentError("equip", p.UserID, itemID, string(slot), core.ErrRealmTooLow)
	}

	if current := equippedID(p, slot); current != "" {
		return core.NewEquipmentError("equip", p.UserID, itemID, string(slot), core.ErrSlotOccupied)
	}

	if !ring.Has(itemID, 1) {
		return rpgerr.ResourceExhaustedf("item %q", itemID)
	}
	if err := ring.Retrieve(itemID, 1); err != nil {
		return err
	}

	setEquipped(p, slot, itemID)
	return nil
}

// Unequip moves whatever item occupies slot back into the ring.
func Unequip(p *player.Player, ring *Ring, slot player.EquipmentSlot) error {
	current := equippedID(p, slot)
	if current == "" {
		return core.NewEquipmentError("unequip", p.UserID, "", string(slot), core.ErrSlotEmpty)
	}
	if err := ring.Store(current, 1); err != nil {
		return err
	}
	setEquipped(p, slot, "")
	return nil
}

func equippedID(p *player.Player, slot player.EquipmentSlot) string {
	switch slot {
	case player.SlotWeapon:
		return p.EquippedWeapon
	case player.SlotArmor:
		return p.EquippedArmor
	case player.SlotMainTechnique:
		return p.EquippedMainTechnique
	case player.SlotStorageRing:
		return p.EquippedStorageRing
	default:
		return ""
	}
}

func setEquipped(p *player.Player, slot player.EquipmentSlot, itemID string) {
	switch slot {
	case player.SlotWeapon:
		p.EquippedWeapon = itemID
	case player.SlotArmor:
		p.EquippedArmor = itemID
	case player.SlotMainTechnique:
		p.EquippedMainTechnique = itemID
	case player.SlotStorageRing:
		p.EquippedStorageRing = itemID
	}
}

// UpgradeRing resolves newRingItemID through the catalog and upgrades ring
// to its capacity, per the "only accepted if strictly greater" rule.
func UpgradeRing(ring *Ring, items catalog.ItemCatalog, newRingItemID string) error {
	def, err := items.Item(newRingItemID)
	if err != nil {
		return rpgerr.NotFoundf("item %q", newRingItemID)
	}
	if def.Type != catalog.ItemStorageRing {
		return core.NewEquipmentError("upgrade_ring", "", newRingItemID, string(player.SlotStorageRing), core.ErrIncompatibleSlot)
	}
	return ring.Upgrade(def.RingCapacity)
}

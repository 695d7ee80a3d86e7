// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package player

import "github.com/duskveil/pathforge/rpgerr"

// PurgeExpiredEffects removes every active_temporary_effects entry whose
// expiry has passed as of now. This is the system's only garbage-collection
// sweep, co-scheduled with stats composition and pill-list display per the
// activity scheduler's purge rule.
func (p *Player) PurgeExpiredEffects(now int64) {
	if len(p.ActiveTemporaryEffects) == 0 {
		return
	}
	kept := p.ActiveTemporaryEffects[:0]
	for _, eff := range p.ActiveTemporaryEffects {
		if eff.ExpiryUnix > now {
			kept = append(kept, eff)
		}
	}
	p.ActiveTemporaryEffects = kept
}

// ConsumePill removes one unit of the named pill from pill_inventory.
func (p *Player) ConsumePill(name string) error {
	if p.PillInventory[name] <= 0 {
		return rpgerr.ResourceExhaustedf("pill %q", name)
	}
	p.PillInventory[name]--
	if p.PillInventory[name] == 0 {
		delete(p.PillInventory, name)
	}
	return nil
}

// GrantPermanentGain adds a permanent gain to attribute, clamped at ceiling.
// Both percent and flat permanent pill gains go through this, bounded by the
// per-attribute ceiling named in §3.1.
func (p *Player) GrantPermanentGain(attribute string, amount, ceiling float64) float64 {
	if p.PermanentPillGains == nil {
		p.PermanentPillGains = make(map[string]float64)
	}
	current := p.PermanentPillGains[attribute]
	next := current + amount
	if next > ceiling {
		next = ceiling
	}
	p.PermanentPillGains[attribute] = next
	return next - current
}

// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"math"

	"github.com/duskveil/pathforge/player"
	"github.com/duskveil/pathforge/stats"
)

// ImpartPercent is the fixed attack-percent share an impart_pk winner
// passes on to the loser's permanent-gain accumulator. The source calls
// this a "trade" without giving a magnitude; this value is a documented
// interpretive choice, not a derived formula.
const ImpartPercent = 0.05

// ImpartCeiling bounds how large the permanent-gain accumulator fed by
// impart challenges is allowed to grow, independent of other gain sources.
const ImpartCeiling = 1.0

// Propagate writes a battle's final snapshot back onto the persisted
// Player it belongs to, following the propagation rule for kind: duel and
// boss write hp back as max(1, round(maxHP*ratio)); spar and impart_pk
// leave hp untouched and only refill mp.
func Propagate(p *player.Player, final stats.CombatStats, kind Kind) {
	p.MP = final.MP

	switch kind {
	case KindDuel, KindBoss:
		ratio := 0.0
		if final.MaxHP > 0 {
			ratio = float64(final.HP) / float64(final.MaxHP)
		}
		p.HP = int(math.Max(1, math.Round(float64(p.MaxHP)*ratio)))
	case KindSpar, KindImpartPK:
		// hp is never written back; the surrendered 0 in final.HP only
		// exists inside the battle snapshot.
	}
}

// SettleImpart applies the winner side of an impart_pk result onto the
// loser's permanent-gain accumulator. Nothing is granted for a draw or for
// a battle that ended at the round cap, even when the round cap named a
// winner on hp ratio.
func SettleImpart(loser *player.Player, result *Result) {
	if result.Draw || result.Reason == "round_limit" {
		return
	}
	loser.GrantPermanentGain("physical_attack_percent", ImpartPercent, ImpartCeiling)
}

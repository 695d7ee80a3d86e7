// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"fmt"
	"math"

	"github.com/duskveil/pathforge/dice"
	"github.com/duskveil/pathforge/stats"
)

// Kind selects which propagation and surrender rules a battle follows.
type Kind string

const (
	// KindSpar is a non-lethal exhibition match: surrenders at 20% hp, only
	// mp is refilled on the persisted character afterward.
	KindSpar Kind = "spar"
	// KindDuel writes hp back to both sides as max(1, round(maxHP*ratio)).
	KindDuel Kind = "duel"
	// KindBoss pits a player against a shared world boss combatant.
	KindBoss Kind = "boss"
	// KindImpartPK is a sparring variant whose result carries an
	// attack-percent share that SettleImpart grants to the loser; like a
	// spar, it does not write hp back.
	KindImpartPK Kind = "impart_pk"
)

// MaxRounds bounds a battle so a stalemate always terminates.
const MaxRounds = 50

// SparSurrenderThreshold is the hp fraction at or below which a spar ends
// in a surrender rather than running to a kill.
const SparSurrenderThreshold = 0.20

// Result is the outcome of a single Resolve call.
type Result struct {
	WinnerID string
	LoserID  string
	Draw     bool
	Reason   string

	P1Final stats.CombatStats
	P2Final stats.CombatStats

	Rounds int
	Log    []string

	// ImpartPercent is only populated for a KindImpartPK result that is not
	// a draw: the attack-percent share SettleImpart grants to the loser.
	ImpartPercent float64
}

// Resolve runs a full battle between two combatants to completion (a kill,
// a surrender, or the round cap) and returns the final snapshot of both
// sides plus a human-readable log. p1 and p2 are copied; callers' stats
// are never mutated by Resolve.
func Resolve(roller dice.Roller, kind Kind, p1, p2 stats.CombatStats) *Result {
	a := cloneStats(p1)
	b := cloneStats(p2)
	res := &Result{}

	for round := 1; round <= MaxRounds; round++ {
		res.Rounds = round

		if died := applyDoT(&a, &res.Log); died {
			return finish(res, &a, &b, b.ID, a.ID, "dot", kind)
		}
		if died := applyDoT(&b, &res.Log); died {
			return finish(res, &a, &b, a.ID, b.ID, "dot", kind)
		}

		decrementDurations(&a)
		decrementDurations(&b)

		first, second := orderActors(roller, &a, &b)

		if done, r := actAndCheck(roller, kind, &a, &b, first, second, res); done {
			return r
		}
		if done, r := actAndCheck(roller, kind, &a, &b, second, first, res); done {
			return r
		}

		tickCooldowns(&a)
		tickCooldowns(&b)
	}

	ratioA, ratioB := 0.0, 0.0
	if a.MaxHP > 0 {
		ratioA = float64(a.HP) / float64(a.MaxHP)
	}
	if b.MaxHP > 0 {
		ratioB = float64(b.HP) / float64(b.MaxHP)
	}
	switch {
	case ratioA > ratioB:
		return finish(res, &a, &b, a.ID, b.ID, "round_limit", kind)
	case ratioB > ratioA:
		return finish(res, &a, &b, b.ID, a.ID, "round_limit", kind)
	}
	return finish(res, &a, &b, "", "", "round_limit", kind)
}

func cloneStats(c stats.CombatStats) stats.CombatStats {
	clone := c
	clone.Skills = append([]stats.ResolvedSkill(nil), c.Skills...)
	clone.Buffs = append([]stats.Effect(nil), c.Buffs...)
	clone.Debuffs = append([]stats.Effect(nil), c.Debuffs...)
	clone.SkillCooldowns = make(map[string]int, len(c.SkillCooldowns))
	for k, v := range c.SkillCooldowns {
		clone.SkillCooldowns[k] = v
	}
	return clone
}

// orderActors returns the two combatants in turn order: higher effective
// speed first, a coin flip breaking an exact tie.
func orderActors(roller dice.Roller, a, b *stats.CombatStats) (first, second *stats.CombatStats) {
	speedA := computeEffective(a).Speed
	speedB := computeEffective(b).Speed
	if speedA > speedB {
		return a, b
	}
	if speedB > speedA {
		return b, a
	}
	win, _ := roller.Roll(2)
	if win == 1 {
		return a, b
	}
	return b, a
}

// actAndCheck lets actor act against opponent, then checks for a battle-
// ending condition (death or spar surrender). It reports whether the
// battle is over and, if so, the finished Result.
func actAndCheck(roller dice.Roller, kind Kind, a, b, actor, opponent *stats.CombatStats, res *Result) (bool, *Result) {
	if actor.HP <= 0 {
		return false, nil
	}
	act(roller, actor, opponent, res)

	if opponent.HP <= 0 {
		res.Log = append(res.Log, logf("%s was defeated", opponent.ID))
		return true, finish(res, a, b, actor.ID, opponent.ID, "kill", kind)
	}
	if kind == KindSpar || kind == KindImpartPK {
		if float64(opponent.HP) <= SparSurrenderThreshold*float64(opponent.MaxHP) {
			res.Log = append(res.Log, logf("%s surrenders", opponent.ID))
			opponent.HP = 0
			return true, finish(res, a, b, actor.ID, opponent.ID, "surrender", kind)
		}
	}
	return false, nil
}

// act resolves a single combatant's turn: immobilize check, confusion
// self-strike, then a skill-or-normal-attack choice against opponent.
func act(roller dice.Roller, actor, opponent *stats.CombatStats, res *Result) {
	for _, e := range actor.Debuffs {
		if isImmobilize(e.Kind) {
			res.Log = append(res.Log, logf("%s is %s and cannot act", actor.ID, e.Kind))
			return
		}
	}
	if sumEffectValues(actor.Debuffs, KindConfusion) > 0 {
		if chance(roller, clampF(sumEffectValues(actor.Debuffs, KindConfusion), 0, 1)) {
			eff := computeEffective(actor)
			dmg := applyDamage(actor, int(0.30*float64(eff.PhysicalAttack)))
			res.Log = append(res.Log, logf("%s is confused and strikes itself for %d", actor.ID, dmg))
			return
		}
	}

	skill := chooseSkill(actor)
	if skill != nil {
		castSkill(roller, actor, opponent, *skill, res)
		return
	}
	normalAttack(roller, actor, opponent, res)
}

// chooseSkill picks the highest-scoring off-cooldown, affordable skill, or
// nil if a normal attack should be used instead.
func chooseSkill(actor *stats.CombatStats) *stats.ResolvedSkill {
	var best *stats.ResolvedSkill
	var bestScore float64
	eff := computeEffective(actor)
	for i := range actor.Skills {
		s := &actor.Skills[i]
		if actor.MP < s.MPCost {
			continue
		}
		if actor.SkillCooldowns[s.ID] > 0 {
			continue
		}
		atk := float64(eff.PhysicalAttack)
		if s.DamageKind == "magic" {
			atk = float64(eff.MagicAttack)
		}
		score := float64(s.BaseDamage) + s.AttackRatio*atk
		if best == nil || score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best
}

// hitProbability clamps hit_rate-dodge_rate to the bounds a combatant's
// chance to land a hit is guaranteed to fall within: even a heavily
// outclassed attacker connects 30% of the time, and even an overwhelming
// one misses 5% of the time.
func hitProbability(hitRate, dodgeRate float64) float64 {
	return clampF(hitRate-dodgeRate, 0.3, 0.95)
}

// hitCheck rolls whether attacker's attack lands on defender, given the
// effective hit/dodge rates.
func hitCheck(roller dice.Roller, hitRate, dodgeRate float64) bool {
	return chance(roller, hitProbability(hitRate, dodgeRate))
}

func chance(roller dice.Roller, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	roll, _ := roller.Roll(10000)
	return float64(roll) <= p*10000
}

// mitigate returns the fraction of raw damage absorbed by defense, capped
// at 75% so defense never fully nullifies an attack.
func mitigate(defense float64) float64 {
	r := defense / (defense + 100)
	if r > 0.75 {
		return 0.75
	}
	return r
}

// resolveDamage applies the shared normal-attack/skill damage formula: flat
// mitigation by the defending lane's defense, an optional crit multiplier,
// then a uniform ±10% variance roll, floored to at least 1.
func resolveDamage(roller dice.Roller, raw, defense, critRate, critDamage float64) (dealt int, crit bool) {
	damage := raw * (1 - mitigate(defense))
	if chance(roller, critRate) {
		damage *= critDamage
		crit = true
	}
	swing, _ := roller.Roll(21)
	variance := float64(swing-11) / 100
	damage *= 1 + variance
	if damage < 1 {
		damage = 1
	}
	return int(damage), crit
}

// normalAttack resolves a plain attack in whichever lane — physical or
// magic — the attacker's effective attack is higher in: hit check,
// mitigation, crit, variance.
func normalAttack(roller dice.Roller, attacker, defender *stats.CombatStats, res *Result) {
	atkEff := computeEffective(attacker)
	defEff := computeEffective(defender)

	if !hitCheck(roller, atkEff.HitRate, defEff.DodgeRate) {
		res.Log = append(res.Log, logf("%s's attack misses %s", attacker.ID, defender.ID))
		return
	}

	raw := float64(atkEff.PhysicalAttack)
	defense := float64(defEff.PhysicalDefense)
	if atkEff.MagicAttack > atkEff.PhysicalAttack {
		raw = float64(atkEff.MagicAttack)
		defense = float64(defEff.MagicDefense)
	}

	dealtRaw, crit := resolveDamage(roller, raw, defense, atkEff.CritRate, atkEff.CritDamage)
	if crit {
		res.Log = append(res.Log, logf("%s lands a critical hit", attacker.ID))
	}

	dealt := applyDamage(defender, dealtRaw)
	res.Log = append(res.Log, logf("%s hits %s for %d", attacker.ID, defender.ID, dealt))
}

// castSkill resolves a skill use: mp deduction, an mp-exhausted self-damage
// penalty when that deduction drains the caster to zero or below, hit
// check, damage, lifesteal, and effect application.
func castSkill(roller dice.Roller, caster, target *stats.CombatStats, skill stats.ResolvedSkill, res *Result) {
	caster.MP -= skill.MPCost
	if caster.MP <= 0 && skill.MPExhaustedPenalty > 0 {
		penalty := int(skill.MPExhaustedPenalty * float64(caster.MaxHP) * 0.1)
		applyDamage(caster, penalty)
		res.Log = append(res.Log, logf("%s exhausts their mp casting %s and suffers %d", caster.ID, skill.Name, penalty))
	}
	if caster.SkillCooldowns == nil {
		caster.SkillCooldowns = make(map[string]int)
	}
	caster.SkillCooldowns[skill.ID] = skill.CooldownRounds

	atkEff := computeEffective(caster)
	defEff := computeEffective(target)

	if !hitCheck(roller, atkEff.HitRate, defEff.DodgeRate) {
		res.Log = append(res.Log, logf("%s's %s misses %s", caster.ID, skill.Name, target.ID))
		return
	}

	attack := float64(atkEff.PhysicalAttack)
	defense := float64(defEff.PhysicalDefense)
	if skill.DamageKind == "magic" {
		attack = float64(atkEff.MagicAttack)
		defense = float64(defEff.MagicDefense)
	}
	raw := float64(skill.BaseDamage) + skill.AttackRatio*attack

	dealtRaw, crit := resolveDamage(roller, raw, defense, atkEff.CritRate, atkEff.CritDamage)
	if crit {
		res.Log = append(res.Log, logf("%s's %s crits", caster.ID, skill.Name))
	}

	dealt := applyDamage(target, dealtRaw)
	res.Log = append(res.Log, logf("%s's %s hits %s for %d", caster.ID, skill.Name, target.ID, dealt))

	if skill.Lifesteal > 0 && dealt > 0 {
		heal := int(skill.Lifesteal * float64(dealt))
		caster.HP = int(math.Min(float64(caster.MaxHP), float64(caster.HP+heal)))
		res.Log = append(res.Log, logf("%s drains %d hp", caster.ID, heal))
	}

	for _, tmpl := range skill.Effects {
		if !chance(roller, tmpl.Chance) {
			continue
		}
		recipient := target
		if isBuffKind(tmpl.Kind) || tmpl.Kind == KindShield || tmpl.Kind == KindHeal ||
			tmpl.Kind == KindSelfDamage || tmpl.Kind == KindPurify {
			recipient = caster
		}
		applyEffectTemplate(recipient, tmpl)
	}
}

// applyEffectTemplate resolves one of the fixed effect kinds onto target,
// appending to Buffs/Debuffs as appropriate or acting immediately for the
// instantaneous kinds (heal, shield, self_damage, mp_burn, purify).
func applyEffectTemplate(target *stats.CombatStats, tmpl stats.EffectTemplate) {
	switch tmpl.Kind {
	case KindShield:
		target.Shield += fractionOrFlat(tmpl.Value, target.MaxHP)
	case KindHeal:
		target.HP = int(math.Min(float64(target.MaxHP), float64(target.HP+fractionOrFlat(tmpl.Value, target.MaxHP))))
	case KindSelfDamage:
		applyDamage(target, fractionOrFlat(tmpl.Value, target.MaxHP))
	case KindMPBurn:
		target.MP -= fractionOrFlat(tmpl.Value, target.MaxMP)
		if target.MP < 0 {
			target.MP = 0
		}
	case KindPurify:
		target.Debuffs = nil
	default:
		e := stats.Effect{Kind: tmpl.Kind, Value: tmpl.Value, Duration: tmpl.Duration}
		if isBuffKind(tmpl.Kind) {
			target.Buffs = append(target.Buffs, e)
		} else {
			target.Debuffs = append(target.Debuffs, e)
		}
	}
}

func isBuffKind(kind string) bool {
	switch kind {
	case KindAttackBoost, KindDefenseBoost, KindSpeedBoost, KindDodgeBoost, KindCriticalBoost:
		return true
	default:
		return false
	}
}

func finish(res *Result, a, b *stats.CombatStats, winner, loser string, reason string, kind Kind) *Result {
	res.WinnerID = winner
	res.LoserID = loser
	res.Draw = winner == "" && loser == ""
	res.Reason = reason
	res.P1Final = *a
	res.P2Final = *b
	if kind == KindImpartPK && !res.Draw {
		res.ImpartPercent = ImpartPercent
	}
	return res
}

func logf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

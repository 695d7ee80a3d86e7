// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package stats

import (
	"context"
	"math"

	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/pipeline"
	"github.com/duskveil/pathforge/player"
)

// Catalogs bundles the static config every pipeline stage reads from.
// Holding them in one struct keeps Compose's signature stable as the
// pipeline grows stages.
type Catalogs struct {
	Realms     catalog.RealmTable
	Items      catalog.ItemCatalog
	Techniques catalog.TechniqueCatalog
	Skills     catalog.SkillCatalog
}

// Builder is the working value folded through the pipeline's stages. Each
// stage reads and writes it; nothing outside Compose ever sees a partially
// built Builder.
type Builder struct {
	Player *player.Player
	Cat    Catalogs
	Now    int64

	MaxHP, MaxMP                                      float64
	PhysicalAttack, MagicAttack                       float64
	PhysicalDefense, MagicDefense                     float64
	Speed                                              float64
	CritRate, CritDamage, HitRate, DodgeRate           float64

	// PercentAccumulator holds technique passive-effect percentages keyed by
	// the base stat name ("physical_attack", "max_hp", ...), applied in the
	// percentage-application stage.
	PercentAccumulator map[string]float64

	Result CombatStats
}

// NewChain builds the seven-stage stats composition pipeline. Stage order is
// structural: realm base, permanent pill gains, equipment sum, technique
// contributions, percentage application, temporary pill multipliers, final
// clamps — each stage sees only the prior stage's output.
func NewChain() *pipeline.Chain[*Builder] {
	return pipeline.NewChain[*Builder]().
		Add("realm_base", realmBaseStage).
		Add("permanent_pill_gains", permanentPillGainsStage).
		Add("equipment_sum", equipmentSumStage).
		Add("technique_contributions", techniqueContributionsStage).
		Add("percentage_application", percentageApplicationStage).
		Add("temporary_pill_multipliers", temporaryPillMultipliersStage).
		Add("final_clamps", finalClampsStage)
}

// Compose runs the pipeline for p and returns a CombatStats ready for the
// combat engine. It is pure except for the temporary-effect purge
// described in §4.4: Compose calls PurgeExpiredEffects on p before running
// the stages, so later stages only see unexpired effects.
func Compose(ctx context.Context, p *player.Player, cat Catalogs, now int64) (CombatStats, error) {
	p.PurgeExpiredEffects(now)

	builder := &Builder{
		Player:             p,
		Cat:                cat,
		Now:                now,
		PercentAccumulator: make(map[string]float64),
	}

	result, err := NewChain().Execute(ctx, builder)
	if err != nil {
		return CombatStats{}, err
	}
	return result.Result, nil
}

func realmBaseStage(_ context.Context, b *Builder) (*Builder, error) {
	entry, err := b.Cat.Realms.Entry(b.Player.RealmIndex)
	if err != nil {
		return b, err
	}

	b.MaxHP = float64(entry.BaseHP)
	b.MaxMP = float64(entry.BaseMP)
	b.Speed = float64(entry.BaseSpeed)

	pa := float64(b.Player.PhysicalAttack)
	ma := float64(b.Player.MagicAttack)
	pd := float64(b.Player.PhysicalDefense)
	md := float64(b.Player.MagicDefense)

	switch b.Player.CultivationPath {
	case player.PathSpirit:
		ma *= 1.15
		pa *= 0.9
	case player.PathBody:
		pa *= 1.15
		pd *= 1.15
		ma *= 0.9
		md *= 0.9
	}

	realmMultiplier := 1 + float64(b.Player.RealmIndex)*0.1
	b.PhysicalAttack = pa * realmMultiplier
	b.MagicAttack = ma * realmMultiplier
	b.PhysicalDefense = pd * realmMultiplier
	b.MagicDefense = md * realmMultiplier

	b.CritRate = b.Player.CriticalRate
	b.CritDamage = b.Player.CriticalDamage
	b.HitRate = b.Player.HitRate
	b.DodgeRate = b.Player.DodgeRate

	return b, nil
}

func permanentPillGainsStage(_ context.Context, b *Builder) (*Builder, error) {
	g := b.Player.PermanentPillGains

	b.MaxHP *= 1 + g["max_hp_percent"]
	b.MaxMP *= 1 + g["max_mp_percent"]
	atkPercent := g["atk_percent"]
	b.PhysicalAttack *= 1 + atkPercent
	b.MagicAttack *= 1 + atkPercent
	defPercent := g["def_percent"]
	b.PhysicalDefense *= 1 + defPercent
	b.MagicDefense *= 1 + defPercent

	b.MaxHP += g["max_hp"]
	b.MaxMP += g["max_mp"]
	b.PhysicalAttack += g["physical_attack"]
	b.MagicAttack += g["magic_attack"]
	b.PhysicalDefense += g["physical_defense"]
	b.MagicDefense += g["magic_defense"]
	b.Speed += g["speed"]
	b.CritRate += g["critical_rate"]
	b.CritDamage += g["critical_damage"]
	b.HitRate += g["hit_rate"]
	b.DodgeRate += g["dodge_rate"]

	return b, nil
}

func equipmentSumStage(_ context.Context, b *Builder) (*Builder, error) {
	equipped := []string{
		b.Player.EquippedWeapon,
		b.Player.EquippedArmor,
		b.Player.EquippedMainTechnique,
	}

	for _, id := range equipped {
		if id == "" {
			continue
		}
		def, err := b.Cat.Items.Item(id)
		if err != nil {
			continue // resolved elsewhere at equip time; composition tolerates a stale ref
		}
		b.applyAttributeBonuses(def.AttributeBonuses)
	}

	return b, nil
}

func (b *Builder) applyAttributeBonuses(bonuses map[string]int) {
	if bonuses == nil {
		return
	}
	b.PhysicalAttack += float64(bonuses["physical_attack"])
	b.MagicAttack += float64(bonuses["magic_attack"])
	b.PhysicalDefense += float64(bonuses["physical_defense"])
	b.MagicDefense += float64(bonuses["magic_defense"])
	b.Speed += float64(bonuses["speed"])
	b.CritRate += float64(bonuses["critical_rate"])
	b.CritDamage += float64(bonuses["critical_damage"])
	b.HitRate += float64(bonuses["hit_rate"])
	b.DodgeRate += float64(bonuses["dodge_rate"])
	b.MaxHP += float64(bonuses["hp_bonus"])
	b.MaxMP += float64(bonuses["mp_bonus"])
}

func techniqueContributionsStage(_ context.Context, b *Builder) (*Builder, error) {
	if b.Player.EquippedMainTechnique == "" {
		return b, nil
	}
	def, err := b.Cat.Techniques.Technique(b.Player.EquippedMainTechnique)
	if err != nil {
		return b, nil // same tolerance as equipment
	}

	b.applyAttributeBonuses(def.AttributeBonuses)

	for key, value := range def.PassiveEffects {
		if isPercentKey(key) {
			b.PercentAccumulator[trimPercentSuffix(key)] += value
			continue
		}
		b.addFlatEffect(key, value)
	}

	return b, nil
}

func (b *Builder) addFlatEffect(key string, value float64) {
	switch key {
	case "physical_attack":
		b.PhysicalAttack += value
	case "magic_attack":
		b.MagicAttack += value
	case "physical_defense":
		b.PhysicalDefense += value
	case "magic_defense":
		b.MagicDefense += value
	case "speed":
		b.Speed += value
	case "max_hp":
		b.MaxHP += value
	case "max_mp":
		b.MaxMP += value
	case "critical_rate":
		b.CritRate += value
	case "critical_damage":
		b.CritDamage += value
	case "hit_rate":
		b.HitRate += value
	case "dodge_rate":
		b.DodgeRate += value
	}
}

func percentageApplicationStage(_ context.Context, b *Builder) (*Builder, error) {
	b.PhysicalAttack *= 1 + b.PercentAccumulator["physical_attack"]
	b.MagicAttack *= 1 + b.PercentAccumulator["magic_attack"]
	b.PhysicalDefense *= 1 + b.PercentAccumulator["physical_defense"]
	b.MagicDefense *= 1 + b.PercentAccumulator["magic_defense"]
	b.MaxHP *= 1 + b.PercentAccumulator["max_hp"]
	b.MaxMP *= 1 + b.PercentAccumulator["max_mp"]
	return b, nil
}

func temporaryPillMultipliersStage(_ context.Context, b *Builder) (*Builder, error) {
	for _, eff := range b.Player.ActiveTemporaryEffects {
		switch eff.Kind {
		case "hp_multiplier":
			b.MaxHP *= eff.Value
		case "mp_multiplier":
			b.MaxMP *= eff.Value
		case "atk_multiplier":
			b.PhysicalAttack *= eff.Value
			b.MagicAttack *= eff.Value
		case "def_multiplier":
			b.PhysicalDefense *= eff.Value
			b.MagicDefense *= eff.Value
		case "speed_multiplier":
			b.Speed *= eff.Value
		case "critical_rate_bonus":
			b.CritRate += eff.Value
		case "dodge_rate_bonus":
			b.DodgeRate += eff.Value
		}
	}
	return b, nil
}

func finalClampsStage(_ context.Context, b *Builder) (*Builder, error) {
	b.CritRate = clamp(b.CritRate, 0, 0.8)
	b.CritDamage = math.Max(1.0, b.CritDamage)
	b.HitRate = clamp(b.HitRate, 0.5, 1.0)
	b.DodgeRate = clamp(b.DodgeRate, 0, 0.8)
	b.Speed = math.Max(1, b.Speed)

	maxHP := int(math.Round(b.MaxHP))
	maxMP := int(math.Round(b.MaxMP))

	currentHP, currentMP := b.Player.HP, b.Player.MP
	if b.Player.CultivationPath == player.PathBody {
		currentHP, currentMP = b.Player.HP, b.Player.BloodQi
	}
	if currentHP > maxHP {
		currentHP = maxHP
	}
	if currentMP > maxMP {
		currentMP = maxMP
	}

	skills, cooldowns := resolveSkills(b.Player, b.Cat.Skills)

	b.Result = CombatStats{
		ID:              b.Player.UserID,
		HP:              currentHP,
		MaxHP:           maxHP,
		MP:              currentMP,
		MaxMP:           maxMP,
		PhysicalAttack:  intFloor(b.PhysicalAttack, 1),
		MagicAttack:     intFloor(b.MagicAttack, 1),
		PhysicalDefense: intFloor(b.PhysicalDefense, 0),
		MagicDefense:    intFloor(b.MagicDefense, 0),
		Speed:           int(b.Speed),
		CriticalRate:    b.CritRate,
		CriticalDamage:  b.CritDamage,
		HitRate:         b.HitRate,
		DodgeRate:       b.DodgeRate,
		Skills:          skills,
		SkillCooldowns:  cooldowns,
		Shield:          0,
		Buffs:           nil,
		Debuffs:         nil,
	}

	return b, nil
}

func resolveSkills(p *player.Player, skills catalog.SkillCatalog) ([]ResolvedSkill, map[string]int) {
	resolved := make([]ResolvedSkill, 0, len(p.EquippedSkills))
	cooldowns := make(map[string]int, len(p.EquippedSkills))
	for _, id := range p.EquippedSkills {
		def, err := skills.Skill(id)
		if err != nil {
			continue
		}
		effects := make([]EffectTemplate, 0, len(def.Effects))
		for _, e := range def.Effects {
			chance := e.Chance
			if chance == 0 {
				chance = 1.0
			}
			effects = append(effects, EffectTemplate{Kind: e.Kind, Value: e.Value, Duration: e.Duration, Chance: chance})
		}
		resolved = append(resolved, ResolvedSkill{
			ID:                 def.ID,
			Name:               def.Name,
			DamageKind:         string(def.DamageKind),
			BaseDamage:         def.BaseDamage,
			AttackRatio:        def.AttackRatio,
			MPCost:             def.MPCost,
			CooldownRounds:     def.CooldownRounds,
			Lifesteal:          def.Lifesteal,
			MPExhaustedPenalty: def.MPExhaustedPenalty,
			Effects:            effects,
		})
		cooldowns[id] = 0
	}
	return resolved, cooldowns
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intFloor(v float64, floor int) int {
	n := int(v)
	if n < floor {
		return floor
	}
	return n
}

func isPercentKey(key string) bool {
	return len(key) > len("_percent") && key[len(key)-len("_percent"):] == "_percent"
}

func trimPercentSuffix(key string) string {
	return key[:len(key)-len("_percent")]
}

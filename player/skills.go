// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package player

import (
	"github.com/duskveil/pathforge/catalog"
	"github.com/duskveil/pathforge/rpgerr"
)

// LearnSkill adds a skill to learned_skills after checking the player's
// realm against the skill's requirement.
func (p *Player) LearnSkill(skills catalog.SkillCatalog, skillID string) error {
	def, err := skills.Skill(skillID)
	if err != nil {
		return rpgerr.NotFoundf("skill %q", skillID)
	}
	if p.RealmIndex < def.RealmRequirement {
		return rpgerr.PrerequisiteNotMet("insufficient realm for this skill")
	}
	if p.LearnedSkills == nil {
		p.LearnedSkills = make(map[string]bool)
	}
	p.LearnedSkills[skillID] = true
	return nil
}

// EquipSkill moves a learned skill into the equipped_skills slots, which are
// capacity 2. Equipping an already-equipped skill is a no-op success.
func (p *Player) EquipSkill(skillID string) error {
	if !p.LearnedSkills[skillID] {
		return rpgerr.PrerequisiteNotMet("skill not learned")
	}
	for _, id := range p.EquippedSkills {
		if id == skillID {
			return nil
		}
	}
	if len(p.EquippedSkills) >= 2 {
		return rpgerr.ResourceExhausted("equipped skill slots")
	}
	p.EquippedSkills = append(p.EquippedSkills, skillID)
	return nil
}

// UnequipSkill removes a skill from equipped_skills. Unequipping a skill
// that isn't equipped is a no-op success.
func (p *Player) UnequipSkill(skillID string) error {
	for i, id := range p.EquippedSkills {
		if id == skillID {
			p.EquippedSkills = append(p.EquippedSkills[:i], p.EquippedSkills[i+1:]...)
			return nil
		}
	}
	return nil
}

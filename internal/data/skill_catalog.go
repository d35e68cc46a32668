package data

import (
	"fmt"
	"strings"

	"github.com/udisondev/dragonarena/internal/model"
)

// SupportElement is the element that additionally receives a healing skill.
const SupportElement = model.ElementLight

// skillTemplate is the tier-independent shape of a catalog skill.
type skillTemplate struct {
	tier          model.SkillTier
	kind          model.SkillKind
	power         int32
	accuracy      int32
	cooldownTurns int32
}

var (
	basicTemplate    = skillTemplate{tier: model.SkillBasic, kind: model.SkillDamage, power: 50, accuracy: 100, cooldownTurns: 0}
	specialTemplate  = skillTemplate{tier: model.SkillSpecial, kind: model.SkillDamage, power: 80, accuracy: 90, cooldownTurns: 2}
	ultimateTemplate = skillTemplate{tier: model.SkillUltimate, kind: model.SkillDamage, power: 120, accuracy: 75, cooldownTurns: 4}
	healTemplate     = skillTemplate{tier: model.SkillSupport, kind: model.SkillHeal, power: 50, accuracy: 100, cooldownTurns: 3}
)

// specialNames and ultimateNames are indexed by element.
var specialNames = [...]string{
	model.ElementFire:     "Flame Burst",
	model.ElementWater:    "Water Pulse",
	model.ElementEarth:    "Stone Edge",
	model.ElementAir:      "Air Slash",
	model.ElementDark:     "Shadow Ball",
	model.ElementLight:    "Light Beam",
	model.ElementNature:   "Leaf Blade",
	model.ElementMetal:    "Iron Head",
	model.ElementIce:      "Ice Beam",
	model.ElementElectric: "Thunder Shock",
}

var ultimateNames = [...]string{
	model.ElementFire:     "Inferno",
	model.ElementWater:    "Hydro Pump",
	model.ElementEarth:    "Earthquake",
	model.ElementAir:      "Hurricane",
	model.ElementDark:     "Dark Pulse",
	model.ElementLight:    "Solar Beam",
	model.ElementNature:   "Frenzy Plant",
	model.ElementMetal:    "Meteor Mash",
	model.ElementIce:      "Blizzard",
	model.ElementElectric: "Thunder",
}

// animationKeys holds {regular, ultimate} animation ids per element.
var animationKeys = [...][2]string{
	model.ElementFire:     {"fire_strike", "fire_blast"},
	model.ElementWater:    {"water_splash", "water_tsunami"},
	model.ElementEarth:    {"rock_throw", "earth_quake"},
	model.ElementAir:      {"wind_slash", "tornado"},
	model.ElementDark:     {"shadow_claw", "dark_void"},
	model.ElementLight:    {"light_ray", "holy_beam"},
	model.ElementNature:   {"leaf_storm", "vine_whip"},
	model.ElementMetal:    {"steel_edge", "metal_burst"},
	model.ElementIce:      {"ice_shard", "blizzard"},
	model.ElementElectric: {"spark", "thunderbolt"},
}

// TierPowerBonus returns the flat power bonus added to offensive skills.
func TierPowerBonus(tier model.PowerTier) int32 {
	switch tier {
	case model.PowerDual:
		return 10
	case model.PowerCombined:
		return 20
	default:
		return 0
	}
}

// GenerateSkills returns the skill set of a creature in catalog order:
// basic, special, ultimate and, for the support element, a heal.
// The mapping is closed and deterministic.
func GenerateSkills(e model.Element, tier model.PowerTier) ([]model.Skill, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("generating skills: %w: %d", model.ErrInvalidElement, e)
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("generating skills: %w: %d", model.ErrInvalidPowerTier, tier)
	}

	bonus := TierPowerBonus(tier)
	prefix := strings.ToLower(e.String())

	skills := make([]model.Skill, 0, 4)
	skills = append(skills,
		basicTemplate.build(prefix+"-basic", e.String()+" Strike", e, bonus),
		specialTemplate.build(prefix+"-special", specialNames[e], e, bonus),
		ultimateTemplate.build(prefix+"-ultimate", ultimateNames[e], e, bonus),
	)
	if e == SupportElement {
		// Heal magnitude does not scale with tier.
		skills = append(skills, healTemplate.build(prefix+"-heal", "Healing Light", e, 0))
	}
	return skills, nil
}

func (t skillTemplate) build(id, name string, e model.Element, bonus int32) model.Skill {
	return model.Skill{
		ID:            id,
		Name:          name,
		Element:       e,
		Tier:          t.tier,
		Kind:          t.kind,
		Power:         t.power + bonus,
		Accuracy:      t.accuracy,
		CooldownTurns: t.cooldownTurns,
	}
}

// SkillAnimation returns the presentation animation key for a skill.
func SkillAnimation(e model.Element, tier model.SkillTier) string {
	if !e.Valid() {
		return "basic_attack"
	}
	if tier == model.SkillUltimate {
		return animationKeys[e][1]
	}
	return animationKeys[e][0]
}

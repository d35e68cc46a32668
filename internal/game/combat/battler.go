package combat

import (
	"fmt"

	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/model"
)

// Battler is the live in-combat wrapper around a creature.
// A Battler is owned by exactly one session and is not safe for concurrent use.
type Battler struct {
	creatureID int64
	name       string
	side       model.Side
	element    model.Element
	powerTier  model.PowerTier

	stats     model.DerivedStats
	currentHP int32

	skills []model.Skill
	// cooldowns is indexed by skill slot.
	cooldowns []int32
}

// NewBattler builds a battler from a creature definition with full HP and
// zero cooldowns.
func NewBattler(def model.CreatureDefinition, side model.Side) (*Battler, error) {
	stats, err := data.StatsFor(def)
	if err != nil {
		return nil, fmt.Errorf("building battler: %w", err)
	}
	skills, err := data.GenerateSkills(def.Element, def.PowerTier)
	if err != nil {
		return nil, fmt.Errorf("building battler for creature %d: %w", def.ID, err)
	}
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("%s Dragon #%d", def.Element, def.ID)
	}
	return NewBattlerFromStats(def.ID, name, side, def.Element, def.PowerTier, stats, skills)
}

// NewBattlerFromStats builds a battler from an explicit stat snapshot and skill
// set. HP starts at stats.MaxHP.
func NewBattlerFromStats(
	creatureID int64,
	name string,
	side model.Side,
	element model.Element,
	tier model.PowerTier,
	stats model.DerivedStats,
	skills []model.Skill,
) (*Battler, error) {
	if !element.Valid() {
		return nil, fmt.Errorf("battler %q: %w: %d", name, model.ErrInvalidElement, element)
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("battler %q: %w: %d", name, model.ErrInvalidPowerTier, tier)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("battler %q has no skills", name)
	}
	if stats.MaxHP <= 0 {
		return nil, fmt.Errorf("battler %q: max HP must be positive, got %d", name, stats.MaxHP)
	}
	for i, s := range skills {
		if s.Power < 0 || s.Accuracy < 0 || s.CooldownTurns < 0 {
			return nil, fmt.Errorf("battler %q: skill %d (%s) has negative power, accuracy or cooldown", name, i, s.ID)
		}
	}

	stats.HP = stats.MaxHP
	return &Battler{
		creatureID: creatureID,
		name:       name,
		side:       side,
		element:    element,
		powerTier:  tier,
		stats:      stats,
		currentHP:  stats.MaxHP,
		skills:     append([]model.Skill(nil), skills...),
		cooldowns:  make([]int32, len(skills)),
	}, nil
}

func (b *Battler) CreatureID() int64 { return b.creatureID }
func (b *Battler) Name() string { return b.name }
func (b *Battler) Side() model.Side { return b.side }
func (b *Battler) Element() model.Element { return b.element }
func (b *Battler) PowerTier() model.PowerTier { return b.powerTier }
func (b *Battler) CurrentHP() int32 { return b.currentHP }
func (b *Battler) MaxHP() int32 { return b.stats.MaxHP }
func (b *Battler) IsDefeated() bool { return b.currentHP <= 0 }
func (b *Battler) SkillCount() int { return len(b.skills) }

// Stats returns the stat snapshot with HP set to the current HP.
func (b *Battler) Stats() model.DerivedStats {
	s := b.stats
	s.HP = b.currentHP
	return s
}

// Skills returns a copy of the skill set in catalog order.
func (b *Battler) Skills() []model.Skill {
	return append([]model.Skill(nil), b.skills...)
}

// Skill returns the skill at slot.
func (b *Battler) Skill(slot int) (model.Skill, bool) {
	if slot < 0 || slot >= len(b.skills) {
		return model.Skill{}, false
	}
	return b.skills[slot], true
}

// SlotOf returns the slot of the skill with the given id.
func (b *Battler) SlotOf(skillID string) (int, error) {
	for i, s := range b.skills {
		if s.ID == skillID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q not owned by %s", ErrUnknownSkill, skillID, b.name)
}

// Cooldown returns the turns remaining before slot is usable (0 = ready).
func (b *Battler) Cooldown(slot int) int32 {
	if slot < 0 || slot >= len(b.cooldowns) {
		return 0
	}
	return b.cooldowns[slot]
}

// Available reports whether slot exists and is off cooldown.
func (b *Battler) Available(slot int) bool {
	return slot >= 0 && slot < len(b.cooldowns) && b.cooldowns[slot] == 0
}

// AvailableSlots returns every slot off cooldown, in catalog order.
func (b *Battler) AvailableSlots() []int {
	out := make([]int, 0, len(b.cooldowns))
	for i, cd := range b.cooldowns {
		if cd == 0 {
			out = append(out, i)
		}
	}
	return out
}

// HPRatio returns currentHP / maxHP.
func (b *Battler) HPRatio() float64 {
	if b.stats.MaxHP <= 0 {
		return 0
	}
	return float64(b.currentHP) / float64(b.stats.MaxHP)
}

// SetCurrentHP sets HP, clamped into [0, MaxHP].
func (b *Battler) SetCurrentHP(hp int32) {
	b.currentHP = max(0, min(hp, b.stats.MaxHP))
}

// takeDamage reduces HP (clamped at 0) and returns the damage actually taken.
func (b *Battler) takeDamage(amount int32) int32 {
	if amount <= 0 {
		return 0
	}
	if amount > b.currentHP {
		amount = b.currentHP
	}
	b.currentHP -= amount
	return amount
}

// heal restores HP (clamped at MaxHP) and returns the amount actually restored.
func (b *Battler) heal(amount int32) int32 {
	if amount <= 0 {
		return 0
	}
	room := b.stats.MaxHP - b.currentHP
	if amount > room {
		amount = room
	}
	b.currentHP += amount
	return amount
}

// tickCooldowns decrements every active cooldown by one.
func (b *Battler) tickCooldowns() {
	for i, cd := range b.cooldowns {
		if cd > 0 {
			b.cooldowns[i] = cd - 1
		}
	}
}

func (b *Battler) setCooldown(slot int, turns int32) {
	if turns < 0 {
		turns = 0
	}
	b.cooldowns[slot] = turns
}

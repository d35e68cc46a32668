package model

// SkillKind tells whether a skill inflicts damage or restores HP. Never both.
type SkillKind int32

const (
	SkillDamage SkillKind = iota
	SkillHeal
)

func (k SkillKind) String() string {
	if k == SkillHeal {
		return "heal"
	}
	return "damage"
}

// SkillTier is the slot a generated skill occupies in the catalog.
type SkillTier int32

const (
	SkillBasic SkillTier = iota
	SkillSpecial
	SkillUltimate
	SkillSupport
)

func (t SkillTier) String() string {
	switch t {
	case SkillBasic:
		return "basic"
	case SkillSpecial:
		return "special"
	case SkillUltimate:
		return "ultimate"
	case SkillSupport:
		return "support"
	default:
		return "unknown"
	}
}

// Skill is an immutable action generated by the skill catalog.
// Power is a magnitude; Kind decides whether it damages or heals.
type Skill struct {
	ID            string
	Name          string
	Element       Element
	Tier          SkillTier
	Kind          SkillKind
	Power         int32
	Accuracy      int32 // percent, 0..100
	CooldownTurns int32
}

// IsHeal returns true for HP-restoring skills.
func (s Skill) IsHeal() bool { return s.Kind == SkillHeal }

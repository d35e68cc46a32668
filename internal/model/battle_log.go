package model

// Side identifies one of the two battlers in a session.
type Side int32

const (
	SideNone Side = iota
	SideAttacker
	SideDefender
)

func (s Side) String() string {
	switch s {
	case SideAttacker:
		return "attacker"
	case SideDefender:
		return "defender"
	default:
		return "none"
	}
}

// Opponent returns the other side. SideNone maps to itself.
func (s Side) Opponent() Side {
	switch s {
	case SideAttacker:
		return SideDefender
	case SideDefender:
		return SideAttacker
	default:
		return SideNone
	}
}

// Effect tags attached to log entries.
const (
	EffectCritical         = "critical"
	EffectSuperEffective   = "super_effective"
	EffectNotVeryEffective = "not_very_effective"
	EffectMiss             = "miss"
	EffectCooldown         = "cooldown"
	EffectPass             = "pass"
	EffectVictory          = "victory"
	EffectTimeLimit        = "time_limit"
)

// TurnLogEntry is one append-only record of a battle.
// Damage and Healing are nil when the action did not produce them.
// HP fields are a snapshot taken right after the entry was produced.
type TurnLogEntry struct {
	Turn      int32    `json:"turn"`
	Actor     Side     `json:"actor"`
	Narrative string   `json:"narrative"`
	SkillID   string   `json:"skill_id,omitempty"`
	Damage    *int32   `json:"damage,omitempty"`
	Healing   *int32   `json:"healing,omitempty"`
	Effect    string   `json:"effect,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	AttackerHP    int32 `json:"attacker_hp"`
	AttackerMaxHP int32 `json:"attacker_max_hp"`
	DefenderHP    int32 `json:"defender_hp"`
	DefenderMaxHP int32 `json:"defender_max_hp"`
}

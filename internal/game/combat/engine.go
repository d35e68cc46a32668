package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

// Backend resolves single battle actions. Engine is the only implementation;
// sessions depend on the interface so a resolver can be swapped in tests.
type Backend interface {
	// Resolve executes one action of actor against target using the skill in
	// slot. The returned error is non-nil only for caller misuse; no state is
	// changed in that case.
	Resolve(actor, target *Battler, slot int, turn int32, rng random.Source) (ActionResult, error)
	// Pass consumes actor's turn without an action.
	Pass(actor *Battler, turn int32) ActionResult
}

// Outcome classifies a resolved action.
type Outcome int32

const (
	OutcomeHit Outcome = iota
	OutcomeMiss
	OutcomeCooldown
	OutcomePass
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomePass:
		return "pass"
	default:
		return "unknown"
	}
}

// ActionResult describes what one action did.
// Entry carries the narrative and tags; HP snapshots are stamped by the caller.
type ActionResult struct {
	Outcome    Outcome
	Slot       int
	Skill      model.Skill
	Damage     int32
	Healing    int32
	Critical   bool
	Multiplier float64
	Defeated   bool // target HP reached 0
	Entry      model.TurnLogEntry
}

// Engine is the deterministic combat resolver. The zero value is ready to use.
type Engine struct{}

var _ Backend = Engine{}

// Resolve runs the per-action state machine: cooldown gate, accuracy roll,
// critical roll, magnitude, apply and terminal check.
//
// Random draws are taken in a fixed order (accuracy, then critical and
// variance for damage skills), so the same seed replays the same action.
// After the action the actor's cooldowns tick once and, on a hit, the used
// skill's cooldown is set. A skill with cooldown k used on an owner turn is
// therefore usable again k+1 owner turns later.
func (Engine) Resolve(actor, target *Battler, slot int, turn int32, rng random.Source) (ActionResult, error) {
	if err := ValidateAction(actor, target, slot); err != nil {
		return ActionResult{}, err
	}
	if rng == nil {
		return ActionResult{}, fmt.Errorf("resolving action: random source is required")
	}

	skill := actor.skills[slot]
	res := ActionResult{
		Slot:       slot,
		Skill:      skill,
		Multiplier: data.MultiplierNeutral,
		Entry: model.TurnLogEntry{
			Turn:    turn,
			Actor:   actor.side,
			SkillID: skill.ID,
		},
	}

	if actor.cooldowns[slot] > 0 {
		res.Outcome = OutcomeCooldown
		res.Entry.Narrative = fmt.Sprintf("%s's %s is on cooldown! (%d turns left)", actor.name, skill.Name, actor.cooldowns[slot])
		res.Entry.Effect = model.EffectCooldown
		res.Entry.Tags = []string{model.EffectCooldown}
		actor.tickCooldowns()
		return res, nil
	}

	if !CalcHit(skill.Accuracy, rng) {
		res.Outcome = OutcomeMiss
		res.Entry.Narrative = fmt.Sprintf("%s's %s missed!", actor.name, skill.Name)
		res.Entry.Effect = model.EffectMiss
		res.Entry.Tags = []string{model.EffectMiss}
		actor.tickCooldowns()
		slog.Debug("action missed", "turn", turn, "actor", actor.name, "skill", skill.ID)
		return res, nil
	}

	res.Outcome = OutcomeHit
	if skill.IsHeal() {
		healed := actor.heal(skill.Power)
		res.Healing = healed
		res.Entry.Healing = &healed
		res.Entry.Narrative = fmt.Sprintf("%s uses %s and restores %d HP", actor.name, skill.Name, healed)
	} else {
		res.Critical = CalcCrit(actor.stats.Speed, target.stats.Speed, rng)
		dmg, mult := damageFor(actor, target, skill, res.Critical, RandomFactor(rng))
		dealt := target.takeDamage(dmg)
		res.Damage = dealt
		res.Multiplier = mult
		res.Defeated = target.IsDefeated()

		res.Entry.Damage = &dealt
		res.Entry.Narrative = damageNarrative(actor, target, skill, dealt, res.Critical, mult)
		res.Entry.Tags = damageTags(res.Critical, mult)
		if len(res.Entry.Tags) > 0 {
			res.Entry.Effect = res.Entry.Tags[0]
		}
	}

	if !res.Defeated {
		actor.tickCooldowns()
	}
	if skill.CooldownTurns > 0 {
		actor.setCooldown(slot, skill.CooldownTurns)
	}

	slog.Debug("action resolved",
		"turn", turn,
		"actor", actor.name,
		"skill", skill.ID,
		"damage", res.Damage,
		"healing", res.Healing,
		"critical", res.Critical,
		"targetHP", target.currentHP)

	return res, nil
}

// Pass consumes the actor's turn. Cooldowns still tick.
func (Engine) Pass(actor *Battler, turn int32) ActionResult {
	actor.tickCooldowns()
	return ActionResult{
		Outcome:    OutcomePass,
		Slot:       -1,
		Multiplier: data.MultiplierNeutral,
		Entry: model.TurnLogEntry{
			Turn:      turn,
			Actor:     actor.side,
			Narrative: fmt.Sprintf("%s passes the turn (all skills on cooldown)", actor.name),
			Effect:    model.EffectPass,
			Tags:      []string{model.EffectPass},
		},
	}
}

func damageNarrative(actor, target *Battler, skill model.Skill, dmg int32, critical bool, mult float64) string {
	msg := fmt.Sprintf("%s uses %s on %s for %d damage", actor.name, skill.Name, target.name, dmg)
	if critical {
		msg += " (Critical!)"
	}
	switch data.EffectivenessTag(mult) {
	case model.EffectSuperEffective:
		msg += " (Super effective!)"
	case model.EffectNotVeryEffective:
		msg += " (Not very effective...)"
	}
	return msg
}

func damageTags(critical bool, mult float64) []string {
	var tags []string
	if critical {
		tags = append(tags, model.EffectCritical)
	}
	if tag := data.EffectivenessTag(mult); tag != "" {
		tags = append(tags, tag)
	}
	return tags
}

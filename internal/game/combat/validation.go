package combat

import (
	"errors"
	"fmt"
)

// ErrUnknownSkill is returned when an action names a skill slot the actor
// does not own. It is a caller bug and never consumes a turn.
var ErrUnknownSkill = errors.New("unknown skill")

// ErrActorDefeated is returned when a defeated battler is asked to act.
var ErrActorDefeated = errors.New("actor is defeated")

// ValidateAction checks an action request before any state is touched.
func ValidateAction(actor, target *Battler, slot int) error {
	if actor == nil || target == nil {
		return fmt.Errorf("actor and target are required")
	}
	if actor == target {
		return fmt.Errorf("battler %s cannot target itself", actor.name)
	}
	if slot < 0 || slot >= len(actor.skills) {
		return fmt.Errorf("%w: slot %d not owned by %s (%d skills)", ErrUnknownSkill, slot, actor.name, len(actor.skills))
	}
	if actor.IsDefeated() {
		return fmt.Errorf("%w: %s", ErrActorDefeated, actor.name)
	}
	return nil
}

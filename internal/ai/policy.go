package ai

import "github.com/udisondev/dragonarena/internal/game/combat"

// LowHealthThreshold is the HP fraction below which a heal is preferred.
const LowHealthThreshold = 0.30

// Policy picks the next action for a battler.
// ok=false means no skill is available and the turn must be passed.
// Implementations must only return slots that are off cooldown and must
// return ok=true whenever at least one slot is available.
type Policy interface {
	ChooseAction(self, opponent *combat.Battler) (slot int, ok bool)
}

// HeuristicPolicy is the default opponent policy.
type HeuristicPolicy struct{}

var _ Policy = HeuristicPolicy{}

// ChooseAction implements Policy.
func (HeuristicPolicy) ChooseAction(self, opponent *combat.Battler) (int, bool) {
	return ChooseAction(self, opponent)
}

// ChooseAction selects among skills with zero cooldown:
//   - none available: pass;
//   - HP below 30% and a heal available: the first heal;
//   - otherwise the highest power skill, first in catalog order on ties.
//
// Pure: neither battler is mutated. opponent is unused by this heuristic.
func ChooseAction(self, opponent *combat.Battler) (int, bool) {
	if self == nil {
		return -1, false
	}
	available := self.AvailableSlots()
	if len(available) == 0 {
		logChoice(self, -1, "pass")
		return -1, false
	}

	if self.HPRatio() < LowHealthThreshold {
		for _, slot := range available {
			if s, _ := self.Skill(slot); s.IsHeal() {
				logChoice(self, slot, "low_hp_heal")
				return slot, true
			}
		}
	}

	best := -1
	var bestPower int32
	for _, slot := range available {
		s, _ := self.Skill(slot)
		if s.IsHeal() {
			continue
		}
		if best < 0 || s.Power > bestPower {
			best, bestPower = slot, s.Power
		}
	}
	if best < 0 {
		// Only heals are off cooldown.
		logChoice(self, available[0], "only_heal")
		return available[0], true
	}
	logChoice(self, best, "highest_power")
	return best, true
}

package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/dragonarena/internal/game/combat"
)

// debugLoggingEnabled gates policy decision logging. ChooseAction runs once
// per action, so the check must be cheaper than a slog level lookup.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables logging of policy decisions.
// Called from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if policy decisions are logged.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

func logChoice(self *combat.Battler, slot int, reason string) {
	if !IsDebugEnabled() {
		return
	}
	skillID := ""
	if s, ok := self.Skill(slot); ok {
		skillID = s.ID
	}
	slog.Debug("policy choice",
		"battler", self.Name(),
		"skill", skillID,
		"reason", reason,
		"hp", self.CurrentHP(),
		"maxHP", self.MaxHP(),
		"available", self.AvailableSlots())
}

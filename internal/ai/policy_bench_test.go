package ai

import (
	"testing"

	"github.com/udisondev/dragonarena/internal/game/combat"
	"github.com/udisondev/dragonarena/internal/model"
)

func benchBattler(b *testing.B, e model.Element, side model.Side) *combat.Battler {
	b.Helper()
	bt, err := combat.NewBattler(model.CreatureDefinition{ID: int64(side), Element: e, PowerTier: model.PowerDual, Level: 20}, side)
	if err != nil {
		b.Fatal(err)
	}
	return bt
}

// BenchmarkChooseAction measures one policy decision with debug logging off.
func BenchmarkChooseAction(b *testing.B) {
	EnableDebugLogging(false)
	self := benchBattler(b, model.ElementLight, model.SideDefender)
	opponent := benchBattler(b, model.ElementDark, model.SideAttacker)
	self.SetCurrentHP(self.MaxHP() / 5)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_, _ = ChooseAction(self, opponent)
	}
}

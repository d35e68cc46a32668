package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/model"
)

// scriptedSource replays a fixed list of Float64 draws (cycled).
type scriptedSource struct {
	floats []float64
	draws  int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.draws%len(s.floats)]
	s.draws++
	return v
}

func (s *scriptedSource) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

func script(v ...float64) *scriptedSource { return &scriptedSource{floats: v} }

// testBattler derives a battler for element/tier/level.
func testBattler(t testing.TB, name string, side model.Side, e model.Element, tier model.PowerTier, level int32) *Battler {
	t.Helper()
	b, err := NewBattler(model.CreatureDefinition{
		ID: int64(side), Name: name, Element: e, PowerTier: tier, Level: level,
	}, side)
	require.NoError(t, err)
	return b
}

// customBattler builds a battler with explicit stats and skills.
func customBattler(t testing.TB, name string, side model.Side, e model.Element, stats model.DerivedStats, skills ...model.Skill) *Battler {
	t.Helper()
	b, err := NewBattlerFromStats(int64(side), name, side, e, model.PowerSingle, stats, skills)
	require.NoError(t, err)
	return b
}

func mustStats(t testing.TB, e model.Element, tier model.PowerTier, level int32) model.DerivedStats {
	t.Helper()
	s, err := data.DeriveStats(e, tier, level)
	require.NoError(t, err)
	return s
}

func mustSkills(t testing.TB, e model.Element, tier model.PowerTier) []model.Skill {
	t.Helper()
	s, err := data.GenerateSkills(e, tier)
	require.NoError(t, err)
	return s
}

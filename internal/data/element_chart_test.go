package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/dragonarena/internal/model"
)

func TestEffectiveness_SameElementNeutral(t *testing.T) {
	for _, e := range model.Elements() {
		assert.Equal(t, MultiplierNeutral, Effectiveness(e, e), "element %s", e)
	}
}

func TestEffectiveness_CoreCycle(t *testing.T) {
	tests := []struct {
		attacker, defender model.Element
		want               float64
	}{
		{model.ElementFire, model.ElementEarth, MultiplierStrong},
		{model.ElementEarth, model.ElementAir, MultiplierStrong},
		{model.ElementAir, model.ElementWater, MultiplierStrong},
		{model.ElementWater, model.ElementFire, MultiplierStrong},
		{model.ElementLight, model.ElementDark, MultiplierStrong},
		{model.ElementDark, model.ElementLight, MultiplierStrong},
		{model.ElementEarth, model.ElementFire, MultiplierWeak},
		{model.ElementFire, model.ElementWater, MultiplierWeak},
		{model.ElementFire, model.ElementAir, MultiplierNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.attacker.String()+"_vs_"+tt.defender.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Effectiveness(tt.attacker, tt.defender))
		})
	}
}

func TestEffectiveness_Total(t *testing.T) {
	allowed := map[float64]bool{MultiplierStrong: true, MultiplierNeutral: true, MultiplierWeak: true}
	for _, a := range model.Elements() {
		for _, d := range model.Elements() {
			assert.True(t, allowed[Effectiveness(a, d)], "%s vs %s", a, d)
		}
	}

	// Out-of-range values are neutral, never a panic.
	assert.Equal(t, MultiplierNeutral, Effectiveness(model.Element(42), model.ElementFire))
	assert.Equal(t, MultiplierNeutral, Effectiveness(model.ElementFire, model.Element(-1)))
}

func TestEffectiveness_NoNeutralElement(t *testing.T) {
	for _, a := range model.Elements() {
		var strong, weak bool
		for _, d := range model.Elements() {
			switch Effectiveness(a, d) {
			case MultiplierStrong:
				strong = true
			case MultiplierWeak:
				weak = true
			}
		}
		assert.True(t, strong, "%s has no strong matchup", a)
		assert.True(t, weak, "%s has no weak matchup", a)
	}
}

func TestEffectiveness_ChartNeverSelfReferences(t *testing.T) {
	for _, e := range model.Elements() {
		assert.NotContains(t, StrongAgainst(e), e)
		assert.NotContains(t, WeakAgainst(e), e)
	}
}

func TestEffectivenessTag(t *testing.T) {
	assert.Equal(t, model.EffectSuperEffective, EffectivenessTag(MultiplierStrong))
	assert.Equal(t, model.EffectNotVeryEffective, EffectivenessTag(MultiplierWeak))
	assert.Empty(t, EffectivenessTag(MultiplierNeutral))
}

package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcDamage(t *testing.T) {
	tests := []struct {
		name string
		in   DamageInput
		want int32
	}{
		{
			name: "neutral",
			in:   DamageInput{Attack: 100, Defense: 40, Power: 50, Multiplier: 1.0, RandomFactor: 1.0},
			want: 30, // 50 - 20
		},
		{
			name: "super effective",
			in:   DamageInput{Attack: 13, Defense: 10, Power: 50, Multiplier: 1.5, RandomFactor: 1.0},
			want: 2, // 1.5 × 1.5 = 2.25
		},
		{
			name: "critical",
			in:   DamageInput{Attack: 13, Defense: 10, Power: 50, Multiplier: 1.5, Critical: true, RandomFactor: 1.0},
			want: 3, // 2.25 × 1.5 = 3.375
		},
		{
			name: "defense swallows the hit",
			in:   DamageInput{Attack: 10, Defense: 40, Power: 120, Multiplier: 1.5, Critical: true, RandomFactor: 1.15},
			want: 0,
		},
		{
			name: "low variance",
			in:   DamageInput{Attack: 200, Defense: 0, Power: 100, Multiplier: 1.0, RandomFactor: 0.85},
			want: 170,
		},
		{
			name: "zero power",
			in:   DamageInput{Attack: 200, Defense: 0, Power: 0, Multiplier: 1.5, RandomFactor: 1.0},
			want: 0,
		},
		{
			name: "overflow clamps",
			in:   DamageInput{Attack: math.MaxInt32, Defense: 0, Power: 1000, Multiplier: 1.5, Critical: true, RandomFactor: 1.15},
			want: math.MaxInt32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcDamage(tt.in))
		})
	}
}

func TestCritChance(t *testing.T) {
	tests := []struct {
		name     string
		atk, def int32
		want     float64
	}{
		{"equal speed", 10, 10, 12.5},
		{"attacker only", 10, 0, 25},
		{"slow attacker", 10, 30, 6.25},
		{"both zero", 0, 0, 0},
		{"negative treated as zero", -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CritChance(tt.atk, tt.def)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, critChanceCap)
		})
	}
}

func TestCalcHit(t *testing.T) {
	assert.True(t, CalcHit(100, script(0.9999)))
	assert.False(t, CalcHit(0, script(0)))
	assert.True(t, CalcHit(75, script(0.7499)))
	assert.False(t, CalcHit(75, script(0.75)))
}

func TestRandomFactorRange(t *testing.T) {
	assert.InDelta(t, 0.85, RandomFactor(script(0)), 1e-12)
	assert.InDelta(t, 1.0, RandomFactor(script(0.5)), 1e-12)
	assert.Less(t, RandomFactor(script(0.999999)), 1.15)
}

package combat

import (
	"testing"

	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

// BenchmarkCalcDamage benchmarks the pure damage formula.
// Expected: ~5ns, 0 allocs.
func BenchmarkCalcDamage(b *testing.B) {
	in := DamageInput{Attack: 120, Defense: 60, Power: 80, Multiplier: 1.5, Critical: true, RandomFactor: 1.02}
	b.ReportAllocs()
	for range b.N {
		_ = CalcDamage(in)
	}
}

// BenchmarkCalcCrit benchmarks one critical roll (single RNG draw).
func BenchmarkCalcCrit(b *testing.B) {
	rng := random.NewSource(1)
	b.ReportAllocs()
	for range b.N {
		_ = CalcCrit(40, 35, rng)
	}
}

// BenchmarkEngineResolve benchmarks a full hit resolution including log entry
// construction. Battlers are rebuilt when the target falls.
func BenchmarkEngineResolve(b *testing.B) {
	rng := random.NewSource(1)
	newPair := func() (*Battler, *Battler) {
		a := testBattler(b, "A", model.SideAttacker, model.ElementFire, model.PowerSingle, 50)
		d := testBattler(b, "D", model.SideDefender, model.ElementEarth, model.PowerSingle, 50)
		return a, d
	}
	a, d := newPair()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := (Engine{}).Resolve(a, d, 0, 1, rng); err != nil {
			b.Fatal(err)
		}
		if d.IsDefeated() {
			b.StopTimer()
			a, d = newPair()
			b.StartTimer()
		}
	}
}

// BenchmarkAvailableSlots benchmarks the policy hot path.
func BenchmarkAvailableSlots(b *testing.B) {
	a := testBattler(b, "A", model.SideAttacker, model.ElementLight, model.PowerCombined, 10)
	a.setCooldown(1, 2)
	b.ReportAllocs()
	for range b.N {
		_ = a.AvailableSlots()
	}
}

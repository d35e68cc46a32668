package combat

import (
	"math"

	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

// Formula constants.
const (
	defenseFactor     = 0.5
	critMultiplier    = 1.5
	critChanceCap     = 30.0 // percent
	critSpeedScale    = 25.0 // percent at full speed share
	varianceMin       = 0.85
	varianceSpread    = 0.30 // varianceMin + spread = 1.15
	percentScale      = 100.0
	skillPowerDivisor = 100.0
)

// CalcHit rolls accuracy: a uniform draw in [0, 100) hits iff it is below
// accuracy. Accuracy 0 never hits, 100 always does. Consumes one draw.
func CalcHit(accuracy int32, rng random.Source) bool {
	return rng.Float64()*percentScale < float64(accuracy)
}

// CritChance returns the critical chance in percent: the attacker's share of
// the combined speed scaled to 25%, capped at 30%. Zero speeds give 0.
func CritChance(attackerSpeed, defenderSpeed int32) float64 {
	a := math.Max(0, float64(attackerSpeed))
	d := math.Max(0, float64(defenderSpeed))
	if a+d <= 0 {
		return 0
	}
	return math.Min(critChanceCap, a/(a+d)*critSpeedScale)
}

// CalcCrit rolls a critical hit. Consumes one draw.
func CalcCrit(attackerSpeed, defenderSpeed int32, rng random.Source) bool {
	return rng.Float64()*percentScale < CritChance(attackerSpeed, defenderSpeed)
}

// RandomFactor draws the damage variance in [0.85, 1.15). Consumes one draw.
func RandomFactor(rng random.Source) float64 {
	return varianceMin + rng.Float64()*varianceSpread
}

// DamageInput holds every factor of the damage formula so it can be computed
// without a random source.
type DamageInput struct {
	Attack       int32
	Defense      int32
	Power        int32
	Multiplier   float64 // type chart effectiveness
	Critical     bool
	RandomFactor float64
}

// CalcDamage applies the damage formula:
//
//	raw     = attack × power/100
//	reduced = max(0, raw − defense × 0.5)
//	final   = floor(reduced × effectiveness × (1.5 if critical) × randomFactor)
//
// The result is clamped into [0, MaxInt32]. Zero is a legal outcome.
func CalcDamage(in DamageInput) int32 {
	raw := float64(in.Attack) * float64(in.Power) / skillPowerDivisor
	reduced := math.Max(0, raw-float64(in.Defense)*defenseFactor)

	crit := 1.0
	if in.Critical {
		crit = critMultiplier
	}
	return clampDamage(reduced * in.Multiplier * crit * in.RandomFactor)
}

// damageFor computes damage of skill from actor to target with explicit rolls.
func damageFor(actor, target *Battler, skill model.Skill, critical bool, randomFactor float64) (int32, float64) {
	mult := data.Effectiveness(actor.element, target.element)
	return CalcDamage(DamageInput{
		Attack:       actor.stats.Attack,
		Defense:      target.stats.Defense,
		Power:        skill.Power,
		Multiplier:   mult,
		Critical:     critical,
		RandomFactor: randomFactor,
	}), mult
}

func clampDamage(v float64) int32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	f := math.Floor(v)
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(f)
}

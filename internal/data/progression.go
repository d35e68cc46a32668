package data

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/dragonarena/internal/model"
)

// ErrInvalidLevel is returned for levels outside [1, MaxLevel].
var ErrInvalidLevel = errors.New("invalid level")

// Base stat formula constants.
const (
	baseStat            = 10
	elementBonusPerStep = 2 // bonus per element index

	hpWeight      = 10.0
	defenseWeight = 0.8
	speedWeight   = 1.2

	hpLevelGrowth      = 1.10
	attackLevelGrowth  = 1.08
	defenseLevelGrowth = 1.08
	speedLevelGrowth   = 1.05
)

// Level-up multipliers applied on top of the current stats.
const (
	levelUpHP      = 1.10
	levelUpAttack  = 1.08
	levelUpDefense = 1.08
	levelUpSpeed   = 1.05
)

// statEpsilon absorbs float64 representation error before flooring.
const statEpsilon = 1e-9

// TierMultiplierPercent returns the stat multiplier of a power tier in percent
// (single 100, dual 120, combined 150).
func TierMultiplierPercent(tier model.PowerTier) int32 {
	switch tier {
	case model.PowerDual:
		return 120
	case model.PowerCombined:
		return 150
	default:
		return 100
	}
}

// ElementBonus returns the flat bonus an element adds to the HP base.
func ElementBonus(e model.Element) int32 {
	return int32(e) * elementBonusPerStep
}

// hpBase is floor((baseStat + elementBonus) × tierMultiplier).
func hpBase(e model.Element, tier model.PowerTier) int32 {
	return (baseStat + ElementBonus(e)) * TierMultiplierPercent(tier) / 100
}

// combatBase is floor(baseStat × tierMultiplier). Attack, defense and speed
// depend only on tier and level, so same-tier same-level creatures of
// different elements differ only by type chart and HP.
func combatBase(tier model.PowerTier) int32 {
	return baseStat * TierMultiplierPercent(tier) / 100
}

// DeriveStats computes the stat snapshot of a creature at the given level.
// HP is full and Exp is zero.
//
// HP grows by 10% per level, attack/defense by 8% and speed by 5%, so high
// level battles are shorter and swingier than low level ones.
func DeriveStats(e model.Element, tier model.PowerTier, level int32) (model.DerivedStats, error) {
	if !e.Valid() {
		return model.DerivedStats{}, fmt.Errorf("deriving stats: %w: %d", model.ErrInvalidElement, e)
	}
	if !tier.Valid() {
		return model.DerivedStats{}, fmt.Errorf("deriving stats: %w: %d", model.ErrInvalidPowerTier, tier)
	}
	if level < 1 || level > MaxLevel {
		return model.DerivedStats{}, fmt.Errorf("deriving stats: %w: %d", ErrInvalidLevel, level)
	}

	hp := float64(hpBase(e, tier))
	base := float64(combatBase(tier))
	steps := float64(level - 1)

	maxHP := floorStat(hp * hpWeight * math.Pow(hpLevelGrowth, steps))
	return model.DerivedStats{
		HP:             maxHP,
		MaxHP:          maxHP,
		Attack:         floorStat(base * math.Pow(attackLevelGrowth, steps)),
		Defense:        floorStat(base * defenseWeight * math.Pow(defenseLevelGrowth, steps)),
		Speed:          floorStat(base * speedWeight * math.Pow(speedLevelGrowth, steps)),
		Level:          level,
		Exp:            0,
		ExpToNextLevel: ExpToNextLevel(level),
	}, nil
}

// StatsFor derives stats for a creature definition and carries its stored
// experience, clamped below the current threshold.
func StatsFor(def model.CreatureDefinition) (model.DerivedStats, error) {
	if err := def.Validate(); err != nil {
		return model.DerivedStats{}, err
	}
	stats, err := DeriveStats(def.Element, def.PowerTier, def.Level)
	if err != nil {
		return model.DerivedStats{}, fmt.Errorf("creature %d: %w", def.ID, err)
	}
	stats.Exp = min(def.Experience, stats.ExpToNextLevel-1)
	return stats, nil
}

// LevelUpResult is the outcome of CheckLevelUp.
type LevelUpResult struct {
	LeveledUp bool
	Levels    int32 // number of levels gained
	NewStats  model.DerivedStats
}

// CheckLevelUp adds expGained to stats and applies every level-up it pays for.
//
// Level-ups cascade: while the carried-over exp still reaches the next
// threshold, another level is applied. Each level-up subtracts the threshold
// (carry-over, not reset), recomputes it, grows MaxHP ×1.10, Attack and
// Defense ×1.08, Speed ×1.05 and refills HP. At MaxLevel exp is held just
// below the threshold. Negative expGained counts as zero.
func CheckLevelUp(stats model.DerivedStats, expGained int64) LevelUpResult {
	out := stats
	if expGained > 0 {
		out.Exp += expGained
	}
	if out.ExpToNextLevel <= 0 {
		out.ExpToNextLevel = ExpToNextLevel(out.Level)
	}

	var levels int32
	for out.Exp >= out.ExpToNextLevel && out.Level < MaxLevel {
		out.Exp -= out.ExpToNextLevel
		out.Level++
		out.ExpToNextLevel = ExpToNextLevel(out.Level)

		out.MaxHP = floorStat(float64(out.MaxHP) * levelUpHP)
		out.Attack = floorStat(float64(out.Attack) * levelUpAttack)
		out.Defense = floorStat(float64(out.Defense) * levelUpDefense)
		out.Speed = floorStat(float64(out.Speed) * levelUpSpeed)
		out.HP = out.MaxHP
		levels++
	}

	if out.Level >= MaxLevel && out.Exp >= out.ExpToNextLevel {
		out.Exp = out.ExpToNextLevel - 1
	}

	if levels > 1 {
		slog.Debug("cascading level-up",
			"fromLevel", stats.Level,
			"toLevel", out.Level,
			"carriedExp", out.Exp)
	}

	return LevelUpResult{
		LeveledUp: levels > 0,
		Levels:    levels,
		NewStats:  out,
	}
}

// floorStat floors a non-negative stat and clamps it into int32.
func floorStat(v float64) int32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	f := math.Floor(v + statEpsilon)
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(f)
}

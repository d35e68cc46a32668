package data

import "math"

// MaxLevel is the highest level a creature can reach.
const MaxLevel = 100

// expCurveBase and expCurveExponent define floor(base × level^exponent).
const (
	expCurveBase     = 100.0
	expCurveExponent = 1.5
)

// ExperienceTable holds the experience needed to advance from each level to
// the next. Index = level (1..MaxLevel); index 0 is unused.
var ExperienceTable [MaxLevel + 1]int64

func init() {
	for level := 1; level <= MaxLevel; level++ {
		ExperienceTable[level] = int64(math.Floor(expCurveBase * math.Pow(float64(level), expCurveExponent)))
	}
}

// ExpToNextLevel returns floor(100 × level^1.5), the experience needed to
// leave the given level. Levels below 1 are treated as 1, levels above
// MaxLevel as MaxLevel.
func ExpToNextLevel(level int32) int64 {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return ExperienceTable[level]
}

// TotalExpForLevel returns the cumulative experience needed to reach level
// from level 1 with no carry-over.
func TotalExpForLevel(level int32) int64 {
	if level > MaxLevel {
		level = MaxLevel
	}
	var total int64
	for l := int32(1); l < level; l++ {
		total += ExperienceTable[l]
	}
	return total
}

package combat

import (
	"log/slog"

	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/model"
)

// Experience award constants.
const (
	BaseExpAward   = 50
	ExpPerLevelGap = 10
)

// AwardExperience returns the experience earned by the winner:
// 50 plus 10 per level the loser was above the winner. Deterministic.
func AwardExperience(winnerLevel, loserLevel int32) int64 {
	gap := max(0, int64(loserLevel)-int64(winnerLevel))
	return BaseExpAward + gap*ExpPerLevelGap
}

// RewardExperience feeds an award into the progression model and logs any
// level-up. name is only used for logging.
func RewardExperience(name string, stats model.DerivedStats, exp int64) data.LevelUpResult {
	res := data.CheckLevelUp(stats, exp)
	if res.LeveledUp {
		slog.Info("creature leveled up",
			"creature", name,
			"oldLevel", stats.Level,
			"newLevel", res.NewStats.Level,
			"levels", res.Levels,
			"exp", res.NewStats.Exp)
	}
	return res
}

package arena

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/dragonarena/internal/game/battle"
	"github.com/udisondev/dragonarena/internal/game/combat"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

// SimulationConfig configures a balance run.
type SimulationConfig struct {
	BattlesPerMatchup int
	Workers           int
	Level             int32
	Tier              model.PowerTier
	MaxTurns          int32
	SeedKey           string // seeds derive from SeedKey, the matchup and the battle index
}

// MatchupStats aggregates the battles of one attacker/defender element pair.
type MatchupStats struct {
	Attacker     model.Element
	Defender     model.Element
	Battles      int
	AttackerWins int
	DefenderWins int
	TimeLimits   int
	TotalTurns   int64
}

// AttackerWinRate returns the share of battles won by the attacker.
func (m MatchupStats) AttackerWinRate() float64 {
	if m.Battles == 0 {
		return 0
	}
	return float64(m.AttackerWins) / float64(m.Battles)
}

// AvgTurns returns the mean number of resolved actions per battle.
func (m MatchupStats) AvgTurns() float64 {
	if m.Battles == 0 {
		return 0
	}
	return float64(m.TotalTurns) / float64(m.Battles)
}

// Simulate runs every attacker/defender element pair (mirrors included) at the
// same level and tier and returns one MatchupStats per pair, in element order.
// Matchups run concurrently, each in its own goroutine with its own sessions.
// The result depends only on cfg.
func Simulate(ctx context.Context, cfg SimulationConfig) ([]MatchupStats, error) {
	if cfg.BattlesPerMatchup <= 0 {
		return nil, fmt.Errorf("battles per matchup must be positive, got %d", cfg.BattlesPerMatchup)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	elements := model.Elements()
	results := make([]MatchupStats, len(elements)*len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, a := range elements {
		for j, d := range elements {
			idx := i*len(elements) + j
			g.Go(func() error {
				stats, err := simulateMatchup(gctx, cfg, a, d)
				if err != nil {
					return fmt.Errorf("matchup %s vs %s: %w", a, d, err)
				}
				results[idx] = stats
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("simulation finished",
		"matchups", len(results),
		"battlesPerMatchup", cfg.BattlesPerMatchup,
		"level", cfg.Level,
		"tier", cfg.Tier)

	return results, nil
}

func simulateMatchup(ctx context.Context, cfg SimulationConfig, a, d model.Element) (MatchupStats, error) {
	stats := MatchupStats{Attacker: a, Defender: d}
	opts := battle.Options{MaxTurns: cfg.MaxTurns}

	for n := range cfg.BattlesPerMatchup {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		att, err := combat.NewBattler(model.CreatureDefinition{ID: 1, Element: a, PowerTier: cfg.Tier, Level: cfg.Level}, model.SideAttacker)
		if err != nil {
			return stats, err
		}
		def, err := combat.NewBattler(model.CreatureDefinition{ID: 2, Element: d, PowerTier: cfg.Tier, Level: cfg.Level}, model.SideDefender)
		if err != nil {
			return stats, err
		}

		seed := random.DeriveSeed(cfg.SeedKey, a.String(), d.String(), strconv.Itoa(n))
		sess, err := battle.NewSession(fmt.Sprintf("sim-%s-%s-%d", a, d, n), att, def, seed, opts)
		if err != nil {
			return stats, err
		}
		if err := sess.Run(ctx); err != nil {
			return stats, err
		}
		res, err := sess.Result()
		if err != nil {
			return stats, err
		}

		stats.Battles++
		stats.TotalTurns += int64(res.Turns)
		if res.TimeLimit {
			stats.TimeLimits++
		}
		if res.Winner == model.SideAttacker {
			stats.AttackerWins++
		} else {
			stats.DefenderWins++
		}
	}
	return stats, nil
}

// simulate runs the element matchup matrix and prints attacker win rates.
//
// Usage:
//
//	go run ./cmd/simulate
//	go run ./cmd/simulate -battles 500 -level 40 -tier combined
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/udisondev/dragonarena/internal/ai"
	"github.com/udisondev/dragonarena/internal/arena"
	"github.com/udisondev/dragonarena/internal/config"
	"github.com/udisondev/dragonarena/internal/model"
)

const ConfigPath = "config/arena.yaml"

func main() {
	configPath := flag.String("config", ConfigPath, "path to arena.yaml")
	battles := flag.Int("battles", 0, "battles per matchup (0 = from config)")
	level := flag.Int("level", 0, "creature level (0 = from config)")
	tier := flag.String("tier", "single", "power tier: single, dual or combined")
	seedKey := flag.String("seed-key", "balance", "key the battle seeds derive from")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *battles, *level, *tier, *seedKey); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, battles, level int, tierName, seedKey string) error {
	cfg, err := config.LoadArena(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel <= slog.LevelDebug)

	tier, err := model.ParsePowerTier(tierName)
	if err != nil {
		return err
	}

	simCfg := arena.SimulationConfig{
		BattlesPerMatchup: cfg.Simulation.BattlesPerMatchup,
		Workers:           cfg.Simulation.Workers,
		Level:             cfg.Simulation.Level,
		Tier:              tier,
		MaxTurns:          cfg.Battle.MaxTurns,
		SeedKey:           seedKey,
	}
	if battles > 0 {
		simCfg.BattlesPerMatchup = battles
	}
	if level > 0 {
		simCfg.Level = int32(level)
	}

	stats, err := arena.Simulate(ctx, simCfg)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	printMatrix(os.Stdout, stats)
	return nil
}

// printMatrix prints attacker win rates: rows are attackers, columns defenders.
func printMatrix(out io.Writer, stats []arena.MatchupStats) {
	elements := model.Elements()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "atk \\ def\t")
	for _, d := range elements {
		fmt.Fprintf(w, "%s\t", d)
	}
	fmt.Fprintln(w)

	for i, a := range elements {
		fmt.Fprintf(w, "%s\t", a)
		for j := range elements {
			fmt.Fprintf(w, "%.0f%%\t", stats[i*len(elements)+j].AttackerWinRate()*100)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// arena runs persisted dragon battles.
//
// Usage:
//
//	go run ./cmd/arena -create "Ember,fire,single,5"
//	go run ./cmd/arena -attacker 1 -defender 2
//	go run ./cmd/arena -attacker 1 -defender 2 -seed-key "block-81244"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/udisondev/dragonarena/internal/ai"
	"github.com/udisondev/dragonarena/internal/arena"
	"github.com/udisondev/dragonarena/internal/config"
	"github.com/udisondev/dragonarena/internal/db"
	"github.com/udisondev/dragonarena/internal/model"
)

const ConfigPath = "config/arena.yaml"

type options struct {
	configPath string
	create     string
	attacker   int64
	defender   int64
	seed       int64
	seedKey    string
	quiet      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", ConfigPath, "path to arena.yaml (ARENA_CONFIG overrides)")
	flag.StringVar(&opts.create, "create", "", `create a creature: "name,element,tier,level"`)
	flag.Int64Var(&opts.attacker, "attacker", 0, "attacking creature id")
	flag.Int64Var(&opts.defender, "defender", 0, "defending creature id")
	flag.Int64Var(&opts.seed, "seed", 0, "battle seed (0 = derive or random)")
	flag.StringVar(&opts.seedKey, "seed-key", "", "derive the seed from this key")
	flag.BoolVar(&opts.quiet, "quiet", false, "do not print the battle log")
	flag.Parse()

	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		opts.configPath = p
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadArena(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel <= slog.LevelDebug)

	database, err := db.New(ctx, cfg.Database.DSN(), db.WithMaxConns(cfg.Database.MaxConns))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	creatures := db.NewCreatureRepository(database.Pool())

	if opts.create != "" {
		def, err := parseCreature(opts.create)
		if err != nil {
			return err
		}
		id, err := creatures.Create(ctx, def)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s, %s, level %d) with id %d\n", def.Name, def.Element, def.PowerTier, def.Level, id)
		return nil
	}

	if opts.attacker == 0 || opts.defender == 0 {
		return fmt.Errorf("both -attacker and -defender are required")
	}

	battles := db.NewBattleRepository(database.Pool())
	svc := arena.NewService(creatures, db.NewBattlePersistenceService(database.Pool(), creatures, battles), cfg)

	res, err := svc.Fight(ctx, arena.FightRequest{
		AttackerID: opts.attacker,
		DefenderID: opts.defender,
		Seed:       opts.seed,
		SeedKey:    opts.seedKey,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		for _, e := range res.Result.Log {
			fmt.Printf("[%3d] %-60s  A %d/%d  D %d/%d\n",
				e.Turn, e.Narrative, e.AttackerHP, e.AttackerMaxHP, e.DefenderHP, e.DefenderMaxHP)
		}
	}
	fmt.Printf("battle %d: winner creature %d after %d turns (seed %d), +%d exp",
		res.BattleID, res.Result.WinnerID, res.Result.Turns, res.Result.Seed, res.Outcome.ExpAwarded)
	if lu := res.Outcome.LevelUp; lu.LeveledUp {
		fmt.Printf(", level up to %d", lu.NewStats.Level)
	}
	fmt.Println()
	return nil
}

// parseCreature parses "name,element,tier,level".
func parseCreature(s string) (model.CreatureDefinition, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.CreatureDefinition{}, fmt.Errorf("creature %q: want name,element,tier,level", s)
	}
	element, err := model.ParseElement(parts[1])
	if err != nil {
		return model.CreatureDefinition{}, err
	}
	tier, err := model.ParsePowerTier(parts[2])
	if err != nil {
		return model.CreatureDefinition{}, err
	}
	level, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 32)
	if err != nil {
		return model.CreatureDefinition{}, fmt.Errorf("creature %q: level: %w", s, err)
	}
	return model.CreatureDefinition{
		Name:      strings.TrimSpace(parts[0]),
		Element:   element,
		PowerTier: tier,
		Level:     int32(level),
	}, nil
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

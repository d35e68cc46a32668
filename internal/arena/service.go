// Package arena wires battle sessions to storage: it loads two creatures,
// runs their battle and persists the result with the winner's progression.
package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/dragonarena/internal/config"
	"github.com/udisondev/dragonarena/internal/db"
	"github.com/udisondev/dragonarena/internal/game/battle"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

// ErrCreatureNotFound is returned when a requested creature does not exist.
var ErrCreatureNotFound = errors.New("creature not found")

// CreatureStore loads creature definitions.
// LoadByID returns nil, nil when the creature does not exist.
type CreatureStore interface {
	LoadByID(ctx context.Context, creatureID int64) (*model.CreatureDefinition, error)
}

// BattleStore persists a finished battle together with the winner's progress.
type BattleStore interface {
	SaveBattle(ctx context.Context, rec db.BattleRecord, winner db.Progress) (int64, error)
}

// FightRequest names the two creatures and how the seed is chosen:
// Seed if non-zero, else DeriveSeed(SeedKey) if set, else the configured
// default seed, else a fresh random seed.
type FightRequest struct {
	AttackerID int64
	DefenderID int64
	Seed       int64
	SeedKey    string
}

// FightResult is the outcome of Service.Fight.
type FightResult struct {
	BattleID int64
	Result   battle.Result
	Outcome  battle.Outcome
}

// Service runs persisted battles.
type Service struct {
	creatures   CreatureStore
	battles     BattleStore
	manager     *battle.Manager
	defaultSeed int64
}

// NewService creates an arena service configured from cfg.
func NewService(creatures CreatureStore, battles BattleStore, cfg config.Arena) *Service {
	return &Service{
		creatures: creatures,
		battles:   battles,
		manager: battle.NewManager(battle.Options{
			MaxTurns: cfg.Battle.MaxTurns,
			ExpRate:  cfg.Rates.Experience,
		}),
		defaultSeed: cfg.Battle.DefaultSeed,
	}
}

// Manager exposes the registry of in-flight sessions.
func (s *Service) Manager() *battle.Manager { return s.manager }

// Fight loads both creatures, runs their battle to completion and persists it.
func (s *Service) Fight(ctx context.Context, req FightRequest) (FightResult, error) {
	attacker, err := s.loadCreature(ctx, req.AttackerID)
	if err != nil {
		return FightResult{}, fmt.Errorf("attacker: %w", err)
	}
	defender, err := s.loadCreature(ctx, req.DefenderID)
	if err != nil {
		return FightResult{}, fmt.Errorf("defender: %w", err)
	}

	seed, err := s.seedFor(req)
	if err != nil {
		return FightResult{}, err
	}

	sess, err := s.manager.Create(*attacker, *defender, seed)
	if err != nil {
		return FightResult{}, fmt.Errorf("creating battle: %w", err)
	}
	defer s.manager.Remove(sess.ID())

	if err := sess.Run(ctx); err != nil {
		return FightResult{}, fmt.Errorf("running battle: %w", err)
	}

	res, err := sess.Result()
	if err != nil {
		return FightResult{}, err
	}
	out, err := sess.Outcome()
	if err != nil {
		return FightResult{}, err
	}

	rec := db.BattleRecord{
		SessionID:  res.SessionID,
		Seed:       res.Seed,
		AttackerID: attacker.ID,
		DefenderID: defender.ID,
		WinnerID:   res.WinnerID,
		LoserID:    res.LoserID,
		Turns:      res.Turns,
		TimeLimit:  res.TimeLimit,
		ExpAwarded: out.ExpAwarded,
		Log:        res.Log,
	}
	progress := db.Progress{
		CreatureID: out.WinnerID,
		Level:      out.LevelUp.NewStats.Level,
		Experience: out.LevelUp.NewStats.Exp,
	}

	battleID, err := s.battles.SaveBattle(ctx, rec, progress)
	if err != nil {
		slog.Error("failed to persist battle",
			"session", res.SessionID,
			"seed", res.Seed,
			"error", err)
		return FightResult{}, fmt.Errorf("persisting battle: %w", err)
	}

	slog.Info("fight completed",
		"battleID", battleID,
		"winnerID", res.WinnerID,
		"turns", res.Turns,
		"exp", out.ExpAwarded,
		"leveledUp", out.LevelUp.LeveledUp)

	return FightResult{BattleID: battleID, Result: res, Outcome: out}, nil
}

func (s *Service) loadCreature(ctx context.Context, id int64) (*model.CreatureDefinition, error) {
	def, err := s.creatures.LoadByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading creature %d: %w", id, err)
	}
	if def == nil {
		return nil, fmt.Errorf("creature %d: %w", id, ErrCreatureNotFound)
	}
	return def, nil
}

func (s *Service) seedFor(req FightRequest) (int64, error) {
	switch {
	case req.Seed != 0:
		return req.Seed, nil
	case req.SeedKey != "":
		return random.DeriveSeed(req.SeedKey), nil
	case s.defaultSeed != 0:
		return s.defaultSeed, nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("generating battle seed: %w", err)
	}
	return seed, nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Progress is a creature's level and experience after a battle.
type Progress struct {
	CreatureID int64
	Level      int32
	Experience int64
}

// BattlePersistenceService атомарно сохраняет результат боя и прогресс победителя.
type BattlePersistenceService struct {
	pool         *pgxpool.Pool
	creatureRepo *CreatureRepository
	battleRepo   *BattleRepository
}

// NewBattlePersistenceService создаёт новый сервис.
func NewBattlePersistenceService(
	pool *pgxpool.Pool,
	creatureRepo *CreatureRepository,
	battleRepo *BattleRepository,
) *BattlePersistenceService {
	return &BattlePersistenceService{
		pool:         pool,
		creatureRepo: creatureRepo,
		battleRepo:   battleRepo,
	}
}

// SaveBattle saves the battle record, its log and the winner's progress in a
// single transaction. Either all data is saved or none.
func (s *BattlePersistenceService) SaveBattle(ctx context.Context, rec BattleRecord, winner Progress) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for battle %s: %w", rec.SessionID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "session", rec.SessionID, "error", err)
		}
	}()

	// 1. Save battle + log
	battleID, err := s.battleRepo.SaveTx(ctx, tx, rec)
	if err != nil {
		return 0, fmt.Errorf("saving battle %s: %w", rec.SessionID, err)
	}

	// 2. Save winner progression
	if err := s.creatureRepo.UpdateProgressTx(ctx, tx, winner.CreatureID, winner.Level, winner.Experience); err != nil {
		return 0, fmt.Errorf("saving progress for battle %s: %w", rec.SessionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction for battle %s: %w", rec.SessionID, err)
	}

	slog.Info("battle saved",
		"battleID", battleID,
		"session", rec.SessionID,
		"winnerID", winner.CreatureID,
		"level", winner.Level,
		"exp", winner.Experience,
		"entries", len(rec.Log))

	return battleID, nil
}

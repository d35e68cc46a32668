package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dragonarena/internal/model"
)

// BattleRecord is a persisted battle result with its log.
type BattleRecord struct {
	ID         int64
	SessionID  string
	Seed       int64
	AttackerID int64
	DefenderID int64
	WinnerID   int64
	LoserID    int64
	Turns      int32
	TimeLimit  bool
	ExpAwarded int64
	CreatedAt  time.Time
	Log        []model.TurnLogEntry
}

// BattleRepository управляет историей боёв в БД.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository создаёт новый BattleRepository.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

var battleLogColumns = []string{
	"battle_id", "seq", "turn", "actor", "narrative", "skill_id",
	"damage", "healing", "effect", "tags",
	"attacker_hp", "attacker_max_hp", "defender_hp", "defender_max_hp",
}

// SaveTx inserts a battle and its log within a transaction and returns the battle ID.
func (r *BattleRepository) SaveTx(ctx context.Context, tx pgx.Tx, rec BattleRecord) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO battles (session_id, seed, attacker_id, defender_id, winner_id, loser_id,
		                      turns, time_limit, exp_awarded)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING battle_id`,
		rec.SessionID, rec.Seed, rec.AttackerID, rec.DefenderID, rec.WinnerID, rec.LoserID,
		rec.Turns, rec.TimeLimit, rec.ExpAwarded,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting battle %s: %w", rec.SessionID, err)
	}

	if len(rec.Log) > 0 {
		rows := make([][]any, 0, len(rec.Log))
		for i, e := range rec.Log {
			tags := e.Tags
			if tags == nil {
				tags = []string{}
			}
			rows = append(rows, []any{
				id, int32(i), e.Turn, int16(e.Actor), e.Narrative, e.SkillID,
				e.Damage, e.Healing, e.Effect, tags,
				e.AttackerHP, e.AttackerMaxHP, e.DefenderHP, e.DefenderMaxHP,
			})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"battle_log"}, battleLogColumns, pgx.CopyFromRows(rows)); err != nil {
			return 0, fmt.Errorf("inserting log of battle %d: %w", id, err)
		}
	}

	slog.Debug("saved battle",
		"battleID", id,
		"session", rec.SessionID,
		"entries", len(rec.Log))

	return id, nil
}

// LoadByID загружает бой вместе с логом.
// Возвращает nil если бой не найден (не ошибка).
func (r *BattleRepository) LoadByID(ctx context.Context, battleID int64) (*BattleRecord, error) {
	var rec BattleRecord
	err := r.db.QueryRow(ctx,
		`SELECT battle_id, session_id, seed, attacker_id, defender_id, winner_id, loser_id,
		        turns, time_limit, exp_awarded, created_at
		 FROM battles
		 WHERE battle_id = $1`, battleID,
	).Scan(&rec.ID, &rec.SessionID, &rec.Seed, &rec.AttackerID, &rec.DefenderID, &rec.WinnerID, &rec.LoserID,
		&rec.Turns, &rec.TimeLimit, &rec.ExpAwarded, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying battle %d: %w", battleID, err)
	}

	log, err := r.loadLog(ctx, battleID)
	if err != nil {
		return nil, err
	}
	rec.Log = log
	return &rec, nil
}

// ListByCreature returns the latest battles a creature took part in, without logs.
func (r *BattleRepository) ListByCreature(ctx context.Context, creatureID int64, limit int) ([]BattleRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT battle_id, session_id, seed, attacker_id, defender_id, winner_id, loser_id,
		        turns, time_limit, exp_awarded, created_at
		 FROM battles
		 WHERE attacker_id = $1 OR defender_id = $1
		 ORDER BY created_at DESC, battle_id DESC
		 LIMIT $2`, creatureID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying battles of creature %d: %w", creatureID, err)
	}
	defer rows.Close()

	var result []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Seed, &rec.AttackerID, &rec.DefenderID, &rec.WinnerID, &rec.LoserID,
			&rec.Turns, &rec.TimeLimit, &rec.ExpAwarded, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle rows: %w", err)
	}
	return result, nil
}

func (r *BattleRepository) loadLog(ctx context.Context, battleID int64) ([]model.TurnLogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT turn, actor, narrative, skill_id, damage, healing, effect, tags,
		        attacker_hp, attacker_max_hp, defender_hp, defender_max_hp
		 FROM battle_log
		 WHERE battle_id = $1
		 ORDER BY seq`, battleID)
	if err != nil {
		return nil, fmt.Errorf("querying log of battle %d: %w", battleID, err)
	}
	defer rows.Close()

	result := make([]model.TurnLogEntry, 0, 64)
	for rows.Next() {
		var e model.TurnLogEntry
		var actor int16
		if err := rows.Scan(&e.Turn, &actor, &e.Narrative, &e.SkillID, &e.Damage, &e.Healing, &e.Effect, &e.Tags,
			&e.AttackerHP, &e.AttackerMaxHP, &e.DefenderHP, &e.DefenderMaxHP); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		e.Actor = model.Side(actor)
		if len(e.Tags) == 0 {
			e.Tags = nil
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log rows: %w", err)
	}
	return result, nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dragonarena/internal/model"
)

// CreatureRepository управляет существами (драконами) в БД.
type CreatureRepository struct {
	db *pgxpool.Pool
}

// NewCreatureRepository создаёт новый CreatureRepository.
func NewCreatureRepository(db *pgxpool.Pool) *CreatureRepository {
	return &CreatureRepository{db: db}
}

// Create inserts a creature and returns its ID. def.ID is ignored.
func (r *CreatureRepository) Create(ctx context.Context, def model.CreatureDefinition) (int64, error) {
	if def.Level == 0 {
		def.Level = 1
	}
	if err := def.Validate(); err != nil {
		return 0, fmt.Errorf("creating creature: %w", err)
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO creatures (name, element, power_tier, level, experience)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING creature_id`,
		def.Name, int16(def.Element), int16(def.PowerTier), def.Level, def.Experience,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting creature %q: %w", def.Name, err)
	}

	slog.Debug("creature created",
		"creatureID", id,
		"element", def.Element,
		"tier", def.PowerTier,
		"level", def.Level)

	return id, nil
}

// LoadByID загружает существо по ID.
// Возвращает nil если существо не найдено (не ошибка).
func (r *CreatureRepository) LoadByID(ctx context.Context, creatureID int64) (*model.CreatureDefinition, error) {
	def, err := scanCreature(r.db.QueryRow(ctx,
		`SELECT creature_id, name, element, power_tier, level, experience
		 FROM creatures
		 WHERE creature_id = $1`, creatureID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // NOT ERROR, just not found
	}
	if err != nil {
		return nil, fmt.Errorf("querying creature %d: %w", creatureID, err)
	}
	return def, nil
}

// List returns up to limit creatures ordered by ID.
func (r *CreatureRepository) List(ctx context.Context, limit int) ([]model.CreatureDefinition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT creature_id, name, element, power_tier, level, experience
		 FROM creatures
		 ORDER BY creature_id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying creatures: %w", err)
	}
	defer rows.Close()

	result := make([]model.CreatureDefinition, 0, min(limit, 64))
	for rows.Next() {
		def, err := scanCreature(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning creature row: %w", err)
		}
		result = append(result, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating creature rows: %w", err)
	}
	return result, nil
}

// UpdateProgressTx сохраняет уровень и опыт внутри транзакции.
func (r *CreatureRepository) UpdateProgressTx(ctx context.Context, tx pgx.Tx, creatureID int64, level int32, experience int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE creatures
		 SET level = $2, experience = $3, updated_at = now()
		 WHERE creature_id = $1`,
		creatureID, level, experience)
	if err != nil {
		return fmt.Errorf("updating progress of creature %d: %w", creatureID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating progress of creature %d: not found", creatureID)
	}
	return nil
}

func scanCreature(row pgx.Row) (*model.CreatureDefinition, error) {
	var def model.CreatureDefinition
	var element, tier int16
	if err := row.Scan(&def.ID, &def.Name, &element, &tier, &def.Level, &def.Experience); err != nil {
		return nil, err
	}
	def.Element = model.Element(element)
	def.PowerTier = model.PowerTier(tier)
	return &def, nil
}

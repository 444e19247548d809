package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tsuruki/cardforge-server/internal/model"
)

var _ model.PlayerStore = (*PlayerRepository)(nil)

type PlayerRepository struct {
	db *Connection
}

func NewPlayerRepository(db *Connection) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	const query = `
        SELECT id, name, is_admin, currency, created_at, updated_at
        FROM players WHERE id = $1
    `
	var p model.Player
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.IsAdmin, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, model.ErrNotFound
		}
		return model.Player{}, fmt.Errorf("failed to get player by id: %w", err)
	}
	return p, nil
}

// Upsert creates the player on first login and refreshes the name on
// subsequent logins. The admin flag and currency are never touched here;
// those belong to the admin and game surfaces.
func (r *PlayerRepository) Upsert(ctx context.Context, player model.Player) (model.Player, error) {
	const query = `
        INSERT INTO players (id, name, is_admin, currency, created_at, updated_at)
        VALUES ($1, $2, FALSE, 0, NOW(), NOW())
        ON CONFLICT (id) DO UPDATE
            SET name = COALESCE(NULLIF(EXCLUDED.name, ''), players.name), updated_at = NOW()
        RETURNING id, name, is_admin, currency, created_at, updated_at
    `
	var p model.Player
	err := r.db.QueryRow(ctx, query, player.ID, player.Name).Scan(
		&p.ID, &p.Name, &p.IsAdmin, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Player{}, fmt.Errorf("failed to upsert player: %w", err)
	}
	return p, nil
}

package model

import (
	"context"
	"time"
)

// PlayerStore defines persistence operations for players.
type PlayerStore interface {
	GetByID(ctx context.Context, id int64) (Player, error)
	Upsert(ctx context.Context, player Player) (Player, error)
}

// Player represents a stored player account. The ID is the Discord user ID
// (snowflake), assigned by the provider rather than the database.
type Player struct {
	ID        int64
	Name      string
	IsAdmin   bool
	Currency  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

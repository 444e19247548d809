package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists refresh-token lineages. Raw refresh tokens are never
// stored; every lookup is keyed on the SHA-256 hash of the presented token.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByTokenHash(ctx context.Context, tokenHash []byte) (Session, error)
	// Rotate revokes the active session matching oldTokenHash and inserts next
	// as its replacement in one transaction. It returns ErrInvalidToken if no
	// active session matches; given concurrent rotations of the same token,
	// exactly one succeeds.
	Rotate(ctx context.Context, oldTokenHash []byte, next Session) error
	RevokeByTokenHash(ctx context.Context, tokenHash []byte) error
	RevokeAllByPlayer(ctx context.Context, playerID int64) error
	ListByPlayer(ctx context.Context, playerID int64) ([]Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// Session is one link of a refresh-token lineage.
type Session struct {
	ID         uuid.UUID
	PlayerID   int64
	TokenHash  []byte
	IssuedAt   time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the session can still be rotated at the given time.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

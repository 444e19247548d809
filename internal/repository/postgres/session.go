package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsuruki/cardforge-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (
            id, player_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
    `

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		session.ID, session.PlayerID, session.TokenHash, session.IssuedAt, session.ExpiresAt,
		session.RevokedAt, session.ReplacedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash []byte) (model.Session, error) {
	const query = `
        SELECT id, player_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, created_at, updated_at
        FROM sessions WHERE token_hash = $1 AND revoked_at IS NULL
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID, &s.PlayerID, &s.TokenHash, &s.IssuedAt, &s.ExpiresAt,
		&s.RevokedAt, &s.ReplacedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token hash: %w", err)
	}
	return s, nil
}

// Rotate revokes the active session behind oldTokenHash and inserts next as
// its replacement in one transaction. The conditional UPDATE decides the
// winner of concurrent rotations; the losers see zero affected rows and get
// ErrInvalidToken without the insert ever happening.
func (r *SessionRepository) Rotate(ctx context.Context, oldTokenHash []byte, next model.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if next.ID == uuid.Nil {
		next.ID = uuid.New()
	}

	const insertQuery = `
        INSERT INTO sessions (
            id, player_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,NULL,NULL,NOW(),NOW())
    `
	if _, err := tx.Exec(ctx, insertQuery,
		next.ID, next.PlayerID, next.TokenHash, next.IssuedAt, next.ExpiresAt,
	); err != nil {
		return fmt.Errorf("failed to insert rotated session: %w", err)
	}

	const revokeQuery = `
        UPDATE sessions SET revoked_at = NOW(), replaced_by = $1, updated_at = NOW()
        WHERE token_hash = $2 AND revoked_at IS NULL AND expires_at > NOW()
    `
	tag, err := tx.Exec(ctx, revokeQuery, next.ID, oldTokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke rotated session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidToken
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation transaction: %w", err)
	}
	return nil
}

func (r *SessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash []byte) error {
	const query = `
        UPDATE sessions SET revoked_at = NOW(), updated_at = NOW()
        WHERE token_hash = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *SessionRepository) RevokeAllByPlayer(ctx context.Context, playerID int64) error {
	const query = `
        UPDATE sessions SET revoked_at = NOW(), updated_at = NOW()
        WHERE player_id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, playerID); err != nil {
		return fmt.Errorf("failed to revoke sessions by player: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListByPlayer(ctx context.Context, playerID int64) ([]model.Session, error) {
	const query = `
        SELECT id, player_id, token_hash, issued_at, expires_at, revoked_at, replaced_by, created_at, updated_at
        FROM sessions WHERE player_id = $1
        ORDER BY issued_at DESC
    `
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by player: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(
			&s.ID, &s.PlayerID, &s.TokenHash, &s.IssuedAt, &s.ExpiresAt,
			&s.RevokedAt, &s.ReplacedBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

// DeleteExpired removes sessions whose lineage can never be used again.
// Rows replaced during rotation are kept while their successor is alive so
// the replaced_by chain stays inspectable.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `
        DELETE FROM sessions
        WHERE expires_at <= NOW()
          AND id NOT IN (SELECT replaced_by FROM sessions WHERE replaced_by IS NOT NULL)
    `
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

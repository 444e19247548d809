package postgres

import (
	"context"
	"fmt"

	"github.com/tsuruki/cardforge-server/internal/model"
)

var _ model.OAuthStateStore = (*OAuthStateRepository)(nil)

type OAuthStateRepository struct {
	db *Connection
}

func NewOAuthStateRepository(db *Connection) *OAuthStateRepository {
	return &OAuthStateRepository{db: db}
}

func (r *OAuthStateRepository) Create(ctx context.Context, state model.OAuthState) error {
	const query = `
        INSERT INTO oauth_states (token, created_at, expires_at, consumed)
        VALUES ($1, $2, $3, $4)
    `
	if _, err := r.db.Exec(ctx, query,
		state.Token, state.CreatedAt, state.ExpiresAt, state.Consumed,
	); err != nil {
		return fmt.Errorf("failed to create oauth state: %w", err)
	}
	return nil
}

// Consume marks the state consumed. The conditional UPDATE is the sole
// arbiter of concurrent callbacks: the row transition happens once no matter
// how many racers present the same token, even across process instances.
func (r *OAuthStateRepository) Consume(ctx context.Context, token string) error {
	const query = `
        UPDATE oauth_states SET consumed = TRUE
        WHERE token = $1 AND consumed = FALSE AND expires_at > NOW()
    `
	tag, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidState
	}
	return nil
}

func (r *OAuthStateRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM oauth_states WHERE expires_at <= NOW()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired oauth states: %w", err)
	}
	return tag.RowsAffected(), nil
}

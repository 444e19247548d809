package model

import (
	"context"
	"time"
)

// OAuthStateStore persists single-use CSRF state tokens for the OAuth flow.
type OAuthStateStore interface {
	Create(ctx context.Context, state OAuthState) error
	// Consume atomically marks the state consumed. It returns ErrInvalidState
	// if the token is unknown, already consumed or expired; at most one of any
	// number of concurrent calls for the same token succeeds.
	Consume(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OAuthState describes a pending OAuth authorization flow.
type OAuthState struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Consumed  bool
}

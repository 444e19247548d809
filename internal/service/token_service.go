package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// TokenService provides high-level operations for issuing, rotating and
// revoking session credentials. It composes the TokenManager with the
// session and player stores.
type TokenService struct {
	manager    model.TokenManager
	sessions   model.SessionStore
	players    model.PlayerStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	sessions model.SessionStore,
	players model.PlayerStore,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		manager:    manager,
		sessions:   sessions,
		players:    players,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Issue mints an access/refresh pair for the player. The raw refresh token
// leaves this function exactly once; only its hash is persisted.
func (s *TokenService) Issue(ctx context.Context, player model.Player) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(player.ID, player.IsAdmin)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := time.Now()
	session := model.Session{
		ID:        uuid.New(),
		PlayerID:  player.ID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("Token service: issued session",
		"player_id", player.ID,
		"session_id", session.ID)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the presented refresh token and mints a new pair. Unknown,
// revoked and expired tokens all collapse into model.ErrInvalidToken.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	presentedHash := hashRefresh(presentedRefresh)

	session, err := s.sessions.GetByTokenHash(ctx, presentedHash)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, fmt.Errorf("lookup session: %w", err)
	}

	if !session.Active(time.Now()) {
		return model.TokenPair{}, model.ErrInvalidToken
	}

	// Re-read the player so a changed admin flag lands in the new access
	// token at rotation time.
	player, err := s.players.GetByID(ctx, session.PlayerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, fmt.Errorf("lookup player: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue new refresh: %w", err)
	}

	now := time.Now()
	next := model.Session{
		ID:        uuid.New(),
		PlayerID:  player.ID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	// The store decides the winner of concurrent rotations of one token.
	if err := s.sessions.Rotate(ctx, presentedHash, next); err != nil {
		if errors.Is(err, model.ErrInvalidToken) {
			s.logger.Info("Token service: rotation lost to a concurrent refresh or revoked token",
				"player_id", session.PlayerID,
				"session_id", session.ID)
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, fmt.Errorf("rotate session: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(player.ID, player.IsAdmin)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue new access: %w", err)
	}

	s.logger.Info("Token service: rotated session",
		"player_id", player.ID,
		"old_session_id", session.ID,
		"new_session_id", next.ID)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Revoke marks the session behind the presented refresh token revoked.
// Unknown tokens are not an error; logout is idempotent.
func (s *TokenService) Revoke(ctx context.Context, presentedRefresh string) error {
	return s.sessions.RevokeByTokenHash(ctx, hashRefresh(presentedRefresh))
}

// RevokeAllForPlayer revokes every active session of a player.
func (s *TokenService) RevokeAllForPlayer(ctx context.Context, playerID int64) error {
	return s.sessions.RevokeAllByPlayer(ctx, playerID)
}

// IsActive reports whether the presented refresh token maps to a live
// session. Read-only, for diagnostics.
func (s *TokenService) IsActive(ctx context.Context, presentedRefresh string) (bool, error) {
	session, err := s.sessions.GetByTokenHash(ctx, hashRefresh(presentedRefresh))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return session.Active(time.Now()), nil
}

// Authenticate verifies an access token and extracts the caller identity.
// This is a pure signature and expiry check; it never touches a store.
func (s *TokenService) Authenticate(_ context.Context, accessToken string) (model.Identity, error) {
	identity, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}
	return identity, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

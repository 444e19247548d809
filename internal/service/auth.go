package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// Auth orchestrates the OAuth2 login flow: state issuance, code exchange,
// player resolution and token issuance.
type Auth struct {
	players      model.PlayerStore
	states       model.OAuthStateStore
	provider     model.IdentityProvider
	tokenService *TokenService
	stateTTL     time.Duration
	logger       *logger.Logger
}

func NewAuth(
	players model.PlayerStore,
	states model.OAuthStateStore,
	provider model.IdentityProvider,
	tokenService *TokenService,
	stateTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		players:      players,
		states:       states,
		provider:     provider,
		tokenService: tokenService,
		stateTTL:     stateTTL,
		logger:       logger,
	}
}

// StartLogin stores a fresh single-use state token and returns the provider
// authorization URL carrying it.
func (a *Auth) StartLogin(ctx context.Context) (string, error) {
	token, err := generateStateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	now := time.Now()
	state := model.OAuthState{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(a.stateTTL),
	}

	if err := a.states.Create(ctx, state); err != nil {
		a.logger.Error("Auth service: failed to create oauth state",
			"error", err.Error())
		return "", fmt.Errorf("failed to create oauth state: %w", err)
	}

	a.logger.Debug("Auth service: login started",
		"state", token)

	return a.provider.AuthorizationURL(token), nil
}

// CompleteLogin handles the provider callback. The state is consumed before
// anything else happens; a replayed or raced callback fails here and never
// reaches the provider. No session exists until the exchange has succeeded.
func (a *Auth) CompleteLogin(ctx context.Context, code, state string) (model.TokenPair, error) {
	if err := a.states.Consume(ctx, state); err != nil {
		a.logger.Info("Auth service: rejected login callback",
			"error", err.Error())
		return model.TokenPair{}, err
	}

	providerIdentity, err := a.provider.ExchangeCode(ctx, code)
	if err != nil {
		return model.TokenPair{}, err
	}

	player, err := a.players.Upsert(ctx, model.Player{
		ID:   providerIdentity.ID,
		Name: providerIdentity.Username,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to upsert player",
			"player_id", providerIdentity.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to upsert player: %w", err)
	}

	pair, err := a.tokenService.Issue(ctx, player)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"player_id", player.ID)

	return pair, nil
}

// Logout revokes the session behind the refresh token. Idempotent.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	return a.tokenService.Revoke(ctx, refreshToken)
}

func generateStateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

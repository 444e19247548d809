package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tsuruki/cardforge-server/internal/model"
)

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(playerID int64, isAdmin bool) (string, error) {
	args := m.Called(playerID, isAdmin)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}

type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) AuthorizationURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *IdentityProvider) ExchangeCode(ctx context.Context, code string) (model.ProviderIdentity, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.ProviderIdentity), args.Error(1)
}

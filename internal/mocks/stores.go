// Package mocks contains testify mock implementations of the model
// interfaces for use in unit tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tsuruki/cardforge-server/internal/model"
)

type PlayerStore struct {
	mock.Mock
}

func (m *PlayerStore) GetByID(ctx context.Context, id int64) (model.Player, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Player), args.Error(1)
}

func (m *PlayerStore) Upsert(ctx context.Context, player model.Player) (model.Player, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(model.Player), args.Error(1)
}

type OAuthStateStore struct {
	mock.Mock
}

func (m *OAuthStateStore) Create(ctx context.Context, state model.OAuthState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *OAuthStateStore) Consume(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *OAuthStateStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) GetByTokenHash(ctx context.Context, tokenHash []byte) (model.Session, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) Rotate(ctx context.Context, oldTokenHash []byte, next model.Session) error {
	args := m.Called(ctx, oldTokenHash, next)
	return args.Error(0)
}

func (m *SessionStore) RevokeByTokenHash(ctx context.Context, tokenHash []byte) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *SessionStore) RevokeAllByPlayer(ctx context.Context, playerID int64) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *SessionStore) ListByPlayer(ctx context.Context, playerID int64) ([]model.Session, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

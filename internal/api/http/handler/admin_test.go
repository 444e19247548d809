package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tsuruki/cardforge-server/internal/model"
	"github.com/tsuruki/cardforge-server/internal/testutil"
)

type stubSessionService struct {
	revokedPlayer int64
	err           error
}

func (s *stubSessionService) RevokeAllForPlayer(_ context.Context, playerID int64) error {
	s.revokedPlayer = playerID
	return s.err
}

type stubSessionLister struct {
	sessions []model.Session
	err      error
}

func (s *stubSessionLister) ListByPlayer(_ context.Context, _ int64) ([]model.Session, error) {
	return s.sessions, s.err
}

func newAdminEngine(svc SessionService, lister SessionLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdmin(svc, lister, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.GET("/admin/players/:player_id/sessions", h.ListSessions)
	engine.POST("/admin/players/:player_id/sessions/revoke", h.RevokeSessions)
	return engine
}

func TestAdmin_ListSessions(t *testing.T) {
	now := time.Now()
	next := uuid.New()
	lister := &stubSessionLister{sessions: []model.Session{
		{
			ID:         uuid.New(),
			PlayerID:   42,
			TokenHash:  []byte("secret-hash"),
			IssuedAt:   now.Add(-time.Hour),
			ExpiresAt:  now.Add(time.Hour),
			RevokedAt:  &now,
			ReplacedBy: &next,
		},
		{
			ID:        next,
			PlayerID:  42,
			TokenHash: []byte("secret-hash-2"),
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
		},
	}}
	engine := newAdminEngine(&stubSessionService{}, lister)

	req := httptest.NewRequest(http.MethodGet, "/admin/players/42/sessions", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Contains(t, rec.Body.String(), next.String())
	assert.Contains(t, rec.Body.String(), `"revoked":true`)
	assert.Contains(t, rec.Body.String(), `"revoked":false`)
}

func TestAdmin_ListSessions_BadPlayerID(t *testing.T) {
	engine := newAdminEngine(&stubSessionService{}, &stubSessionLister{})

	req := httptest.NewRequest(http.MethodGet, "/admin/players/not-a-number/sessions", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_RevokeSessions(t *testing.T) {
	svc := &stubSessionService{}
	engine := newAdminEngine(svc, &stubSessionLister{})

	req := httptest.NewRequest(http.MethodPost, "/admin/players/42/sessions/revoke", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.revokedPlayer)
}

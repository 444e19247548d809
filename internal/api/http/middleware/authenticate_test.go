package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	httpctx "github.com/tsuruki/cardforge-server/internal/api/http/context"
	"github.com/tsuruki/cardforge-server/internal/model"
	"github.com/tsuruki/cardforge-server/internal/testutil"
)

type stubTokenService struct {
	identity model.Identity
	err      error
}

func (s *stubTokenService) Authenticate(_ context.Context, _ string) (model.Identity, error) {
	return s.identity, s.err
}

func runRequest(t *testing.T, svc TokenService, authHeader string) (*httptest.ResponseRecorder, *model.Identity) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cm := httpctx.NewManager()
	mw := NewAuthenticate(svc, cm, testutil.MakeNoopLogger())

	var seen *model.Identity
	engine := gin.New()
	engine.GET("/protected", mw.Handle, func(c *gin.Context) {
		if identity, ok := cm.GetIdentityFromContext(c.Request.Context()); ok {
			seen = &identity
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec, seen
}

func TestAuthenticate_Success(t *testing.T) {
	svc := &stubTokenService{identity: model.Identity{PlayerID: 42, IsAdmin: true}}

	rec, seen := runRequest(t, svc, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, int64(42), seen.PlayerID)
	assert.True(t, seen.IsAdmin)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	svc := &stubTokenService{identity: model.Identity{PlayerID: 42}}

	rec, seen := runRequest(t, svc, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	svc := &stubTokenService{err: model.ErrUnauthenticated}

	rec, seen := runRequest(t, svc, "Bearer forged")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   model.Identity
		wantStatus int
	}{
		{name: "admin allowed", identity: model.Identity{PlayerID: 1, IsAdmin: true}, wantStatus: http.StatusOK},
		{name: "non-admin forbidden", identity: model.Identity{PlayerID: 2, IsAdmin: false}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)

			cm := httpctx.NewManager()
			authenticate := NewAuthenticate(&stubTokenService{identity: tt.identity}, cm, testutil.MakeNoopLogger())
			requireAdmin := NewRequireAdmin(cm, testutil.MakeNoopLogger())

			engine := gin.New()
			engine.GET("/admin", authenticate.Handle, requireAdmin.Handle, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cm := httpctx.NewManager()
	requireAdmin := NewRequireAdmin(cm, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.GET("/admin", requireAdmin.Handle, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

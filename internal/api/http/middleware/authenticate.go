package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// TokenService resolves caller identities from bearer access tokens.
type TokenService interface {
	Authenticate(ctx context.Context, accessToken string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the caller identity into
// the request context. Verification is self-contained; this middleware never
// touches a store.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and stores the
// identity in the request context. Every failure collapses into one 401 body;
// the distinction between malformed, forged and expired tokens stays in the
// operator logs.
func (m *Authenticate) Handle(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	identity, err := m.tokenService.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		m.logger.Info("Authenticate middleware: rejected access token",
			"path", c.FullPath(),
			"error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	ctx := m.contextManager.SetIdentityToContext(c.Request.Context(), identity)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

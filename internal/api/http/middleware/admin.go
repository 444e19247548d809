package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// RequireAdmin gates admin-only routes on the admin flag of an already
// verified identity. It must run after Authenticate.
type RequireAdmin struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRequireAdmin creates a new RequireAdmin middleware instance.
func NewRequireAdmin(contextManager model.ContextManager, logger *logger.Logger) *RequireAdmin {
	return &RequireAdmin{contextManager: contextManager, logger: logger}
}

// Handle rejects callers whose verified identity lacks the admin flag.
func (m *RequireAdmin) Handle(c *gin.Context) {
	identity, ok := m.contextManager.GetIdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if !identity.IsAdmin {
		m.logger.Info("RequireAdmin middleware: rejected non-admin caller",
			"player_id", identity.PlayerID,
			"path", c.FullPath())
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.Next()
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// SessionService defines the administrative session operations.
type SessionService interface {
	RevokeAllForPlayer(ctx context.Context, playerID int64) error
}

// SessionLister lists a player's sessions for diagnostics.
type SessionLister interface {
	ListByPlayer(ctx context.Context, playerID int64) ([]model.Session, error)
}

// Admin handles HTTP endpoints for administrative session management.
type Admin struct {
	sessionService SessionService
	sessions       SessionLister
	logger         *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(sessionService SessionService, sessions SessionLister, logger *logger.Logger) *Admin {
	return &Admin{
		sessionService: sessionService,
		sessions:       sessions,
		logger:         logger,
	}
}

// sessionResponse exposes lineage metadata only; token hashes never leave
// the store layer.
type sessionResponse struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Revoked    bool       `json:"revoked"`
	ReplacedBy *string    `json:"replaced_by,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// ListSessions returns every session of a player, active or not.
func (h *Admin) ListSessions(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("player_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	sessions, err := h.sessions.ListByPlayer(c.Request.Context(), playerID)
	if err != nil {
		h.logger.Error("Admin handler: failed to list sessions",
			"player_id", playerID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		item := sessionResponse{
			ID:        s.ID.String(),
			PlayerID:  strconv.FormatInt(s.PlayerID, 10),
			IssuedAt:  s.IssuedAt,
			ExpiresAt: s.ExpiresAt,
			Revoked:   s.RevokedAt != nil,
			RevokedAt: s.RevokedAt,
		}
		if s.ReplacedBy != nil {
			id := s.ReplacedBy.String()
			item.ReplacedBy = &id
		}
		resp = append(resp, item)
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeSessions revokes every active session of a player.
func (h *Admin) RevokeSessions(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("player_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	if err := h.sessionService.RevokeAllForPlayer(c.Request.Context(), playerID); err != nil {
		h.logger.Error("Admin handler: failed to revoke sessions",
			"player_id", playerID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Admin handler: revoked all sessions",
		"player_id", playerID)

	c.JSON(http.StatusOK, gin.H{"message": "sessions revoked"})
}

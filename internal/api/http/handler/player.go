package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// PlayerService resolves player profiles.
type PlayerService interface {
	GetByID(ctx context.Context, id int64) (model.Player, error)
}

// Player handles HTTP endpoints for player profiles.
type Player struct {
	playerService  PlayerService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPlayer creates a new Player handler.
func NewPlayer(playerService PlayerService, contextManager model.ContextManager, logger *logger.Logger) *Player {
	return &Player{
		playerService:  playerService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// playerResponse serializes the ID as a string because Discord snowflakes
// overflow JavaScript numbers.
type playerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	Currency int64  `json:"currency"`
}

// Me returns the profile of the authenticated caller.
func (h *Player) Me(c *gin.Context) {
	identity, ok := h.contextManager.GetIdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	player, err := h.playerService.GetByID(c.Request.Context(), identity.PlayerID)
	if err != nil {
		h.logger.Error("Player handler: failed to get player",
			"player_id", identity.PlayerID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, playerResponse{
		ID:       strconv.FormatInt(player.ID, 10),
		Name:     player.Name,
		IsAdmin:  player.IsAdmin,
		Currency: player.Currency,
	})
}

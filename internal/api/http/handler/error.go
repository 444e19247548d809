package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/model"
)

// handleError translates service errors into HTTP responses. Bodies carry no
// detail beyond the error class.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired oauth state"})
	case errors.Is(err, model.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider request failed"})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
	case errors.Is(err, model.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

// AuthService defines the login flow operations.
type AuthService interface {
	StartLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// TokenService defines the token rotation operation.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type loginURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login starts the OAuth flow and returns the provider authorization URL.
func (h *Auth) Login(c *gin.Context) {
	url, err := h.authService.StartLogin(c.Request.Context())
	if err != nil {
		h.logger.Error("Auth handler: login start failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginURLResponse{AuthorizationURL: url})
}

// Callback completes the OAuth flow and returns the first token pair.
func (h *Auth) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	pair, err := h.authService.CompleteLogin(c.Request.Context(), code, state)
	if err != nil {
		h.logger.Error("Auth handler: login callback failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}

// Refresh rotates the refresh token and returns a new pair.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
		return
	}

	pair, err := h.tokenService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}

// Logout revokes the presented refresh token. Unknown tokens succeed; logout
// is idempotent.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
			h.logger.Error("Auth handler: logout failed",
				"error", err.Error())
			handleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

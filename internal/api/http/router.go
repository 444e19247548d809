// Package http wires the gin router, handlers and middleware.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsuruki/cardforge-server/internal/api/http/handler"
	"github.com/tsuruki/cardforge-server/internal/api/http/middleware"
	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
	"github.com/tsuruki/cardforge-server/internal/service"
)

// Router assembles the HTTP API.
type Router struct {
	authService    *service.Auth
	tokenService   *service.TokenService
	playerStore    model.PlayerStore
	sessionStore   model.SessionStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	playerStore model.PlayerStore,
	sessionStore model.SessionStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		playerStore:    playerStore,
		sessionStore:   sessionStore,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware attached.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewLogging(r.logger).Handle)
	engine.Use(middleware.CORS)

	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	requireAdmin := middleware.NewRequireAdmin(r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.tokenService, r.logger)
	playerHandler := handler.NewPlayer(r.playerStore, r.contextManager, r.logger)
	adminHandler := handler.NewAdmin(r.tokenService, r.sessionStore, r.logger)

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := engine.Group("/auth")
	{
		auth.GET("/discord/login", authHandler.Login)
		auth.GET("/discord/callback", authHandler.Callback)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	players := engine.Group("/players", authenticate.Handle)
	{
		players.GET("/me", playerHandler.Me)
	}

	admin := engine.Group("/admin", authenticate.Handle, requireAdmin.Handle)
	{
		admin.GET("/players/:player_id/sessions", adminHandler.ListSessions)
		admin.POST("/players/:player_id/sessions/revoke", adminHandler.RevokeSessions)
	}

	return engine
}

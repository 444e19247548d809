package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	api "github.com/tsuruki/cardforge-server/internal/api/http"
	httpctx "github.com/tsuruki/cardforge-server/internal/api/http/context"
	"github.com/tsuruki/cardforge-server/internal/config"
	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
	"github.com/tsuruki/cardforge-server/internal/provider/discord"
	"github.com/tsuruki/cardforge-server/internal/repository/postgres"
	"github.com/tsuruki/cardforge-server/internal/server"
	"github.com/tsuruki/cardforge-server/internal/service"
	"github.com/tsuruki/cardforge-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const cleanupInterval = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	playerRepo := postgres.NewPlayerRepository(db)
	stateRepo := postgres.NewOAuthStateRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	secret, err := token.ResolveSecret(cfg.JWT.Secret, logger)
	if err != nil {
		logger.Fatal("failed to resolve signing secret", "error", err)
	}
	tokenManager := token.NewJWT(secret, cfg.JWT.AccessTTL)

	providerClient := discord.New(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.RedirectURI, logger)

	tokenService := service.NewTokenService(tokenManager, sessionRepo, playerRepo, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(playerRepo, stateRepo, providerClient, tokenService, cfg.JWT.StateTTL, logger)
	ctxMgr := httpctx.NewManager()

	router := api.New(authService, tokenService, playerRepo, sessionRepo, ctxMgr, logger)
	httpServer := api.NewServer(router.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runCleanup(ctx, logger.With("component", "cleanup"), stateRepo, sessionRepo)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// runCleanup periodically removes expired oauth states and dead sessions.
// Expired rows are already rejected at read time; this only keeps the tables
// from growing without bound.
func runCleanup(ctx context.Context, logger *logger.Logger, states model.OAuthStateStore, sessions model.SessionStore) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if deleted, err := states.DeleteExpired(ctx); err != nil {
				logger.Error("failed to delete expired oauth states", "error", err)
			} else if deleted > 0 {
				logger.Info("deleted expired oauth states", "count", deleted)
			}

			if deleted, err := sessions.DeleteExpired(ctx); err != nil {
				logger.Error("failed to delete expired sessions", "error", err)
			} else if deleted > 0 {
				logger.Info("deleted expired sessions", "count", deleted)
			}
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"creatorhub/internal/config"
	"creatorhub/internal/content"
	"creatorhub/internal/handlers"
	"creatorhub/internal/log"
	"creatorhub/internal/models"
	"creatorhub/internal/server"
	"creatorhub/internal/session"
	"creatorhub/internal/storage"
	syncer "creatorhub/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New("api", cfg.Environment)

	ctx := context.Background()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to init store")
	}

	// Restore must finish before the server answers guarded routes.
	sessions := session.NewManager(store, logger)
	sessions.Restore(ctx)

	posts := content.NewRepository(ctx, store, logger)

	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, posts, cfg.Sync.PollInterval, logger)
	if err := broadcaster.Start(); err != nil {
		logger.Fatal().Err(err).Msg("broadcaster start failed")
	}

	handlerSet := handlers.NewHandlerSet(logger, cfg, store, sessions, posts)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, broadcaster, store)
}

func newStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (storage.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		return storage.NewRedisStore(ctx, cfg.Redis, logger)
	case "postgres":
		return storage.NewPostgresStore(ctx, cfg.Postgres, logger)
	case "minio":
		return storage.NewMinioStore(ctx, cfg.ObjectStore)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, broadcaster *syncer.Broadcaster, store storage.Store) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	broadcaster.Stop()

	if err := store.Close(); err != nil {
		logger.Error().Err(err).Msg("store close error")
	}

	logger.Info().Msg("server exited cleanly")
}

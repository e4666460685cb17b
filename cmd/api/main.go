package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"apexfit/api/internal/ai"
	"apexfit/api/internal/cache"
	"apexfit/api/internal/config"
	"apexfit/api/internal/database"
	"apexfit/api/internal/handlers"
	"apexfit/api/internal/jobs"
	"apexfit/api/internal/log"
	"apexfit/api/internal/repository"
	"apexfit/api/internal/server"
	"apexfit/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, timeline cache disabled")
		redisClient = nil
	}

	store := newStore(ctx, cfg, logger)

	model, err := ai.NewClient(ctx, cfg.AI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init model client")
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, store, model, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(repository.NewSessionRepository(dbPool), logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

// newStore selects the photo store backend from config. The local driver
// is the default; "s3" targets any S3-compatible endpoint.
func newStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) storage.Store {
	if cfg.Storage.Driver == "s3" {
		objectStore, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
		return objectStore
	}

	localStore, err := storage.NewLocalStore(cfg.Storage.LocalRoot, cfg.Storage.LocalEnabled)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init local store")
	}
	return localStore
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if scheduler != nil {
		cancel := scheduler.Stop()
		cancel()
	}

	db.Close()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}

// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

// Command api is the entry point for the Cinelog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the storage profile (in-memory or PostgreSQL + migrations).
//  4. Connect to Redis when a distributed rate limiter is configured.
//  5. Wire domain services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/mkuznet/cinelog/internal/api"
	"github.com/mkuznet/cinelog/internal/catalog/film"
	"github.com/mkuznet/cinelog/internal/catalog/genre"
	"github.com/mkuznet/cinelog/internal/catalog/mpa"
	"github.com/mkuznet/cinelog/internal/platform/config"
	"github.com/mkuznet/cinelog/internal/platform/constants"
	"github.com/mkuznet/cinelog/internal/platform/migration"
	pgstore "github.com/mkuznet/cinelog/internal/platform/postgres"
	redisstore "github.com/mkuznet/cinelog/internal/platform/redis"
	"github.com/mkuznet/cinelog/internal/social/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Cinelog] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage Profile ────────────────────────────────────────────────
	var (
		genreRepo genre.Repository
		mpaRepo   mpa.Repository
		userRepo  user.Repository
		filmRepo  film.Repository

		checkDatabase func() error
	)

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		genreRepo = genre.NewPostgresRepository(pool)
		mpaRepo = mpa.NewPostgresRepository(pool)
		userRepo = user.NewPostgresRepository(pool)
		filmRepo = film.NewPostgresRepository(pool)

		checkDatabase = func() error {
			return pgstore.Ping(context.Background(), pool)
		}

	case config.BackendMemory:
		genreRepo = genre.NewMemoryRepository(genre.Defaults())
		mpaRepo = mpa.NewMemoryRepository(mpa.Defaults())
		userRepo = user.NewMemoryRepository()
		filmRepo = film.NewMemoryRepository(genreRepo, mpaRepo)
	}

	// ── 4. Redis (distributed rate limiter) ───────────────────────────────
	var rdb *redislib.Client
	var checkRateLimiter func() error

	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		checkRateLimiter = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase:    checkDatabase,
		CheckRateLimiter: checkRateLimiter,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	genreService := genre.NewService(genreRepo, log)
	mpaService := mpa.NewService(mpaRepo, log)
	userService := user.NewService(userRepo, filmRepo, log)
	filmService := film.NewService(filmRepo, userRepo, cfg.StrictClassification, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Film:      film.NewHandler(filmService),
		User:      user.NewHandler(userService),
		Genre:     genre.NewHandler(genreService),
		Mpa:       mpa.NewHandler(mpaService),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, rdb, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

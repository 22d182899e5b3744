package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"catalogadmin/backend/internal/cache"
	"catalogadmin/backend/internal/config"
	"catalogadmin/backend/internal/httpapi"
	"catalogadmin/backend/internal/service"
	"catalogadmin/backend/internal/store"
	"catalogadmin/backend/internal/store/memory"
	pgstore "catalogadmin/backend/internal/store/postgres"
	"catalogadmin/backend/internal/upload"
)

func main() {
	baseLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer baseLogger.Sync()
	logger := baseLogger.Sugar()

	cfg := config.Load()
	if err := validateSecurityConfig(cfg); err != nil {
		logger.Fatalw("invalid security configuration", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo store.Repository
	closers := make([]func() error, 0, 2)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalw("postgres unavailable and DATABASE_URL is set; refusing to start with in-memory fallback", "err", err)
		}
		repo = pg
		closers = append(closers, pg.Close)
		logger.Infow("repository ready", "kind", "postgres")
	} else {
		repo = memory.NewSeeded(logger)
		logger.Infow("repository ready", "kind", "in-memory")
	}

	categoryCache := cache.CategoryCache(cache.NoopCategoryCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCategoryCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warnw("redis unavailable, using noop cache", "err", err)
		} else {
			categoryCache = redisCache
			closers = append(closers, redisCache.Close)
			logger.Infow("cache ready", "kind", "redis")
		}
	} else {
		logger.Infow("cache ready", "kind", "noop")
	}

	svc := service.New(repo, categoryCache, logger)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, cfg.AccessTokenTTL(), repo)
	uploads := upload.NewStorage(cfg.UploadDir, cfg.UploadURLPrefix, logger)
	api := httpapi.New(svc, auth, uploads, cfg.UploadDir, cfg.AllowedOrigins, logger)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infow("catalog backend listening", "addr", cfg.Address())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server error", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("shutdown error", "err", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warnw("close error", "err", err)
		}
	}

	logger.Infow("server stopped")
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	return nil
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sixteen1-6/Pong/internal/factory"
	redisstorage "github.com/Sixteen1-6/Pong/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		StorageType: os.Getenv("STORAGE_TYPE"),
		DataDir:     os.Getenv("DATA_DIR"),
		Logger:      logger,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The leaderboard is reset to empty at every start; the persisted file
	// keeps only its sentinel until the first win
	if err := app.Leaderboard.Reset(ctx); err != nil {
		logger.Error("failed to reset leaderboard", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Background token expiry sweep
	go app.TokenStore.RunSweeper(ctx, time.Minute, logger)

	errCh := make(chan error, 3)
	go func() { errCh <- app.GameServer.ListenAndServe(ctx) }()
	go func() { errCh <- app.AuthServer.ListenAndServe(ctx) }()
	go func() { errCh <- app.LeaderboardServer.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			cancel()
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	if err := app.LeaderboardServer.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

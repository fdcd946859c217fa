// Package main runs the standalone badge recompute worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quizhive/backend/config"
	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/badges"
	"github.com/quizhive/backend/internal/quizzes"
	"github.com/quizhive/backend/internal/worker"
	"github.com/quizhive/backend/pkg/database"
	"github.com/quizhive/backend/pkg/queue"
	"github.com/quizhive/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jobQueue := queue.NewQueue(rdb.Client, logger)
	badgeRepo := badges.NewRepository(pool)
	authRepo := auth.NewRepository(pool)
	quizRepo := quizzes.NewRepository(pool)
	badgeService := badges.NewService(badgeRepo, authRepo, quizRepo)
	processor := worker.NewBadgeProcessor(badgeService, jobQueue, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutdown signal received")
		cancel()
	}()

	logger.Info("badge worker listening", zap.String("queue", queue.QueueBadges))
	processor.Run(ctx)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

// Package main runs the confirmation email worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amara-wedding/backend/config"
	"github.com/amara-wedding/backend/internal/emaillogs"
	"github.com/amara-wedding/backend/internal/groups"
	"github.com/amara-wedding/backend/internal/guests"
	"github.com/amara-wedding/backend/internal/notifications"
	"github.com/amara-wedding/backend/internal/worker"
	"github.com/amara-wedding/backend/pkg/database"
	"github.com/amara-wedding/backend/pkg/queue"
	"github.com/amara-wedding/backend/pkg/redis"
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

	groupRepo := groups.NewRepository(pool)
	guestRepo := guests.NewRepository(pool)
	emailLogsRepo := emaillogs.NewRepository(pool)

	var mailer notifications.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = notifications.NewSMTPMailer(cfg.Email)
	}
	notifier := notifications.NewService(cfg.Email, groupRepo, guestRepo, emailLogsRepo, mailer, jobQueue, logger)

	processor := worker.NewEmailProcessor(notifier, jobQueue, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	logger.Info("email worker started")
	processor.Run(ctx)
	logger.Info("email worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

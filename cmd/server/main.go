// Package main runs the wedding website HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amara-wedding/backend/config"
	"github.com/amara-wedding/backend/internal/admin"
	"github.com/amara-wedding/backend/internal/auth"
	"github.com/amara-wedding/backend/internal/emaillogs"
	"github.com/amara-wedding/backend/internal/gallery"
	"github.com/amara-wedding/backend/internal/groups"
	"github.com/amara-wedding/backend/internal/guests"
	"github.com/amara-wedding/backend/internal/middleware"
	"github.com/amara-wedding/backend/internal/models"
	"github.com/amara-wedding/backend/internal/notifications"
	"github.com/amara-wedding/backend/internal/rsvp"
	"github.com/amara-wedding/backend/pkg/database"
	"github.com/amara-wedding/backend/pkg/queue"
	"github.com/amara-wedding/backend/pkg/redis"
	"github.com/amara-wedding/backend/pkg/response"
	"github.com/amara-wedding/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis backs the confirmation email queue. The site still serves RSVPs
	// without it; confirmations are just skipped.
	var jobQueue *queue.Queue
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, confirmation emails disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		jobQueue = queue.NewQueue(rdb.Client, logger)
	}

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			GalleryBucket:        cfg.AWS.GalleryBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Guests and groups
	guestRepo := guests.NewRepository(pool)
	groupRepo := groups.NewRepository(pool)

	// Notifications
	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo)
	var mailer notifications.Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = notifications.NewSMTPMailer(cfg.Email)
	}
	notifier := notifications.NewService(cfg.Email, groupRepo, guestRepo, emailLogsRepo, mailer, jobQueue, logger)

	// RSVP
	gate := rsvp.NewGate(cfg.RSVP.ByDate)
	rsvpStore := rsvp.NewRepository(pool)
	rsvpService := rsvp.NewService(rsvpStore, gate)
	rsvpHandler := rsvp.NewHandler(rsvpService, notifier, logger)

	// Admin dashboard
	adminHandler := admin.NewHandler(guestRepo, groupRepo, notifier, logger)
	galleryHandler := gallery.NewHandler(s3Client, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger, "/api/health"))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public RSVP flow
	api.GET("/rsvp/status", rsvpHandler.Status)
	api.GET("/rsvp/lookup", rsvpHandler.Lookup)
	api.POST("/rsvp", rsvpHandler.Submit)

	// Public gallery
	api.GET("/gallery", galleryHandler.List)

	// Admin login (public)
	api.POST("/admin/login", authHandler.Login)

	// Admin dashboard (JWT + admin role required)
	adm := api.Group("/admin")
	adm.Use(middleware.JWT(jwtService), middleware.RequireRole(models.RoleAdmin))
	{
		adm.GET("/guests", adminHandler.ListGuests)
		adm.POST("/guests", adminHandler.CreateGuest)
		adm.GET("/guests/:id", adminHandler.GetGuest)
		adm.PUT("/guests/:id", adminHandler.UpdateGuest)
		adm.DELETE("/guests/:id", adminHandler.DeleteGuest)

		adm.GET("/groups", adminHandler.ListGroups)
		adm.POST("/groups", adminHandler.CreateGroup)
		adm.GET("/groups/:id", adminHandler.GetGroup)
		adm.PUT("/groups/:id", adminHandler.UpdateGroup)
		adm.DELETE("/groups/:id", adminHandler.DeleteGroup)

		adm.GET("/stats", adminHandler.GetStats)
		adm.GET("/export", adminHandler.ExportCSV)
		adm.POST("/reminders", adminHandler.SendReminders)
		adm.GET("/emails", emailLogsHandler.List)

		adm.POST("/gallery", galleryHandler.Upload)
		adm.DELETE("/gallery/:key", galleryHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

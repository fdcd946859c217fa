// Package main runs the quiz platform HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quizhive/backend/config"
	"github.com/quizhive/backend/internal/aigen"
	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/badges"
	"github.com/quizhive/backend/internal/leaderboard"
	"github.com/quizhive/backend/internal/media"
	"github.com/quizhive/backend/internal/middleware"
	"github.com/quizhive/backend/internal/play"
	"github.com/quizhive/backend/internal/quizzes"
	"github.com/quizhive/backend/internal/realtime"
	"github.com/quizhive/backend/internal/sessions"
	"github.com/quizhive/backend/internal/worker"
	"github.com/quizhive/backend/pkg/database"
	"github.com/quizhive/backend/pkg/queue"
	"github.com/quizhive/backend/pkg/redis"
	"github.com/quizhive/backend/pkg/response"
	"github.com/quizhive/backend/pkg/storage"
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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MediaBucket:          cfg.AWS.MediaBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, cfg.JWT.CookieName, logger)

	// Quizzes and sessions
	quizRepo := quizzes.NewRepository(pool)
	sessionRepo := sessions.NewRepository(pool)
	quizHandler := quizzes.NewHandler(quizRepo, sessionRepo, logger)
	sessionHandler := sessions.NewHandler(sessionRepo, quizRepo, authRepo, hub, cfg.Session.DefaultDurationMinutes, logger)

	// AI generation (disabled when no API key is configured)
	var generator aigen.TextGenerator
	if os.Getenv("GEMINI_API_KEY") != "" {
		generator, err = aigen.NewGeminiProvider(ctx, cfg.AI.Model)
		if err != nil {
			logger.Warn("ai generation disabled", zap.Error(err))
		}
	}
	aigenHandler := aigen.NewHandler(generator, quizRepo, sessionRepo, cfg.AI.MaxQuestions, cfg.Session.DefaultDurationMinutes, logger)

	// Play and leaderboard
	playRepo := play.NewRepository(pool)
	playHandler := play.NewHandler(playRepo, quizRepo, authRepo, jobQueue, hub, logger)
	leaderboardRepo := leaderboard.NewRepository(pool)
	leaderboardHandler := leaderboard.NewHandler(leaderboardRepo, sessionRepo, logger)

	// Badges
	badgeRepo := badges.NewRepository(pool)
	badgeService := badges.NewService(badgeRepo, authRepo, quizRepo)
	badgeHandler := badges.NewHandler(badgeService, logger)
	badgeProcessor := worker.NewBadgeProcessor(badgeService, jobQueue, logger)

	// Media
	mediaHandler := media.NewHandler(s3Client, logger)

	jwtValidate := func(token string) (uuid.UUID, error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return uuid.Nil, err
		}
		return claims.UserID, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Identity (public)
	router.POST("/users/signup", authHandler.Signup)
	router.POST("/users/login", authHandler.Login)
	router.POST("/users/logout", authHandler.Logout)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService, cfg.JWT.CookieName))
	{
		api.GET("/users/me", authHandler.Me)
		api.GET("/users/badges", badgeHandler.Get)

		// Quiz authoring
		api.POST("/quizzes", quizHandler.Create)
		api.GET("/quizzes", quizHandler.List)
		api.GET("/quizzes/:id", quizHandler.GetByID)
		api.PATCH("/quizzes/:id", quizHandler.Update)
		api.DELETE("/quizzes/:id", quizHandler.Delete)
		api.POST("/quizzes/:id/questions", quizHandler.AddQuestion)

		// AI generation
		api.POST("/ai-quiz/generate", aigenHandler.Generate)

		// Session lifecycle
		api.POST("/quizzes/session/start", sessionHandler.Start)
		api.POST("/quizzes/rehost", sessionHandler.Rehost)
		api.GET("/quizzes/join/:code", sessionHandler.Join)
		api.GET("/quizzes/session/:sessionId", sessionHandler.Questions)

		// Play
		api.POST("/quizzes/answer", playHandler.SubmitAnswer)
		api.POST("/quizzes/complete", playHandler.CompleteQuiz)

		// Leaderboard and results
		api.GET("/quizzes/leaderboard/:sessionId", leaderboardHandler.Get)
		api.GET("/quizzes/results/:sessionId", leaderboardHandler.Results)

		// Question media
		api.POST("/questions/media/upload", mediaHandler.Upload)
		api.POST("/questions/media/presign", mediaHandler.PresignUpload)
	}

	// WebSocket (token in query; no Authorization header required)
	router.GET("/ws", realtime.ServeWs(hub, logger, jwtValidate))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (badge recompute)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go badgeProcessor.Run(workerCtx)
	logger.Info("badge worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
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

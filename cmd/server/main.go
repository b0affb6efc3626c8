package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/database"
	"github.com/mjaja25/exam-website-backend/internal/grader"
	"github.com/mjaja25/exam-website-backend/internal/handler"
	"github.com/mjaja25/exam-website-backend/internal/logger"
	"github.com/mjaja25/exam-website-backend/internal/mailer"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/mjaja25/exam-website-backend/internal/router"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/mjaja25/exam-website-backend/internal/validator"
	"github.com/mjaja25/exam-website-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting exam backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	mcqRepo := repository.NewMCQRepository(pool)
	practiceRepo := repository.NewPracticeRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	boardRepo := repository.NewLeaderboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	aiClient := grader.NewOpenAIClient(cfg)
	gradeOrchestrator := grader.New(aiClient, log)

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	settingService := service.NewSettingService(settingRepo, log)
	uploadService := service.NewUploadService(cfg.UploadDir, cfg.MaxUploadBytes, log)
	sessionService := service.NewSessionService(sessionRepo, userRepo, questionRepo, mcqRepo, settingService, gradeOrchestrator, rdb, log)
	mcqService := service.NewMCQService(mcqRepo, userRepo, log)
	boardService := service.NewLeaderboardService(boardRepo, sessionRepo, userRepo, cfg.LeaderboardTTL, nil, log)
	practiceService := service.NewPracticeService(practiceRepo, sessionRepo, questionRepo, settingService, gradeOrchestrator, log)
	contentService := service.NewContentService(questionRepo, uploadService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(userService, authService, log),
		Submit:      handler.NewSubmitHandler(sessionService, uploadService, log),
		Leaderboard: handler.NewLeaderboardHandler(boardService, log),
		Result:      handler.NewResultHandler(sessionService, boardService, log),
		Practice:    handler.NewPracticeHandler(practiceService, log),
		Question:    handler.NewQuestionHandler(contentService, mcqService, log),
		Admin:       handler.NewAdminHandler(contentService, mcqService, settingService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	emailWorker := worker.NewEmailWorker(rdb, mailer.New(cfg, log), log)
	go emailWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.New(cfg, handlers, authService, rdb)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the email worker and let it finish an in-flight delivery.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

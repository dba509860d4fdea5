package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/veritest/assess-api/internal/config"
	"github.com/veritest/assess-api/internal/database"
	"github.com/veritest/assess-api/internal/handler"
	"github.com/veritest/assess-api/internal/middleware"
	"github.com/veritest/assess-api/internal/repository"
	"github.com/veritest/assess-api/internal/router"
	"github.com/veritest/assess-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assessmentRepo := repository.NewAssessmentRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	attemptDetailRepo := repository.NewAttemptDetailRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)

	assessmentService := service.NewAssessmentService(assessmentRepo, redisClient, cfg.AssessmentCacheTTL, logger)
	attemptService := service.NewAttemptService(attemptRepo, assessmentRepo, questionRepo, sessionRepo, service.NewSampler(nil), logger)
	answerService := service.NewAnswerService(attemptDetailRepo, validate, logger)
	proctoringService := service.NewProctoringService(attemptRepo, validate, logger)
	gradingService := service.NewGradingService(attemptRepo, submissionRepo, logger)
	candidateService := service.NewCandidateService(candidateRepo, logger)
	reviewService := service.NewReviewService(attemptDetailRepo, validate, logger)

	assessmentHandler := handler.NewAssessmentHandler(assessmentService, attemptService, logger)
	attemptHandler := handler.NewAttemptHandler(attemptService, proctoringService, gradingService, logger)
	answerHandler := handler.NewAnswerHandler(answerService, logger)
	candidateHandler := handler.NewCandidateHandler(candidateService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AssessmentHandler: assessmentHandler,
		AttemptHandler:    attemptHandler,
		AnswerHandler:     answerHandler,
		CandidateHandler:  candidateHandler,
		ReviewHandler:     reviewHandler,
		SessionMiddleware: middleware.SessionProtected(cfg.JWTSecret, sessionRepo, nil),
		StartLimiter:      middleware.RateLimit("attempt-start", cfg.StartRateLimit, cfg.StartRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

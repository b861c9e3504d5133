package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/database"
	"github.com/stemsi/lms-backend/internal/event"
	"github.com/stemsi/lms-backend/internal/gemini"
	"github.com/stemsi/lms-backend/internal/handler"
	"github.com/stemsi/lms-backend/internal/jobs"
	"github.com/stemsi/lms-backend/internal/logger"
	"github.com/stemsi/lms-backend/internal/questionbank"
	"github.com/stemsi/lms-backend/internal/questionsource"
	"github.com/stemsi/lms-backend/internal/repository"
	"github.com/stemsi/lms-backend/internal/router"
	"github.com/stemsi/lms-backend/internal/service"
	"github.com/stemsi/lms-backend/internal/validator"
	"github.com/stemsi/lms-backend/internal/worker"
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
		Msg("Starting LMS Backend")

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

	// ─── Domain Events ─────────────────────────────────────────────────
	var events event.Publisher = event.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		events = event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, log)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Kafka event publishing enabled")
	}
	defer events.Close()

	// ─── Question Sources ──────────────────────────────────────────────
	// The bank is always last so resolution never comes back empty.
	var sources []questionsource.Source
	generator := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeneratorTimeout,
	})
	if generator.Enabled() {
		sources = append(sources, questionsource.NewGeneratedSource(generator))
		log.Info().Str("model", cfg.GeminiModel).Msg("Question generation enabled")
	}
	sources = append(sources, questionsource.NewBankSource(questionbank.Standard()))
	resolver := questionsource.NewResolver(log, sources...)

	// ─── Initialize Repositories ───────────────────────────────────────
	testRepo := repository.NewTestRepository(pool)
	testSubRepo := repository.NewTestSubmissionRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	assignmentSubRepo := repository.NewAssignmentSubmissionRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	notificationService := service.NewNotificationService(notificationRepo, worker.NewNotificationQueue(rdb), log)
	assessmentService := service.NewAssessmentService(
		testRepo, testSubRepo, assignmentRepo, assignmentSubRepo,
		studentRepo, resolver, events, cfg.DefaultQuestionCount, log,
	)
	enrollmentService := service.NewEnrollmentService(
		enrollmentRepo, studentRepo, courseRepo, notificationService, events, log,
	)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Instructor:   handler.NewInstructorHandler(assessmentService, log),
		Student:      handler.NewStudentHandler(assessmentService, log),
		Enrollment:   handler.NewEnrollmentHandler(enrollmentService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
		WS:           handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
		System:       handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	notificationWorker := worker.NewNotificationWorker(notificationRepo, rdb, log)
	workerDone := make(chan struct{})
	go func() {
		notificationWorker.Start(workerCtx)
		close(workerDone)
	}()

	// ─── Scheduled Jobs ────────────────────────────────────────────────
	scheduler := jobs.NewScheduler(log)
	if err := scheduler.AddNotificationPurge(cfg.NotificationPurgeCron, notificationService, cfg.NotificationRetention); err != nil {
		log.Fatal().Err(err).Msg("Invalid notification purge schedule")
	}
	scheduler.Start()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, tokenService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 2. Stop scheduling, then let the worker drain its queue.
	scheduler.Stop(shutdownCtx)
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Notification worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/proffreport/profreport-backend/internal/catalog"
	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/database"
	"github.com/proffreport/profreport-backend/internal/gateway"
	"github.com/proffreport/profreport-backend/internal/handler"
	"github.com/proffreport/profreport-backend/internal/logger"
	"github.com/proffreport/profreport-backend/internal/repository"
	"github.com/proffreport/profreport-backend/internal/router"
	"github.com/proffreport/profreport-backend/internal/service"
	"github.com/proffreport/profreport-backend/internal/validator"
	"github.com/proffreport/profreport-backend/internal/worker"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
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
		Str("api_base_url", cfg.APIBaseURL).
		Msg("Starting ProfReport Backend")

	if len(cfg.AccessCodeHashes) == 0 {
		log.Warn().Msg("ACCESS_CODE_HASHES is empty, falling back to the legacy access code")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Load Test Catalog ─────────────────────────────────────────────
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load test catalog")
	}
	for _, t := range cat.Tests() {
		log.Info().
			Str("test_type", string(t.TestType)).
			Int("questions", t.TotalQuestions).
			Msg("Test loaded")
	}

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
	sessionRepo := repository.NewWizardSessionRepository(rdb, cfg.SessionTTL)
	queueRepo := repository.NewQueueRepository(rdb)
	contactRepo := repository.NewContactRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	// ─── Initialize Gateway ────────────────────────────────────────────
	httpClient := &http.Client{Timeout: cfg.SubmitTimeout}
	questionnaireClient := gateway.NewQuestionnaireClient(cfg.APIBaseURL, httpClient, cfg.SubmitTimeout, log)
	submitter := gateway.NewHTTPSubmitter(cfg.APIBaseURL, httpClient, cfg.SubmitTimeout, log)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	wizardService := service.NewWizardService(service.WizardDeps{
		Catalog:       cat,
		Store:         sessionRepo,
		Tokens:        tokenService,
		Access:        service.NewAccessService(cfg.AccessCodeHashes),
		Sender:        questionnaireClient,
		Submitter:     submitter,
		Queue:         queueRepo,
		SubmitTimeout: cfg.SubmitTimeout,
		ExitRedirect:  cfg.ExitRedirectURL,
	}, log)
	contactService := service.NewContactService(queueRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"postgres": pool.Ping,
		}, queueRepo, log),
		Catalog: handler.NewCatalogHandler(cat),
		Contact: handler.NewContactHandler(contactService, log),
		Wizard:  handler.NewWizardHandler(wizardService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	// A worker that fails cancels groupCtx, which stops and drains the other.
	workers, groupCtx := errgroup.WithContext(workerCtx)

	contactWorker := worker.NewContactWorker(contactRepo, rdb, log)
	submissionWorker := worker.NewSubmissionWorker(submissionRepo, rdb, log)

	workers.Go(func() error { return contactWorker.Start(groupCtx) })
	workers.Go(func() error { return submissionWorker.Start(groupCtx) })

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, tokenService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests. In-flight submissions get the
	// full submit timeout to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	if err := workers.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

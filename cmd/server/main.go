package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/api"
	"github.com/mutaaf/ramadan-guide-sub002/internal/auth"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/repository"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/mutaaf/ramadan-guide-sub002/internal/status"
	"github.com/mutaaf/ramadan-guide-sub002/internal/storage"
	"github.com/mutaaf/ramadan-guide-sub002/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting companion pipeline server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// AI clients. A missing credential does not stop the server; requests
	// that need the client report a configuration error instead.
	completion, err := ai.NewCompletionClient(&cfg.OpenAI, log)
	if err != nil {
		log.Warn().Err(err).Msg("Completion client not configured")
		completion = unconfiguredCompletion{}
	}
	transcription, err := ai.NewTranscriptionClient(&cfg.OpenAI, log)
	if err != nil {
		log.Warn().Err(err).Msg("Transcription client not configured")
		transcription = unconfiguredTranscription{}
	}

	// Blob store, same policy as the AI clients
	blob, err := storage.NewVercelBlobStore(cfg.Publish.BlobTokenEnv, log)
	if err != nil {
		log.Warn().Err(err).Msg("Blob store not configured")
		blob = unconfiguredBlobStore{}
	}

	// Generation status store: Redis when configured, in-memory otherwise
	var statusStore status.Store
	if cfg.Status.RedisURL != "" {
		redisStore, err := status.NewRedisStore(context.Background(), cfg.Status.RedisURL, cfg.Status.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisStore.Close()
		statusStore = redisStore
		log.Info().Msg("Using Redis generation status store")
	} else {
		statusStore = status.NewMemoryStore()
		log.Info().Msg("Using in-memory generation status store")
	}

	// Initialize services
	services := service.NewServices(service.Deps{
		Completion:    completion,
		Transcription: transcription,
		Blob:          blob,
		Mirror:        storage.NewMirror(cfg.Publish.DataDir),
		Status:        statusStore,
		Repos:         repos,
	}, cfg, log)

	// Admin credential verifier
	verifier := auth.NewTokenVerifier(cfg.Admin.Secret)
	if cfg.Admin.Secret == "" {
		log.Warn().Msg("ADMIN_SECRET is not set, admin endpoints will report a configuration error")
	}

	// Initialize router
	router := api.NewRouter(services, verifier, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// unconfiguredCompletion stands in when no provider credential is set
type unconfiguredCompletion struct{}

func (unconfiguredCompletion) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	return "", ai.ErrMissingAPIKey
}

// unconfiguredTranscription stands in when no provider credential is set
type unconfiguredTranscription struct{}

func (unconfiguredTranscription) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return "", ai.ErrMissingAPIKey
}

// unconfiguredBlobStore stands in when no blob token is set
type unconfiguredBlobStore struct{}

func (unconfiguredBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	return "", storage.ErrMissingBlobToken
}

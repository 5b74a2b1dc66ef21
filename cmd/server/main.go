package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/config"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/database"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/jobs"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/logging"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/routes"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/services"
	"github.com/ahmetcoskunkizilkaya/sighting-board/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	level := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if err := initSentry(cfg); err != nil {
		slog.Error("sentry init failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store
	var records storage.RecordStore
	var pgLogHandler *logging.PGHandler
	var tasks []jobs.Task
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		records = storage.NewGormRecordStore(database.DB)

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			logging.NewStdoutHandler(level),
			pgLogHandler,
		)))
		tasks = append(tasks, jobs.PruneLogsTask(database.DB, cfg.LogRetention, cfg.LogRetentionInterval))
	default:
		slog.Warn("using in-memory record store; sightings will not survive a restart")
		records = storage.NewMemoryRecordStore()
	}

	// Blob store
	var blobs storage.BlobStore
	switch cfg.BlobDriver {
	case config.DriverS3:
		client := storage.NewS3Client(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		blobs = storage.NewS3BlobStore(client, cfg.S3Bucket)
	default:
		slog.Warn("using in-memory blob store; attachments will not survive a restart")
		blobs = storage.NewMemoryBlobStore()
	}

	// Services
	lifecycleService := services.NewLifecycleService(records, blobs, services.LifecycleConfig{
		PendingTTL: cfg.PendingTTL,
		BlobTTL:    cfg.BlobTTL,
	})
	feedService := services.NewFeedService(records, blobs, cfg.ImageBaseURL)

	// Background jobs
	tasks = append(tasks, jobs.ExpirePendingTask(lifecycleService, cfg.ExpiryInterval))
	runner := jobs.Start(ctx, tasks...)

	// Handlers
	sightingHandler := handlers.NewSightingHandler(lifecycleService, feedService)
	moderationHandler := handlers.NewModerationHandler(lifecycleService, feedService)
	imageHandler := handlers.NewImageHandler(feedService)
	healthHandler := handlers.NewHealthHandler(records)

	// Fiber app
	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, sightingHandler, moderationHandler, imageHandler, healthHandler)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver, "blobs", cfg.BlobDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	runner.Stop()

	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if database.DB != nil {
		if err := database.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// initSentry is a no-op without a DSN.
func initSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      cfg.AppEnv,
	})
}

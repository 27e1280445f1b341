// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newagesw/sales-bi/backend-go/internal/analytics"
	"github.com/newagesw/sales-bi/backend-go/internal/api"
	"github.com/newagesw/sales-bi/backend-go/internal/cache"
	"github.com/newagesw/sales-bi/backend-go/internal/config"
	"github.com/newagesw/sales-bi/backend-go/internal/domain"
	"github.com/newagesw/sales-bi/backend-go/internal/ingest"
	"github.com/newagesw/sales-bi/backend-go/internal/presets"
	"github.com/newagesw/sales-bi/backend-go/internal/repository/postgres"
	"github.com/newagesw/sales-bi/backend-go/internal/service"
	"github.com/newagesw/sales-bi/backend-go/internal/storage"
	"github.com/newagesw/sales-bi/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Durable store is optional; without it the dataset lives in memory
	// until the next upload.
	var datasetRepo *postgres.DatasetRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		datasetRepo = postgres.NewDatasetRepository(db)
		if err := datasetRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}
	}

	// Redis backs both the dashboard response cache and the saved filter
	// presets; both degrade gracefully when it is disabled.
	dashCache := cache.NewNoopDashboardCache()
	presetStore := presets.NewMemoryStore()
	if cfg.Cache.Enabled {
		client, err := cache.NewRedisClient(cfg.Cache)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()

		dashCache = cache.NewDashboardCache(client, time.Duration(cfg.Cache.DashboardTTLSeconds)*time.Second)
		presetStore = presets.NewRedisStore(client)
	}

	var archive storage.ObjectStorage = storage.NewNoopStorage()
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to ensure storage bucket: %v", err)
		}
		archive = minioClient
	}

	// Build the analytical engine, warm from the durable store when
	// available.
	engine := analytics.NewEngine(logger.Log)
	if datasetRepo != nil {
		records, err := datasetRepo.LoadAll(ctx)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		if len(records) > 0 {
			engine.Replace(records)
		}
	}

	salesService := service.NewSalesService(engine, dashCache, archive, repoOrNil(datasetRepo), logger.Log)

	// Watch the inbox directory for dataset drops alongside the HTTP
	// upload path.
	watchCtx, stopWatcher := context.WithCancel(ctx)
	defer stopWatcher()
	watcher := ingest.NewWatcher(
		cfg.App.WatchDir,
		time.Duration(cfg.App.WatchIntervalSeconds)*time.Second,
		func(ctx context.Context, records []domain.ShipmentRecord) error {
			return salesService.ReplaceDataset(ctx, records)
		},
		logger.Log,
	)
	go watcher.Run(watchCtx)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		SalesService: salesService,
		PresetStore:  presetStore,
		UploadDir:    cfg.App.UploadDir,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")
	stopWatcher()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// repoOrNil keeps a nil *DatasetRepository from becoming a non-nil
// interface value.
func repoOrNil(repo *postgres.DatasetRepository) service.DatasetPersister {
	if repo == nil {
		return nil
	}
	return repo
}

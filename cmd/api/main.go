package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"void-shop/internal/catalog"
	"void-shop/internal/config"
	"void-shop/internal/database"
	"void-shop/internal/handler"
	"void-shop/internal/repository"
	"void-shop/internal/router"
	"void-shop/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting void-shop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Initialize repository and services
	inventoryRepo := repository.NewInventoryRepository(pool, logger)
	inventoryService := service.NewInventoryService(inventoryRepo, logger)
	purchaseService := service.NewPurchaseService(inventoryRepo, logger)
	adminService := service.NewAdminService(inventoryRepo, cfg.Seed.DefaultQuantity, logger)

	// Seed the catalog if the store is empty
	seed, err := loadSeedCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}
	if err := inventoryService.SeedIfEmpty(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(inventoryService, purchaseService, adminService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	// Initialize router
	mux := router.New(inventoryHandler, healthHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadSeedCatalog resolves the seed catalog: a configured catalog file
// (fetched from S3 with local fallback when enabled), or the built-in
// default catalog.
func loadSeedCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]catalog.SeedProduct, error) {
	if cfg.Seed.CatalogFile == "" {
		logger.Info().Msg("no catalog file configured, using built-in catalog")
		return catalog.Default(), nil
	}

	fileLoader := catalog.NewFileLoader(logger)
	var loader catalog.Loader = fileLoader

	if cfg.Seed.S3Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.S3Prefix, true, logger)
		}
	}

	return loader.Load(ctx, cfg.Seed.CatalogFile)
}

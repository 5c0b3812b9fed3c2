package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/console/internal/config"
	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/console/internal/logging"
	"github.com/JonMunkholm/console/internal/seed"
	"github.com/JonMunkholm/console/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"page_size", cfg.Console.PageSize,
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Load the initial dataset
	ds, err := seed.Load(cfg.Seed.File)
	if err != nil {
		slog.Error("failed to load seed dataset", "error", err, "file", cfg.Seed.File)
		os.Exit(1)
	}

	service := console.NewService(
		console.WithPageSize(cfg.Console.PageSize),
		console.WithPricing(tables.Pricing{
			TaxRate:     cfg.Console.TaxRate,
			ShippingFee: cfg.Console.ShippingFee,
		}),
		console.WithQueueOptions(core.WithDefaultLifetime(cfg.Notify.DefaultLifetime)),
	)
	if err := service.Load(ds); err != nil {
		slog.Error("failed to seed stores", "error", err)
		os.Exit(1)
	}

	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
	)
	for key, n := range service.Counts() {
		slog.Debug("table seeded", "table", key, "records", n)
	}

	// Create server with config
	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Start audit pruner with config values
	go service.Audit.StartPruner(jobCtx, core.PruneConfig{
		MaxEntries:    cfg.Audit.MaxEntries,
		CheckInterval: cfg.Audit.PruneInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Shutdown waits for in-flight exports before returning
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

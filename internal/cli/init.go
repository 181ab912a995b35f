// Package cli provides common process initialization utilities for
// cmd/pocketledger.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pocketledger/internal/config"
	"pocketledger/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the ledger store. A storage init failure is fatal:
// the process exits rather than serving with no working medium.
func OpenStore(logger *slog.Logger, cfg *config.Config) *storage.Store {
	store, err := storage.Open(cfg.DBPath, cfg.DefaultCurrency)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	return store
}

// ShutdownContext returns a context cancelled on SIGINT/SIGTERM together
// with the timeout to allow for draining once the signal arrives.
func ShutdownContext(logger *slog.Logger, timeout time.Duration) (context.Context, context.CancelFunc, time.Duration) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx, cancel, timeout
}

// Package cli provides common initialization utilities for the
// expensetracker entry point: environment loading, logging setup,
// configuration validation, and store bootstrap.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/djr812/ExpenseTracker/internal/config"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration, sets up logging at the
// configured level, and validates the rest of the config. Exits the
// process on validation failure.
func LoadAndValidateConfig() (*config.Config, *log.Logger) {
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg, logger
}

// InitStore opens the expense store, runs migrations, and returns it.
// Exits the process on failure.
func InitStore(logger *log.Logger, cfg *config.Config) *storage.Store {
	store, err := storage.Open(storage.Config{
		Path:         cfg.DBPath,
		MaxRetries:   cfg.DBMaxRetries,
		RetryBackoff: cfg.DBRetryBackoff,
	})
	if err != nil {
		logger.Error("Failed to open expense store", log.FieldError, err, log.FieldDBPath, cfg.DBPath)
		os.Exit(1)
	}
	return store
}

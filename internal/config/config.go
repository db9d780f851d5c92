package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBPath         string
	DBMaxRetries   int
	DBRetryBackoff time.Duration

	// Reports
	ReportsDir string

	// Login
	LoginAttempts int

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DBPath:         getEnv("EXPENSE_DB_PATH", "./data/expenses.db"),
		DBMaxRetries:   getEnvInt("EXPENSE_DB_MAX_RETRIES", 3),
		DBRetryBackoff: getEnvDuration("EXPENSE_DB_RETRY_BACKOFF", 500*time.Millisecond),

		ReportsDir: getEnv("EXPENSE_REPORTS_DIR", "./Reports"),

		LoginAttempts: getEnvInt("EXPENSE_LOGIN_ATTEMPTS", 3),

		LogLevel: getEnv("EXPENSE_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		// Check if directory exists or can be created
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DBMaxRetries < 1 {
		errors = append(errors, fmt.Sprintf("invalid database retry count %d: must be at least 1", c.DBMaxRetries))
	} else if c.DBMaxRetries > 10 {
		errors = append(errors, fmt.Sprintf("invalid database retry count %d: must be at most 10", c.DBMaxRetries))
	}

	if c.DBRetryBackoff < time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid database retry backoff %v: must be at least 1ms", c.DBRetryBackoff))
	} else if c.DBRetryBackoff > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid database retry backoff %v: must be at most 1 minute", c.DBRetryBackoff))
	}

	if c.ReportsDir == "" {
		errors = append(errors, "reports directory cannot be empty")
	}

	if c.LoginAttempts < 1 {
		errors = append(errors, fmt.Sprintf("invalid login attempt count %d: must be at least 1", c.LoginAttempts))
	} else if c.LoginAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid login attempt count %d: must be at most 10", c.LoginAttempts))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.LogLevel, level) {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

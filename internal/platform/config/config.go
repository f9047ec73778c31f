package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"rcgate/pkg/birthnumber"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
	BirthNumbers    BirthNumbers
}

// BirthNumbers configures parsing behaviour.
type BirthNumbers struct {
	// Separator is used when a request does not ask for one.
	Separator string
	// RollingCentury resolves ten-digit numbers against the current year
	// instead of reading them as 19yy.
	RollingCentury   bool
	MaxBatchSize     int
	BatchConcurrency int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("RC_GATEWAY_ADDR", ":8080"),
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "json"),
		BirthNumbers: BirthNumbers{
			Separator:        envOr("RC_SEPARATOR", "/"),
			RollingCentury:   os.Getenv("RC_ROLLING_CENTURY") == "true",
			MaxBatchSize:     100,
			BatchConcurrency: 8,
		},
	}

	if err := birthnumber.ValidateSeparator(cfg.BirthNumbers.Separator); err != nil {
		return Server{}, fmt.Errorf("RC_SEPARATOR: %w", err)
	}

	var err error
	if cfg.BirthNumbers.MaxBatchSize, err = envInt("RC_MAX_BATCH", cfg.BirthNumbers.MaxBatchSize); err != nil {
		return Server{}, err
	}
	if cfg.BirthNumbers.BatchConcurrency, err = envInt("RC_BATCH_CONCURRENCY", cfg.BirthNumbers.BatchConcurrency); err != nil {
		return Server{}, err
	}
	if raw := os.Getenv("RC_SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Server{}, fmt.Errorf("RC_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

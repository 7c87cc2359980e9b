// Package config loads fileverify defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env names for configuration. Empty or unset means use default.
const (
	EnvAlgorithm = "FILEVERIFY_ALGORITHM"
	EnvChunkSize = "FILEVERIFY_CHUNK_SIZE"
	EnvMaxRate   = "FILEVERIFY_MAX_RATE"
	EnvLogLevel  = "FILEVERIFY_LOG_LEVEL"
)

// Default values when env is unset.
const (
	DefaultAlgorithm = "sha256"
	DefaultChunkSize = 4096
	DefaultLogLevel  = "info"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	Algorithm string
	ChunkSize int
	MaxRate   int
	LogLevel  string
}

// Load reads an optional .env file from the working directory, then the
// process environment. A missing .env is not an error. The algorithm and log
// level are validated by their consumers; numeric values are validated here.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Algorithm: DefaultAlgorithm,
		ChunkSize: DefaultChunkSize,
		LogLevel:  DefaultLogLevel,
	}
	if v := os.Getenv(EnvAlgorithm); v != "" {
		cfg.Algorithm = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	chunk, err := positiveInt(EnvChunkSize, DefaultChunkSize, false)
	if err != nil {
		return nil, err
	}
	cfg.ChunkSize = chunk

	maxRate, err := positiveInt(EnvMaxRate, 0, true)
	if err != nil {
		return nil, err
	}
	cfg.MaxRate = maxRate

	return cfg, nil
}

func positiveInt(key string, def int, allowZero bool) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	if n < 0 && allowZero {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	if n <= 0 && !allowZero {
		return 0, fmt.Errorf("%s must be greater than zero", key)
	}
	return n, nil
}

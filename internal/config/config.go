// Package config loads application settings from the environment,
// with optional .env support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/joho/godotenv"
)

const defaultBackendPort = "8080"

// Config holds everything the server needs to start.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	BackendPort  string
	ExpectedHost string
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing or weak required values fail fast.
func Load() (*Config, error) {
	// Absent .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		BackendPort:  os.Getenv("BACKEND_PORT"),
		ExpectedHost: os.Getenv("EXPECTED_HOST"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if err := auth.ValidateSecret(cfg.JWTSecret); err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}

	if cfg.BackendPort == "" {
		cfg.BackendPort = defaultBackendPort
	}

	return cfg, nil
}

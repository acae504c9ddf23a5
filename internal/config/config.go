// Package config loads server configuration from the environment.
//
// A .env file is read first if present (local development convenience), then
// real environment variables take over. Every value has a default so the
// server starts with zero configuration; only JWT_SECRET is required.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Load reads configuration from .env (if any) and the environment.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means we rely on the
	// actual environment, which is the normal production setup.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      8080,
		DBPath:    "data/linkhub.db",
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return nil, errors.New("config: PORT must be a positive integer")
		}
		cfg.Port = port
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required (e.g. JWT_SECRET=$(openssl rand -hex 32))")
	}

	return cfg, nil
}

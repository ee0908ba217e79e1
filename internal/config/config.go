// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is only suitable
// for local development.
const DefaultJWTSecret = "your-super-secret-jwt-key"

const (
	minBcryptCost = 4
	maxBcryptCost = 14
)

// Config holds all runtime settings.
type Config struct {
	Port          string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// AuthRateLimit is the sustained number of /auth requests per second
	// allowed per client address. Zero disables limiting.
	AuthRateLimit float64
	AuthRateBurst float64
}

// UsingDefaultSecret reports whether tokens are signed with the
// development fallback secret.
func (c Config) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Load reads the configuration. Variables already present in the process
// environment take precedence over the .env file named by ENV_FILE, and a
// missing .env file is not an error.
func Load() (Config, error) {
	envFile := envOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := Config{
		Port:          envOrDefault("PORT", "3000"),
		JWTSecret:     envOrDefault("JWT_SECRET", DefaultJWTSecret),
		AdminName:     envOrDefault("ADMIN_NAME", "Admin User"),
		AdminEmail:    envOrDefault("ADMIN_EMAIL", "admin@no.com"),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", "admin123"),
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(envOrDefault("TOKEN_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	if cfg.BcryptCost, err = strconv.Atoi(envOrDefault("BCRYPT_COST", "10")); err != nil {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if cfg.BcryptCost < minBcryptCost || cfg.BcryptCost > maxBcryptCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, cfg.BcryptCost)
	}

	if cfg.AuthRateLimit, err = strconv.ParseFloat(envOrDefault("AUTH_RATE_LIMIT", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	if cfg.AuthRateBurst, err = strconv.ParseFloat(envOrDefault("AUTH_RATE_BURST", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}
	if cfg.AuthRateLimit < 0 || cfg.AuthRateBurst < 1 {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT must be >= 0 and AUTH_RATE_BURST >= 1, got %g and %g", cfg.AuthRateLimit, cfg.AuthRateBurst)
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

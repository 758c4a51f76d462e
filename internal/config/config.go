// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv         string
	Port           string
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	LogFormat      string
	CurrencySymbol string
	CORSOrigin     string
}

const devSecret = "dev-only-secret-change-me"

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	ttl, err := time.ParseDuration(valueOrDefault(k.String("TOKEN_TTL"), "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		AppEnv:         valueOrDefault(k.String("APP_ENV"), "development"),
		Port:           valueOrDefault(k.String("PORT"), "8080"),
		DBPath:         valueOrDefault(k.String("DB_PATH"), "./data/invoices.db"),
		JWTSecret:      k.String("JWT_SECRET"),
		TokenTTL:       ttl,
		LogLevel:       valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:      valueOrDefault(k.String("LOG_FORMAT"), "text"),
		CurrencySymbol: valueOrDefault(k.String("CURRENCY_SYMBOL"), "Rs"),
		CORSOrigin:     valueOrDefault(k.String("CORS_ALLOWED_ORIGIN"), "*"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = devSecret
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func valueOrDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

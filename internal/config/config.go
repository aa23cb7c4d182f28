package config

import (
	"fmt"
	"os"
	"time"

	// Load .env into the process environment before Load reads it.
	_ "github.com/joho/godotenv/autoload"
)

const minSessionSecretLen = 32

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	SessionSecret string
	SessionMaxAge time.Duration
	LogLevel      string
	LogFormat     string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if len(cfg.SessionSecret) < minSessionSecretLen {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d characters, got %d", minSessionSecretLen, len(cfg.SessionSecret))
	}

	maxAge := getEnv("SESSION_MAX_AGE", "168h")
	d, err := time.ParseDuration(maxAge)
	if err != nil {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be a duration: %w", err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be positive, got %s", d)
	}
	cfg.SessionMaxAge = d

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

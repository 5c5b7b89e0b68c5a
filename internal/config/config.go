package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	Provider       string
	AllowedOrigins []string
	HealthProbe    Duration
	Rawg           RawgConfig
	Sessions       SessionConfig
	Metrics        MetricsConfig
	Logging        LoggingConfig
}

// SessionConfig controls browse session eviction.
type SessionConfig struct {
	TTL           Duration
	SweepInterval Duration
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// Variables from a .env file (DOTENV_FILE, default ".env") fill in anything
// not already set in the process environment.
func Load() (Config, error) {
	if err := loadDotenv(envOrDefault(envDotenvFile, defaultDotenvFile)); err != nil {
		return Config{}, err
	}
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		Provider:       strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		AllowedOrigins: listEnvOrDefault(envCorsOrigins, defaultCorsOrigins),
		HealthProbe:    durationEnvOrDefault(envHealthProbe, defaultHealthProbe),
		Rawg:           loadRawg(),
		Sessions: SessionConfig{
			TTL:           durationEnvOrDefault(envSessionTTL, defaultSessionTTL),
			SweepInterval: durationEnvOrDefault(envSessionSweep, defaultSessionSweep),
		},
		Metrics: loadMetrics(),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}, nil
}

// loadDotenv never overrides variables already present; a missing file is fine.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mustLoad(t *testing.T) Config {
	t.Helper()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envDotenvFile, filepath.Join(t.TempDir(), "missing.env"))

	cfg := mustLoad(t)

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != ProviderRawg {
		t.Fatalf("expected default provider %s, got %s", ProviderRawg, cfg.Provider)
	}
	if cfg.Rawg.BaseURL != defaultRawgBaseURL {
		t.Fatalf("expected default rawg base url, got %s", cfg.Rawg.BaseURL)
	}
	if cfg.Rawg.APIKey != "" {
		t.Fatalf("expected empty api key by default, got %s", cfg.Rawg.APIKey)
	}
	if cfg.Rawg.Timeout != defaultRawgTimeout || cfg.Rawg.RatePerSecond != defaultRawgRate || cfg.Rawg.Burst != defaultRawgBurst {
		t.Fatalf("unexpected rawg defaults %+v", cfg.Rawg)
	}
	if cfg.Sessions.TTL != defaultSessionTTL || cfg.Sessions.SweepInterval != defaultSessionSweep {
		t.Fatalf("unexpected session defaults %+v", cfg.Sessions)
	}
	if cfg.HealthProbe != defaultHealthProbe {
		t.Fatalf("expected default health probe interval, got %s", cfg.HealthProbe)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.Metrics.ServiceName != defaultService || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envDotenvFile, "")
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "FIXTURE")
	t.Setenv(envRawgBaseURL, "http://example.com/api")
	t.Setenv(envRawgAPIKey, "secret-key")
	t.Setenv(envRawgTimeout, "3s")
	t.Setenv(envRawgRate, "1.5")
	t.Setenv(envRawgBurst, "2")
	t.Setenv(envSessionTTL, "5m")
	t.Setenv(envSessionSweep, "10s")
	t.Setenv(envCorsOrigins, "http://localhost:3000, ,https://games.example.com")
	t.Setenv(envLogFormat, "json")

	cfg := mustLoad(t)

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Provider != ProviderFixture {
		t.Fatalf("expected provider to be lower-cased, got %s", cfg.Provider)
	}
	if cfg.Rawg.BaseURL != "http://example.com/api" || cfg.Rawg.APIKey != "secret-key" {
		t.Fatalf("unexpected rawg overrides %+v", cfg.Rawg)
	}
	if cfg.Rawg.Timeout != 3*time.Second || cfg.Rawg.RatePerSecond != 1.5 || cfg.Rawg.Burst != 2 {
		t.Fatalf("unexpected rawg limits %+v", cfg.Rawg)
	}
	if cfg.Sessions.TTL != 5*time.Minute || cfg.Sessions.SweepInterval != 10*time.Second {
		t.Fatalf("unexpected session overrides %+v", cfg.Sessions)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://games.example.com" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %s", cfg.Logging.Format)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envDotenvFile, "")
	t.Setenv(envSessionTTL, "not-a-duration")
	t.Setenv(envHealthProbe, "0s")
	t.Setenv(envRawgRate, "-2")
	t.Setenv(envRawgBurst, "many")

	cfg := mustLoad(t)

	if cfg.Sessions.TTL != defaultSessionTTL {
		t.Fatalf("expected default ttl on invalid value, got %s", cfg.Sessions.TTL)
	}
	if cfg.HealthProbe != defaultHealthProbe {
		t.Fatalf("expected default probe interval on non-positive value, got %s", cfg.HealthProbe)
	}
	if cfg.Rawg.RatePerSecond != defaultRawgRate || cfg.Rawg.Burst != defaultRawgBurst {
		t.Fatalf("expected default limits, got %+v", cfg.Rawg)
	}
}

func TestLoadReadsDotenvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "RAWG_API_KEY=from-file\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv(envDotenvFile, path)
	t.Setenv(envPort, "5000")
	// Registered so the value godotenv sets is removed after the test.
	t.Setenv(envRawgAPIKey, "")
	os.Unsetenv(envRawgAPIKey)

	cfg := mustLoad(t)

	if cfg.Rawg.APIKey != "from-file" {
		t.Fatalf("expected api key from dotenv, got %q", cfg.Rawg.APIKey)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected process env to win over dotenv, got %s", cfg.Port)
	}
}

func TestLoadRejectsUnreadableDotenv(t *testing.T) {
	t.Setenv(envDotenvFile, t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when dotenv path is a directory")
	}
}

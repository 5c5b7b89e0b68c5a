package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "CATALOG_PROVIDER"
	envCorsOrigins     = "CORS_ALLOWED_ORIGINS"
	envSessionTTL      = "SESSION_TTL"
	envSessionSweep    = "SESSION_SWEEP_INTERVAL"
	envHealthProbe     = "HEALTH_PROBE_INTERVAL"
	envRawgBaseURL     = "RAWG_BASE_URL"
	envRawgAPIKey      = "RAWG_API_KEY"
	envRawgTimeout     = "RAWG_TIMEOUT"
	envRawgRate        = "RAWG_RATE_PER_SECOND"
	envRawgBurst       = "RAWG_BURST"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envDotenvFile      = "DOTENV_FILE"
	defaultDotenvFile  = ".env"
	defaultPort        = "4000"
	defaultProvider    = ProviderRawg
	defaultCorsOrigins = "*"
	defaultMetricsPort = "9090"
	defaultService     = "game-explorer"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultRawgBaseURL = "https://api.rawg.io/api"
	defaultRawgTimeout = 10 * time.Second
	// RAWG's free tier tolerates a handful of requests per second.
	defaultRawgRate  = 5.0
	defaultRawgBurst = 10

	defaultSessionTTL   = 30 * time.Minute
	defaultSessionSweep = time.Minute
	defaultHealthProbe  = 2 * time.Minute
)

// Catalog provider names accepted by CATALOG_PROVIDER.
const (
	ProviderRawg    = "rawg"
	ProviderFixture = "fixture"
)

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/today-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	APIFootballBaseURL               string
	APIFootballKey                   string
	APIFootballTimeout               time.Duration
	APIFootballMaxRetries            int
	APIFootballTimezone              string
	APIFootballCircuitEnabled        bool
	APIFootballCircuitFailureCount   int
	APIFootballCircuitOpenTimeout    time.Duration
	APIFootballCircuitHalfOpenMaxReq int

	CacheFixturesTTL    time.Duration
	CachePredictionsTTL time.Duration
	CacheOddsTTL        time.Duration
	CacheReferenceTTL   time.Duration
	CacheMaxEntries     int

	EnrichWorkers            int
	EnrichRequireCountryFlag bool
	EnrichMaxFixtures        int

	UptraceEnabled      bool
	UptraceDSN          string
	UptraceLogsEnabled  bool
	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "today-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8000"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		APIFootballBaseURL:         strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballKey:             strings.TrimSpace(getEnv("API_FOOTBALL_KEY", "")),
		APIFootballTimezone:        strings.TrimSpace(getEnv("API_FOOTBALL_TIMEZONE", "Europe/Belgrade")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		BetterStackEndpoint:        strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackMinLevel:        logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "30s", &cfg.WriteTimeout},
		{"APP_SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"API_FOOTBALL_TIMEOUT", "5s", &cfg.APIFootballTimeout},
		{"API_FOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s", &cfg.APIFootballCircuitOpenTimeout},
		{"CACHE_FIXTURES_TTL", "5m", &cfg.CacheFixturesTTL},
		{"CACHE_PREDICTIONS_TTL", "1h", &cfg.CachePredictionsTTL},
		{"CACHE_ODDS_TTL", "1h", &cfg.CacheOddsTTL},
		{"CACHE_REFERENCE_TTL", "24h", &cfg.CacheReferenceTTL},
		{"BETTERSTACK_TIMEOUT", "3s", &cfg.BetterStackTimeout},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = value
	}

	ints := []struct {
		key      string
		fallback int
		min      int
		dst      *int
	}{
		{"API_FOOTBALL_MAX_RETRIES", 0, 0, &cfg.APIFootballMaxRetries},
		{"API_FOOTBALL_CIRCUIT_FAILURE_COUNT", 5, 1, &cfg.APIFootballCircuitFailureCount},
		{"API_FOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1, &cfg.APIFootballCircuitHalfOpenMaxReq},
		{"CACHE_MAX_ENTRIES", 1000, 1, &cfg.CacheMaxEntries},
		{"ENRICH_WORKERS", 16, 1, &cfg.EnrichWorkers},
		{"ENRICH_MAX_FIXTURES", 0, 0, &cfg.EnrichMaxFixtures},
	}
	for _, n := range ints {
		value, err := getEnvAsInt(n.key, n.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", n.key, err)
		}
		if value < n.min {
			return Config{}, fmt.Errorf("%s must be >= %d", n.key, n.min)
		}
		*n.dst = value
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"API_FOOTBALL_CIRCUIT_ENABLED", "true", &cfg.APIFootballCircuitEnabled},
		{"ENRICH_REQUIRE_COUNTRY_FLAG", "true", &cfg.EnrichRequireCountryFlag},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", "true", &cfg.UptraceLogsEnabled},
		{"BETTERSTACK_ENABLED", "false", &cfg.BetterStackEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
	}
	for _, b := range bools {
		value, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.dst = value
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIFootballBaseURL == "" {
		return fmt.Errorf("API_FOOTBALL_BASE_URL cannot be empty")
	}
	if c.APIFootballKey == "" && c.AppEnv == EnvProd {
		return fmt.Errorf("API_FOOTBALL_KEY is required when APP_ENV=%s", EnvProd)
	}
	if _, err := time.LoadLocation(c.APIFootballTimezone); err != nil {
		return fmt.Errorf("invalid API_FOOTBALL_TIMEZONE %q: %w", c.APIFootballTimezone, err)
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.BetterStackEnabled && c.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://v3.football.api-sports.io", cfg.APIFootballBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APIFootballTimeout)
	assert.Equal(t, 0, cfg.APIFootballMaxRetries)
	assert.Equal(t, "Europe/Belgrade", cfg.APIFootballTimezone)
	assert.True(t, cfg.APIFootballCircuitEnabled)

	assert.Equal(t, 5*time.Minute, cfg.CacheFixturesTTL)
	assert.Equal(t, time.Hour, cfg.CachePredictionsTTL)
	assert.Equal(t, time.Hour, cfg.CacheOddsTTL)
	assert.Equal(t, 24*time.Hour, cfg.CacheReferenceTTL)
	assert.Equal(t, 1000, cfg.CacheMaxEntries)

	assert.Equal(t, 16, cfg.EnrichWorkers)
	assert.True(t, cfg.EnrichRequireCountryFlag)
	assert.Equal(t, 0, cfg.EnrichMaxFixtures)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ProdRequiresAPIKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("API_FOOTBALL_KEY", "")

	_, err := Load()
	require.ErrorContains(t, err, "API_FOOTBALL_KEY")

	t.Setenv("API_FOOTBALL_KEY", "key-123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key-123", cfg.APIFootballKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("CACHE_FIXTURES_TTL", "30s")
	t.Setenv("CACHE_MAX_ENTRIES", "50")
	t.Setenv("ENRICH_WORKERS", "4")
	t.Setenv("ENRICH_REQUIRE_COUNTRY_FLAG", "false")
	t.Setenv("ENRICH_MAX_FIXTURES", "20")
	t.Setenv("API_FOOTBALL_TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.CacheFixturesTTL)
	assert.Equal(t, 50, cfg.CacheMaxEntries)
	assert.Equal(t, 4, cfg.EnrichWorkers)
	assert.False(t, cfg.EnrichRequireCountryFlag)
	assert.Equal(t, 20, cfg.EnrichMaxFixtures)
	assert.Equal(t, "UTC", cfg.APIFootballTimezone)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"CACHE_ODDS_TTL":           "soon",
		"CACHE_REFERENCE_TTL":      "0s",
		"CACHE_MAX_ENTRIES":        "0",
		"ENRICH_WORKERS":           "many",
		"API_FOOTBALL_MAX_RETRIES": "-1",
		"API_FOOTBALL_TIMEZONE":    "Mars/Olympus",
		"PPROF_ENABLED":            "maybe",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://token@api.uptrace.dev?grpc=4317", cfg.UptraceDSN)
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	_, err := Load()
	require.Error(t, err)
}

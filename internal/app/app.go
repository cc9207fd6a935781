package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/today-api/external/apifootball"
	"github.com/riskibarqy/today-api/internal/config"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/today-api/internal/platform/cache"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/riskibarqy/today-api/internal/platform/resilience"
	"github.com/riskibarqy/today-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func newHandler(cfg config.Config, logger *logging.Logger) (*httpapi.Handler, error) {
	cacheManager := cache.NewManager(cacheTierConfigs(cfg), cache.WithLogger(logger))

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIKey:     cfg.APIFootballKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})

	gateway := usecase.NewGateway(provider, cacheManager, logger)

	fixtureSvc, err := usecase.NewFixtureService(gateway, usecase.FixtureServiceConfig{
		Timezone:    cfg.APIFootballTimezone,
		Workers:     cfg.EnrichWorkers,
		Policy:      football.CompletenessPolicy{RequireCountryFlag: cfg.EnrichRequireCountryFlag},
		MaxFixtures: cfg.EnrichMaxFixtures,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build fixture service: %w", err)
	}

	referenceSvc := usecase.NewReferenceService(gateway, nil)

	return httpapi.NewHandler(fixtureSvc, referenceSvc, cacheManager, logger), nil
}

func cacheTierConfigs(cfg config.Config) map[cache.Tier]cache.TierConfig {
	ttls := map[cache.Tier]time.Duration{
		cache.TierFixtures:    cfg.CacheFixturesTTL,
		cache.TierPredictions: cfg.CachePredictionsTTL,
		cache.TierOdds:        cfg.CacheOddsTTL,
		cache.TierReference:   cfg.CacheReferenceTTL,
	}

	configs := cache.DefaultTierConfigs()
	for tier, ttl := range ttls {
		tc := configs[tier]
		if ttl > 0 {
			tc.TTL = ttl
		}
		if cfg.CacheMaxEntries > 0 {
			tc.MaxEntries = cfg.CacheMaxEntries
		}
		configs[tier] = tc
	}
	return configs
}

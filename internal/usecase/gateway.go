package usecase

import (
	"context"

	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/cache"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Source tells where a FetchResult envelope came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// Cache is the subset of cache.Manager the gateway needs.
type Cache interface {
	Lookup(ctx context.Context, t cache.Tier, key string) (any, bool)
	Insert(ctx context.Context, t cache.Tier, key string, value any)
}

// FetchRequest describes one upstream call. An empty Key disables caching.
type FetchRequest struct {
	Path  string
	Query football.Query
	Tier  cache.Tier
	Key   string
}

// FetchResult always carries a usable envelope. Cause is set only when
// Source is SourceFallback.
type FetchResult struct {
	Envelope football.Envelope
	Source   Source
	Cause    error
}

func (r FetchResult) Degraded() bool {
	return r.Source == SourceFallback
}

// Fetcher is implemented by Gateway.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) FetchResult
	Cached(ctx context.Context, t cache.Tier, key string) (football.Envelope, bool)
	Store(ctx context.Context, t cache.Tier, key string, env football.Envelope)
}

// Gateway funnels every upstream call through the cache tiers.
type Gateway struct {
	provider football.Provider
	cache    Cache
	logger   *logging.Logger
}

func NewGateway(provider football.Provider, c Cache, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		provider: provider,
		cache:    c,
		logger:   logger,
	}
}

// Fetch serves req from cache when possible and otherwise performs one
// upstream call. It never fails: upstream errors produce the fallback
// envelope, which is not cached.
func (g *Gateway) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.Gateway.Fetch",
		attribute.String("upstream.path", req.Path),
		attribute.String("cache.tier", req.Tier.String()),
	)
	defer span.End()

	if env, ok := g.Cached(ctx, req.Tier, req.Key); ok {
		span.SetAttributes(attribute.String("fetch.source", string(SourceCache)))
		return FetchResult{Envelope: env, Source: SourceCache}
	}

	// The result may be cached for other callers, so a client that goes
	// away must not cut the upstream call short.
	env, err := g.provider.Get(context.WithoutCancel(ctx), req.Path, req.Query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream fetch failed")
		span.SetAttributes(attribute.String("fetch.source", string(SourceFallback)))
		g.logger.WarnContext(ctx, "upstream fetch degraded to empty response",
			"path", req.Path,
			"cache_key", req.Key,
			"error", err,
		)
		return FetchResult{Envelope: football.Fallback(), Source: SourceFallback, Cause: err}
	}

	g.Store(ctx, req.Tier, req.Key, env)
	span.SetAttributes(attribute.String("fetch.source", string(SourceUpstream)))
	return FetchResult{Envelope: env, Source: SourceUpstream}
}

func (g *Gateway) Cached(ctx context.Context, t cache.Tier, key string) (football.Envelope, bool) {
	if key == "" || g.cache == nil {
		return football.Envelope{}, false
	}
	value, ok := g.cache.Lookup(ctx, t, key)
	if !ok {
		return football.Envelope{}, false
	}
	env, ok := value.(football.Envelope)
	return env, ok
}

func (g *Gateway) Store(ctx context.Context, t cache.Tier, key string, env football.Envelope) {
	if key == "" || g.cache == nil {
		return
	}
	g.cache.Insert(ctx, t, key, env)
}

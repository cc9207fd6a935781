package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/platform/cache"
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTimezone      = "Europe/Belgrade"
	DefaultEnrichWorkers = 16

	dateLayout = "2006-01-02"
)

type FixtureServiceConfig struct {
	// Timezone is sent upstream and decides what "today" means.
	Timezone string
	// Workers bounds how many fixtures are enriched at the same time.
	Workers int
	Policy  football.CompletenessPolicy
	// MaxFixtures caps the raw fixtures considered for enrichment. 0 means
	// no cap.
	MaxFixtures int
	Now         func() time.Time
}

type FixtureService struct {
	fetcher     Fetcher
	timezone    string
	location    *time.Location
	workers     int
	policy      football.CompletenessPolicy
	maxFixtures int
	now         func() time.Time
	logger      *logging.Logger
}

func NewFixtureService(fetcher Fetcher, cfg FixtureServiceConfig, logger *logging.Logger) (*FixtureService, error) {
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: load timezone %q: %v", ErrInvalidInput, cfg.Timezone, err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultEnrichWorkers
	}
	if cfg.MaxFixtures < 0 {
		cfg.MaxFixtures = 0
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		fetcher:     fetcher,
		timezone:    cfg.Timezone,
		location:    location,
		workers:     cfg.Workers,
		policy:      cfg.Policy,
		maxFixtures: cfg.MaxFixtures,
		now:         cfg.Now,
		logger:      logger,
	}, nil
}

// Location is the timezone used to resolve relative days.
func (s *FixtureService) Location() *time.Location {
	return s.location
}

func (s *FixtureService) FixturesToday(ctx context.Context) football.Envelope {
	return s.FixturesByDate(ctx, s.now().In(s.location))
}

func (s *FixtureService) FixturesYesterday(ctx context.Context) football.Envelope {
	return s.FixturesByDate(ctx, s.now().In(s.location).AddDate(0, 0, -1))
}

func (s *FixtureService) FixturesTomorrow(ctx context.Context) football.Envelope {
	return s.FixturesByDate(ctx, s.now().In(s.location).AddDate(0, 0, 1))
}

// FixturesByDate returns the fixtures of day enriched with predictions and
// odds, keeping only those that pass the completeness policy. Upstream order
// is preserved.
func (s *FixtureService) FixturesByDate(ctx context.Context, day time.Time) football.Envelope {
	date := day.Format(dateLayout)
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.FixturesByDate", attribute.String("fixtures.date", date))
	defer span.End()

	key := "fixtures_enriched_" + date
	if env, ok := s.fetcher.Cached(ctx, cache.TierFixtures, key); ok {
		return env
	}

	raw := s.fetcher.Fetch(ctx, FetchRequest{
		Path:  "fixtures",
		Query: football.Query{"date": date, "timezone": s.timezone},
	})
	if raw.Degraded() {
		return raw.Envelope
	}

	candidates := s.candidates(ctx, raw.Envelope.Response)
	enriched, err := s.enrichAll(ctx, candidates)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "fixture enrichment batch failed", "date", date, "error", err)
		return football.WithError(err.Error())
	}

	kept := make([]any, 0, len(enriched))
	for _, fx := range enriched {
		if s.policy.Complete(fx) {
			kept = append(kept, fx)
		}
	}
	span.SetAttributes(
		attribute.Int("fixtures.raw", len(raw.Envelope.Response)),
		attribute.Int("fixtures.kept", len(kept)),
	)

	result := football.NewEnvelope(kept)
	s.fetcher.Store(ctx, cache.TierFixtures, key, result)
	return result
}

type candidate struct {
	id      int64
	fixture football.Fixture
}

// candidates drops records without a usable id or kickoff timestamp.
func (s *FixtureService) candidates(ctx context.Context, items []any) []candidate {
	out := make([]candidate, 0, len(items))
	for _, item := range items {
		fx, ok := football.AsFixture(item)
		if !ok {
			continue
		}
		id, ok := fx.ID()
		if !ok {
			s.logger.DebugContext(ctx, "skip fixture without id")
			continue
		}
		if _, ok := fx.KickoffUnix(); !ok {
			s.logger.DebugContext(ctx, "skip fixture without timestamp", "fixture_id", id)
			continue
		}
		out = append(out, candidate{id: id, fixture: fx})
		if s.maxFixtures > 0 && len(out) == s.maxFixtures {
			break
		}
	}
	return out
}

func (s *FixtureService) enrichAll(ctx context.Context, candidates []candidate) ([]football.Fixture, error) {
	results := make([]football.Fixture, len(candidates))
	if len(candidates) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(candidates)))
	if err != nil {
		return nil, fmt.Errorf("%w: create worker pool: %v", ErrBatchFailed, err)
	}
	defer pool.Release()

	var batch panics.Catcher
	var workers sync.WaitGroup
	var submitErr error
	for i, c := range candidates {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			batch.Try(func() {
				results[i] = s.enrichOne(ctx, c)
			})
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("%w: submit fixture %d: %v", ErrBatchFailed, c.id, err)
			break
		}
	}
	workers.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	if r := batch.Recovered(); r != nil {
		return nil, fmt.Errorf("%w: %v", ErrBatchFailed, r.Value)
	}
	return results, nil
}

// enrichOne fetches predictions and odds side by side. A panic in either
// fetch only empties that list.
func (s *FixtureService) enrichOne(ctx context.Context, c candidate) football.Fixture {
	var predictions, odds []any

	var wg conc.WaitGroup
	wg.Go(func() {
		predictions = s.guardedList(ctx, "predictions", c.id, func() football.Envelope {
			return s.Predictions(ctx, c.id)
		})
	})
	wg.Go(func() {
		odds = s.guardedList(ctx, "odds", c.id, func() football.Envelope {
			return s.Odds(ctx, c.id)
		})
	})
	wg.Wait()

	return c.fixture.Enrich(predictions, odds)
}

func (s *FixtureService) guardedList(ctx context.Context, part string, id int64, fetch func() football.Envelope) []any {
	var pc panics.Catcher
	var out []any
	pc.Try(func() {
		out = fetch().Response
	})
	if r := pc.Recovered(); r != nil {
		s.logger.WarnContext(ctx, "fixture enrichment fetch panicked",
			"fixture_id", id,
			"part", part,
			"panic", fmt.Sprint(r.Value),
		)
		return []any{}
	}
	if out == nil {
		return []any{}
	}
	return out
}

func (s *FixtureService) LiveFixtures(ctx context.Context) football.Envelope {
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  "fixtures",
		Query: football.Query{"live": "all", "timezone": s.timezone},
		Tier:  cache.TierFixtures,
		Key:   "live_fixtures",
	}).Envelope
}

func (s *FixtureService) Events(ctx context.Context, fixtureID int64) football.Envelope {
	return s.perFixture(ctx, "fixtures/events", "events", fixtureID)
}

func (s *FixtureService) Lineups(ctx context.Context, fixtureID int64) football.Envelope {
	return s.perFixture(ctx, "fixtures/lineups", "lineups", fixtureID)
}

func (s *FixtureService) Statistics(ctx context.Context, fixtureID int64) football.Envelope {
	return s.perFixture(ctx, "fixtures/statistics", "statistics", fixtureID)
}

func (s *FixtureService) perFixture(ctx context.Context, path, prefix string, fixtureID int64) football.Envelope {
	id := strconv.FormatInt(fixtureID, 10)
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  path,
		Query: football.Query{"fixture": id},
		Tier:  cache.TierReference,
		Key:   prefix + "_" + id,
	}).Envelope
}

func (s *FixtureService) HeadToHead(ctx context.Context, team1ID, team2ID int64) football.Envelope {
	a := strconv.FormatInt(team1ID, 10)
	b := strconv.FormatInt(team2ID, 10)
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  "fixtures/headtohead",
		Query: football.Query{"h2h": a + "-" + b},
		Tier:  cache.TierReference,
		Key:   "h2h_" + a + "_" + b,
	}).Envelope
}

func (s *FixtureService) Predictions(ctx context.Context, fixtureID int64) football.Envelope {
	id := strconv.FormatInt(fixtureID, 10)
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  "predictions",
		Query: football.Query{"fixture": id},
		Tier:  cache.TierPredictions,
		Key:   "pred_" + id,
	}).Envelope
}

func (s *FixtureService) Odds(ctx context.Context, fixtureID int64) football.Envelope {
	id := strconv.FormatInt(fixtureID, 10)
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path:  "odds",
		Query: football.Query{"fixture": id},
		Tier:  cache.TierOdds,
		Key:   "odds_" + id,
	}).Envelope
}

func (s *FixtureService) LiveOdds(ctx context.Context) football.Envelope {
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path: "odds/live",
		Tier: cache.TierOdds,
		Key:  "live_odds",
	}).Envelope
}

func (s *FixtureService) LiveOddsBets(ctx context.Context) football.Envelope {
	return s.fetcher.Fetch(ctx, FetchRequest{
		Path: "odds/live/bets",
		Tier: cache.TierOdds,
		Key:  "live_odds_bets",
	}).Envelope
}

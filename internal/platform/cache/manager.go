package cache

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/today-api/internal/platform/logging"
)

// Manager owns every cache tier behind one mutex. The lock covers only the
// map lookup or mutation, never the work that produced the value.
type Manager struct {
	mu     sync.Mutex
	tiers  [tierCount]*tier
	now    func() time.Time
	logger *logging.Logger
}

type Option func(*Manager)

// WithClock replaces time.Now, mostly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager builds the tiers from configs. Tiers missing from configs fall
// back to DefaultTierConfigs.
func NewManager(configs map[Tier]TierConfig, opts ...Option) *Manager {
	defaults := DefaultTierConfigs()
	m := &Manager{
		now:    time.Now,
		logger: logging.Default(),
	}
	for _, t := range Tiers() {
		cfg, ok := configs[t]
		if !ok {
			cfg = defaults[t]
		}
		m.tiers[t] = newTier(cfg)
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) Lookup(ctx context.Context, t Tier, key string) (any, bool) {
	if key == "" || !validTier(t) {
		return nil, false
	}

	m.mu.Lock()
	value, ok := m.tiers[t].get(key, m.now())
	m.mu.Unlock()

	if ok {
		m.logger.DebugContext(ctx, "cache hit", "tier", t.String(), "key", key)
	} else {
		m.logger.DebugContext(ctx, "cache miss", "tier", t.String(), "key", key)
	}
	return value, ok
}

func (m *Manager) Insert(_ context.Context, t Tier, key string, value any) {
	if key == "" || !validTier(t) {
		return
	}

	m.mu.Lock()
	m.tiers[t].set(key, value, m.now())
	m.mu.Unlock()
}

type TierStats struct {
	Tier       string `json:"tier"`
	TTL        string `json:"ttl"`
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"max_entries"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Evictions  uint64 `json:"evictions"`
}

func (m *Manager) Stats() []TierStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]TierStats, 0, tierCount)
	for _, t := range Tiers() {
		tr := m.tiers[t]
		out = append(out, TierStats{
			Tier:       t.String(),
			TTL:        tr.ttl.String(),
			Entries:    len(tr.entries),
			MaxEntries: tr.maxEntries,
			Hits:       tr.hits,
			Misses:     tr.misses,
			Evictions:  tr.evictions,
		})
	}

	return out
}

func validTier(t Tier) bool {
	return t >= 0 && t < tierCount
}

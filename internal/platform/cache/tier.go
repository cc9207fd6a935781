package cache

import (
	"container/list"
	"time"
)

// Tier identifies one independently expiring cache partition.
type Tier int

const (
	TierFixtures Tier = iota
	TierPredictions
	TierOdds
	TierReference

	tierCount
)

func (t Tier) String() string {
	switch t {
	case TierFixtures:
		return "fixtures"
	case TierPredictions:
		return "predictions"
	case TierOdds:
		return "odds"
	case TierReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Tiers lists every tier in declaration order.
func Tiers() []Tier {
	return []Tier{TierFixtures, TierPredictions, TierOdds, TierReference}
}

const (
	DefaultFixturesTTL    = 5 * time.Minute
	DefaultPredictionsTTL = time.Hour
	DefaultOddsTTL        = time.Hour
	DefaultReferenceTTL   = 24 * time.Hour
	DefaultMaxEntries     = 1000
)

type TierConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultTierConfigs() map[Tier]TierConfig {
	return map[Tier]TierConfig{
		TierFixtures:    {TTL: DefaultFixturesTTL, MaxEntries: DefaultMaxEntries},
		TierPredictions: {TTL: DefaultPredictionsTTL, MaxEntries: DefaultMaxEntries},
		TierOdds:        {TTL: DefaultOddsTTL, MaxEntries: DefaultMaxEntries},
		TierReference:   {TTL: DefaultReferenceTTL, MaxEntries: DefaultMaxEntries},
	}
}

type entry struct {
	key       string
	value     any
	expiresAt time.Time
}

// tier keeps entries in insertion order. Every entry in a tier shares the
// same TTL, so the front of order is always the first entry to expire.
// tier is not safe for concurrent use; Manager serialises access.
type tier struct {
	ttl        time.Duration
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List

	hits      uint64
	misses    uint64
	evictions uint64
}

func newTier(cfg TierConfig) *tier {
	return &tier{
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

func (t *tier) get(key string, now time.Time) (any, bool) {
	el, ok := t.entries[key]
	if !ok {
		t.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if !e.expiresAt.After(now) {
		t.remove(el)
		t.misses++
		return nil, false
	}

	t.hits++
	return e.value, true
}

func (t *tier) set(key string, value any, now time.Time) {
	if t.ttl <= 0 {
		return
	}

	if el, ok := t.entries[key]; ok {
		t.remove(el)
	}

	if t.maxEntries > 0 && len(t.entries) >= t.maxEntries {
		t.purgeExpired(now)
		for len(t.entries) >= t.maxEntries {
			t.remove(t.order.Front())
			t.evictions++
		}
	}

	t.entries[key] = t.order.PushBack(&entry{
		key:       key,
		value:     value,
		expiresAt: now.Add(t.ttl),
	})
}

func (t *tier) purgeExpired(now time.Time) {
	for el := t.order.Front(); el != nil; el = t.order.Front() {
		if el.Value.(*entry).expiresAt.After(now) {
			return
		}
		t.remove(el)
	}
}

func (t *tier) remove(el *list.Element) {
	e := t.order.Remove(el).(*entry)
	delete(t.entries, e.key)
}

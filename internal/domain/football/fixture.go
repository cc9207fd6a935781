package football

import (
	"maps"
	"path"
	"strings"
)

// PlaceholderLogo is the file name the provider serves for teams without a crest.
const PlaceholderLogo = "0.png"

const (
	FieldPredictions = "predictions"
	FieldOdds        = "odds"
)

// Fixture is one upstream fixture object. Only the fields below are
// inspected; everything else is passed through untouched.
type Fixture map[string]any

// AsFixture accepts an element of an envelope's response list.
func AsFixture(item any) (Fixture, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	return Fixture(m), true
}

func (f Fixture) ID() (int64, bool) {
	id, ok := toInt64(nested(f, "fixture", "id"))
	return id, ok && id > 0
}

func (f Fixture) KickoffUnix() (int64, bool) {
	ts, ok := toInt64(nested(f, "fixture", "timestamp"))
	return ts, ok && ts > 0
}

func (f Fixture) LeagueLogo() string {
	return stringAt(f, "league", "logo")
}

func (f Fixture) LeagueFlag() string {
	return stringAt(f, "league", "flag")
}

func (f Fixture) HomeLogo() string {
	return stringAt(f, "teams", "home", "logo")
}

func (f Fixture) AwayLogo() string {
	return stringAt(f, "teams", "away", "logo")
}

// Enrich returns a shallow copy carrying the predictions and odds lists, so
// the decoded upstream object is never mutated.
func (f Fixture) Enrich(predictions, odds []any) Fixture {
	out := maps.Clone(f)
	if out == nil {
		out = Fixture{}
	}
	if predictions == nil {
		predictions = []any{}
	}
	if odds == nil {
		odds = []any{}
	}
	out[FieldPredictions] = predictions
	out[FieldOdds] = odds
	return out
}

// CompletenessPolicy is the data-quality gate applied to enriched fixtures.
type CompletenessPolicy struct {
	RequireCountryFlag bool
}

func DefaultCompletenessPolicy() CompletenessPolicy {
	return CompletenessPolicy{RequireCountryFlag: true}
}

// Complete reports whether the fixture carries every visual asset a client
// needs: league logo, country flag (when required) and real team crests.
func (p CompletenessPolicy) Complete(f Fixture) bool {
	if f.LeagueLogo() == "" {
		return false
	}
	if p.RequireCountryFlag && f.LeagueFlag() == "" {
		return false
	}
	return usableLogo(f.HomeLogo()) && usableLogo(f.AwayLogo())
}

// IsPlaceholderLogo matches on the last path segment, so a crest such as
// ".../teams/10.png" is not mistaken for the placeholder.
func IsPlaceholderLogo(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return path.Base(url) == PlaceholderLogo
}

func usableLogo(url string) bool {
	return strings.TrimSpace(url) != "" && !IsPlaceholderLogo(url)
}

func nested(src map[string]any, keys ...string) any {
	var cur any = src
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func stringAt(src map[string]any, keys ...string) string {
	s, _ := nested(src, keys...).(string)
	return strings.TrimSpace(s)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), n == float64(int64(n))
	case int64:
		return n, true
	case int:
		return int64(n), true
	case interface{ Int64() (int64, error) }:
		out, err := n.Int64()
		return out, err == nil
	default:
		return 0, false
	}
}

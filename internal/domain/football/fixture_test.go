package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeFixture(id float64) Fixture {
	return Fixture{
		"fixture": map[string]any{"id": id, "timestamp": float64(1718467200)},
		"league": map[string]any{
			"name": "Premier League",
			"logo": "https://media.api-sports.io/football/leagues/39.png",
			"flag": "https://media.api-sports.io/flags/gb.svg",
		},
		"teams": map[string]any{
			"home": map[string]any{"logo": "https://media.api-sports.io/football/teams/33.png"},
			"away": map[string]any{"logo": "https://media.api-sports.io/football/teams/34.png"},
		},
	}
}

func TestFixture_Accessors(t *testing.T) {
	t.Parallel()

	fx := completeFixture(215662)
	id, ok := fx.ID()
	require.True(t, ok)
	assert.Equal(t, int64(215662), id)

	ts, ok := fx.KickoffUnix()
	require.True(t, ok)
	assert.Equal(t, int64(1718467200), ts)

	assert.Contains(t, fx.LeagueLogo(), "leagues/39.png")
	assert.Contains(t, fx.HomeLogo(), "teams/33.png")
	assert.Contains(t, fx.AwayLogo(), "teams/34.png")
}

func TestFixture_IDMissingOrMalformed(t *testing.T) {
	t.Parallel()

	cases := []Fixture{
		{},
		{"fixture": "oops"},
		{"fixture": map[string]any{"id": nil}},
		{"fixture": map[string]any{"id": "215662"}},
		{"fixture": map[string]any{"id": float64(0)}},
		{"fixture": map[string]any{"id": 1.5}},
	}
	for _, fx := range cases {
		_, ok := fx.ID()
		assert.False(t, ok, "fixture %v", fx)
	}
}

func TestCompletenessPolicy(t *testing.T) {
	t.Parallel()

	strict := DefaultCompletenessPolicy()
	lenient := CompletenessPolicy{RequireCountryFlag: false}

	assert.True(t, strict.Complete(completeFixture(1)))

	noLeagueLogo := completeFixture(2)
	noLeagueLogo["league"].(map[string]any)["logo"] = ""
	assert.False(t, strict.Complete(noLeagueLogo))

	noFlag := completeFixture(3)
	noFlag["league"].(map[string]any)["flag"] = nil
	assert.False(t, strict.Complete(noFlag))
	assert.True(t, lenient.Complete(noFlag))

	placeholderHome := completeFixture(4)
	placeholderHome["teams"].(map[string]any)["home"] = map[string]any{"logo": "https://media.api-sports.io/football/teams/0.png"}
	assert.False(t, strict.Complete(placeholderHome))

	noAway := completeFixture(5)
	delete(noAway["teams"].(map[string]any), "away")
	assert.False(t, lenient.Complete(noAway))
}

func TestIsPlaceholderLogo(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPlaceholderLogo("https://media.api-sports.io/football/teams/0.png"))
	assert.True(t, IsPlaceholderLogo("https://media.api-sports.io/football/teams/0.png?v=2"))
	assert.False(t, IsPlaceholderLogo("https://media.api-sports.io/football/teams/10.png"))
	assert.False(t, IsPlaceholderLogo("https://media.api-sports.io/football/teams/1500.png"))
	assert.False(t, IsPlaceholderLogo(""))
}

func TestFixture_EnrichDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	src := completeFixture(7)
	out := src.Enrich([]any{"p"}, nil)

	assert.Equal(t, []any{"p"}, out[FieldPredictions])
	assert.Equal(t, []any{}, out[FieldOdds])
	assert.NotContains(t, src, FieldPredictions)
	assert.NotContains(t, src, FieldOdds)
}

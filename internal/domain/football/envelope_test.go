package football

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBody_NormalizesResponse(t *testing.T) {
	t.Parallel()

	env, ok := FromBody(map[string]any{"response": []any{1.0, 2.0}, "results": 2.0})
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0}, env.Response)
	assert.Equal(t, 2.0, env.Extra["results"])

	env, ok = FromBody(map[string]any{"response": map[string]any{"team": "x"}})
	require.True(t, ok)
	assert.Len(t, env.Response, 1)

	env, ok = FromBody(map[string]any{"response": nil})
	require.True(t, ok)
	assert.NotNil(t, env.Response)
	assert.Empty(t, env.Response)

	_, ok = FromBody(map[string]any{"message": "You are not subscribed to this API."})
	assert.False(t, ok)
}

func TestEnvelope_MarshalAlwaysEmitsList(t *testing.T) {
	t.Parallel()

	for _, env := range []Envelope{{}, Empty(), Fallback(), WithError("boom"), NewEnvelope(nil)} {
		raw, err := sonic.Marshal(env)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, sonic.Unmarshal(raw, &body))
		items, ok := body["response"].([]any)
		require.True(t, ok, "response must be a list in %s", raw)
		assert.Empty(t, items)
	}
}

func TestEnvelope_MarshalKeepsExtraAndError(t *testing.T) {
	t.Parallel()

	env := NewEnvelope([]any{"a"})
	env.Extra = map[string]any{"get": "fixtures"}
	env.Error = "upstream timeout"

	raw, err := sonic.Marshal(env)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &body))
	assert.Equal(t, "fixtures", body["get"])
	assert.Equal(t, "upstream timeout", body["error"])
	assert.Equal(t, []any{"a"}, body["response"])
}

package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "level %q", raw)
	}
}

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelDebug).Named("apifootball")
	logger.WarnContext(context.Background(), "upstream request failed",
		"path", "/fixtures",
		"error", errors.New("status=500"),
		"dangling",
	)
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "apifootball", line["logger"])
	assert.Equal(t, "/fixtures", line["path"])
	assert.Equal(t, "status=500", line["error"])
	assert.Contains(t, line, "dangling")
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo)
	logger.Debug("cache hit", "key", "leagues")

	assert.Zero(t, buf.Len())
}

func TestLogger_TeeWritesToEveryCore(t *testing.T) {
	t.Parallel()

	var primary, mirror bytes.Buffer
	extra := NewJSONTo(&mirror, LevelError).Zap().Core()
	logger := NewJSONTo(&primary, LevelInfo).Tee(extra)

	logger.Info("cache warmed", "tier", "reference")
	logger.Error("upstream down", "path", "fixtures")

	assert.Contains(t, primary.String(), "cache warmed")
	assert.Contains(t, primary.String(), "upstream down")
	assert.NotContains(t, mirror.String(), "cache warmed")
	assert.Contains(t, mirror.String(), "upstream down")
}

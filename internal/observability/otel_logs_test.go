package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestIsHealthCheckLog(t *testing.T) {
	t.Parallel()

	assert.True(t, isHealthCheckLog("http_request", map[string]any{"http_path": "/healthz"}))
	assert.False(t, isHealthCheckLog("http_request", map[string]any{"http_path": "/fixtures/today"}))
	assert.False(t, isHealthCheckLog("cache miss", map[string]any{"http_path": "/healthz"}))
}

func TestMapAttributes_FromZapFields(t *testing.T) {
	t.Parallel()

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range []zap.Field{
		zap.String("path", "fixtures"),
		zap.Int("attempt", 2),
		zap.Duration("elapsed", 1500*time.Millisecond),
		zap.NamedError("error", errors.New("status=503")),
		zap.Any("query", map[string]any{"date": "2025-06-15"}),
	} {
		f.AddTo(enc)
	}

	attrs := mapAttributes(enc.Fields)
	require.Len(t, attrs, 5)

	byKey := make(map[string]otellog.Value, len(attrs))
	for _, kv := range attrs {
		byKey[kv.Key] = kv.Value
	}
	assert.Equal(t, "fixtures", byKey["path"].AsString())
	assert.Equal(t, int64(2), byKey["attempt"].AsInt64())
	assert.Equal(t, "status=503", byKey["error"].AsString())
	assert.Equal(t, otellog.KindMap, byKey["query"].Kind())

	// Keys come out sorted.
	assert.Equal(t, "attempt", attrs[0].Key)
}

func TestToOTelLogValue_NestedDepthIsBounded(t *testing.T) {
	t.Parallel()

	deep := map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1}}}}
	v := toOTelLogValue(deep, 0)
	require.Equal(t, otellog.KindMap, v.Kind())

	assert.Equal(t, otellog.KindEmpty, toOTelLogValue(nil, 0).Kind())
	assert.Equal(t, otellog.KindSlice, toOTelLogValue([]any{"x", int64(1)}, 0).Kind())
}

func TestOTelLogCore_LevelAndWith(t *testing.T) {
	t.Parallel()

	core := newOTelLogCore(zapcore.WarnLevel, "test")
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))

	child := core.With([]zapcore.Field{zap.String("component", "apifootball")})
	assert.Len(t, child.(*otelLogCore).fields, 1)
	assert.Empty(t, core.(*otelLogCore).fields)

	// Without a configured provider the global logger is a no-op.
	assert.NoError(t, child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom", Time: time.Now()}, nil))
}

package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerEncodesSeverityAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", zapcore.AddSync(&buf))

	logger.Info("dropped")
	logger.Warn("catalog entry skipped", zap.String("slug", "bad slug"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "WARN", entry["severity"])
	assert.Equal(t, "catalog entry skipped", entry["message"])
	assert.Equal(t, "bad slug", entry["slug"])
	assert.NotEmpty(t, entry["timestamp"])
	assert.NotEmpty(t, entry["caller"])
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose"} {
		var buf bytes.Buffer
		logger := newLogger(level, zapcore.AddSync(&buf))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), level)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), level)
	}
}

func TestContextLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].Context)
}

func TestContextLoggerAddsTraceFields(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := trace.ContextWithSpanContext(WithLogger(context.Background(), zap.New(core)), sc)
	FromContext(ctx).Info("traced")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

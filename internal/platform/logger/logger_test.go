package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestWithTrace(t *testing.T) {
	t.Run("no span leaves logger untouched", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(&buf, "info", "json")
		WithTrace(context.Background(), l).Info("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.NotContains(t, line, "trace_id")
	})

	t.Run("valid span adds ids", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter(&buf, "info", "json")
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1, 2, 3},
			SpanID:  trace.SpanID{4, 5, 6},
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)
		WithTrace(ctx, l).Info("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, sc.TraceID().String(), line["trace_id"])
		assert.Equal(t, sc.SpanID().String(), line["span_id"])
	})
}

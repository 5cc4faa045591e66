package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(format string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:       "debug",
		Format:      format,
		Output:      &buf,
		ServiceName: "recommendation-engine",
	})
	return logger, &buf
}

func TestLogger_JSONCarriesServiceField(t *testing.T) {
	logger, buf := newBufferedLogger("json")

	logger.Info().Str("stage", "prefilter").Int("candidates", 7).Msg("Pre-filtered catalog")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "recommendation-engine", entry["service"])
	assert.Equal(t, "prefilter", entry["stage"])
	assert.Equal(t, float64(7), entry["candidates"])
	assert.Equal(t, "Pre-filtered catalog", entry["message"])
}

func TestLogger_WithContextAddsTraceID(t *testing.T) {
	logger, buf := newBufferedLogger("json")
	ctx := ContextWithTraceID(context.Background(), "trace-123")

	logger.WithContext(ctx).Warn().Msg("Invalid product ID in browsing history")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
}

func TestLogger_WithContextWithoutTraceID(t *testing.T) {
	logger, buf := newBufferedLogger("json")

	logger.WithContext(context.Background()).Info().Msg("no trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry["trace_id"]
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestTraceIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

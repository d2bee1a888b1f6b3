package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:       LevelDebug,
		ServiceName: "test-service",
		JSONFormat:  true,
		Output:      &buf,
	})

	log.Info("page stored", F("url_hash", "abc123"), F("page_id", int64(42)))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "page stored", entry["message"])
	assert.Equal(t, "test-service", entry["service_name"])
	assert.Equal(t, "abc123", entry["url_hash"])
	assert.Equal(t, float64(42), entry["page_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelDebug,
		JSONFormat: true,
		Output:     &buf,
	})

	scoped := log.With(F("source_type", "rss"))
	scoped.Warn("no date found")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rss", entry["source_type"])
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelDebug,
		JSONFormat: true,
		Output:     &buf,
	})

	ctx := context.WithValue(context.Background(), RunIDKey, "run-1234")
	log.WithContext(ctx).Info("batch started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-1234", entry["run_id"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:      LevelWarn,
		JSONFormat: true,
		Output:     &buf,
	})

	log.Debug("should be dropped")
	log.Info("should also be dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	assert.Equal(t, parseLevel(Level("bogus")), parseLevel(LevelInfo))
}

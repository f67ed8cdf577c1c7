package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/nfrund/atelier/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewWithWriter(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, config.LogCfg{Format: "json", Level: "info"})
		logger.Debug("hidden")
		logger.Info("Failed login attempt", "email", "a@b.com")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "Failed login attempt", line["msg"])
		assert.Equal(t, "a@b.com", line["email"])
	})

	t.Run("text with source", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, config.LogCfg{Format: "text", Level: "debug"})
		logger.Debug("visible")

		assert.Contains(t, buf.String(), "msg=visible")
		assert.Contains(t, buf.String(), "source=")
	})
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-grid/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo, LogFormat: "json"}, "gridtool")

	logger.Debug("hidden")
	logger.Info("cell resolved", "hash_id", "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "cell resolved", rec["msg"])
	assert.Equal(t, "gridtool", rec["app"])
	assert.Equal(t, "prod", rec["env"])
	assert.Equal(t, "abc", rec["hash_id"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelWarn, LogFormat: "text"}, "gridtool")

	logger.Info("hidden")
	logger.Warn("clamping", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "clamping")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "app=gridtool")
}

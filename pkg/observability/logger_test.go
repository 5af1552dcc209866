package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"l14tables/pkg/config"
)

func setupTestLogger(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)
	buf := new(bytes.Buffer)
	Initialize(cfg, zapcore.AddSync(buf))
	return buf
}

func TestInitialize_Console(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "debug", Format: "console", ServiceName: "l14table"})

	GetLogger().Debug("grid built", zap.Int("rows", 3))
	Sync()

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "l14table")
	assert.Contains(t, out, "grid built")
	assert.Contains(t, out, `{"rows": 3}`)
}

func TestInitialize_JSON(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "json-test"})

	GetLogger().Debug("filtered out")
	GetLogger().Warn("table sized", zap.String("layout", "fixed"))
	Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line expected")
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "json-test", entry["logger"])
	assert.Equal(t, "table sized", entry["msg"])
	assert.Equal(t, "fixed", entry["layout"])
}

func TestInitialize_OnlyOnce(t *testing.T) {
	first := setupTestLogger(t, config.LoggerConfig{Level: "info", Format: "json"})
	second := new(bytes.Buffer)
	Initialize(config.LoggerConfig{Level: "debug", Format: "json"}, zapcore.AddSync(second))

	GetLogger().Info("hello")
	Sync()
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestInitialize_BadLevelFallsBackToInfo(t *testing.T) {
	buf := setupTestLogger(t, config.LoggerConfig{Level: "loud", Format: "json"})

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	Sync()
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitialize_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "l14table.log")
	setupTestLogger(t, config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1})

	GetLogger().Info("to file", zap.String("side", "top"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "to file", entry["msg"])
	assert.Equal(t, "top", entry["side"])
}

func TestGetLogger_Fallback(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("fallback works") })
	assert.NotPanics(t, Sync)
}

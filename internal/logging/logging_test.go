package logging

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

	"github.com/Dallionking/vaultdesk/internal/config"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.InfoLevel, true)
	log.Debug("hidden")
	log.Info("stage changed", zap.String("stage", "proxySuccess"))
	require.NoError(t, log.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "stage changed", line["msg"])
	assert.Equal(t, "proxySuccess", line["stage"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTUIWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "vaultdesk.log")
	cfg := config.Default().Logging

	log, err := New(cfg, ModeTUI, file)
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "nope"}, ModeCLI, "")
	assert.Error(t, err)
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagepay/paytrack/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New(config.LoggingConfig{Level: "info", Format: "console"}, &buf), "matcher")

	logger.Debug("hidden")
	logger.Info("payment matched", "garage", "Гараж 1", "amount", "5000")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] [matcher]")
	assert.Contains(t, out, "payment matched garage=\"Гараж 1\" amount=5000")
	assert.NotContains(t, out, "\033[")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug("processed rent data", "rows", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "processed rent data", entry["msg"])
	assert.Equal(t, float64(3), entry["rows"])
}

func TestNew_AutoOffTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	New(config.LoggingConfig{Format: "auto"}, &buf).Info("generated payment report", "garages", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf).Warn("no date rows found in bank statement")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestConsoleHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, nil)).WithGroup("req").With("id", "abc")
	logger.Info("done", slog.Group("size", "rows", 2))

	assert.Contains(t, buf.String(), "req.id=abc")
	assert.Contains(t, buf.String(), "req.size.rows=2")
}

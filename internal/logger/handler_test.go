package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestPrettyHandlerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.With("tenant_id", "t1").Info("request completed", "status", 200)
	log.WithGroup("req").Info("grouped", "method", "GET")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "tenant_id"+reset+"=t1")
	assert.Contains(t, out, "status"+reset+"=200")
	assert.Contains(t, out, "req.method"+reset+"=GET")
	assert.NotContains(t, out, "hidden")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json")
	log.Debug("token rejected", "reason", "expired")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "token rejected", line["msg"])
	assert.Equal(t, "expired", line["reason"])
}

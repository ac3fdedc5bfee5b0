package logger

import (
	"bytes"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	cases := []struct {
		level    LogLevel
		expected charmlog.Level
	}{
		{DebugLevel, charmlog.DebugLevel},
		{InfoLevel, charmlog.InfoLevel},
		{WarnLevel, charmlog.WarnLevel},
		{ErrorLevel, charmlog.ErrorLevel},
		{LogLevel("DEBUG"), charmlog.DebugLevel},
		{LogLevel("unknown"), charmlog.InfoLevel},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.level.ToCharmlogLevel(), "level %q", tc.level)
	}
}

func TestLogLevel_Valid(t *testing.T) {
	assert.True(t, LogLevel("warn").Valid())
	assert.True(t, LogLevel("Error").Valid())
	assert.False(t, LogLevel("verbose").Valid())
	assert.False(t, LogLevel("").Valid())
}

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: InfoLevel, Output: &buf})

	log.Info("converted", "input", "chair.fbx")

	out := buf.String()
	assert.Contains(t, out, "converted")
	assert.Contains(t, out, "chair.fbx")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: WarnLevel, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: InfoLevel, Output: &buf, JSON: true})

	log.Info("json message", "stage", "Finished")

	out := strings.TrimSpace(buf.String())
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"stage":"Finished"`)
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: InfoLevel, Output: &buf}).With("run", "abc123")

	log.Info("started")

	assert.Contains(t, buf.String(), "abc123")
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	require.NotNil(t, log)
	log.Error("discarded")
}

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false, slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true, slog.LevelWarn))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true, slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false, slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, false, false, slog.LevelInfo))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	logger := Setup(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	slog.Info("subdivided", "faces", 16)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=subdivided")
	assert.Contains(t, out, "faces=16")
}

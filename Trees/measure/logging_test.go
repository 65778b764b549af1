package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := newLogger(LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Debug().Msg("hidden")
	log.Info().Int("size", 3).Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"size":3`)
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := newLogger(LoggingConfig{Level: "DEBUG", Format: "console"}, &buf)
	require.NoError(t, err)
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNewLogger_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "measure.log")
	var buf bytes.Buffer
	log, closer, err := newLogger(LoggingConfig{Level: "info", Format: "json", File: p, MaxSizeMB: 1, MaxBackups: 1}, &buf)
	require.NoError(t, err)
	log.Warn().Msg("rotated")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotated")
	assert.Contains(t, buf.String(), "rotated")
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, _, err := newLogger(LoggingConfig{Level: "chatty"}, &bytes.Buffer{})
	require.Error(t, err)
}

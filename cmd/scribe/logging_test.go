package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe"
)

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var stderr bytes.Buffer
	logger, err := newLogger(&stderr, false, scribe.LogConfig{Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")
}

func TestNewLogger_WritesConsoleAndFile(t *testing.T) {
	var stderr bytes.Buffer
	file := filepath.Join(t.TempDir(), "scribe.log")

	logger, err := newLogger(&stderr, false, scribe.LogConfig{Level: "info", File: file})
	require.NoError(t, err)

	logger.Debug("file only", "key", "k")
	logger.Info("both", "key", "k")

	assert.Contains(t, stderr.String(), "both")
	assert.NotContains(t, stderr.String(), "file only")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"both"`)
	assert.Contains(t, string(raw), `"msg":"file only"`)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, false, scribe.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

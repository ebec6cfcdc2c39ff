package logger

import (
	"path/filepath"
	"testing"

	"synergysphere/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	log, err := New(&config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = New(&config.LogConfig{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	log, err := New(&config.LogConfig{Level: "info", File: file, MaxSizeMB: 1})
	require.NoError(t, err)
	log.Info("hello")
	assert.NoError(t, log.Sync())
	assert.FileExists(t, file)
}

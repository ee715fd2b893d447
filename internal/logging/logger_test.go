package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, LogLevelWarn, LevelFromFlags(false, false))
	assert.Equal(t, LogLevelDebug, LevelFromFlags(true, false))
	assert.Equal(t, LogLevelError, LevelFromFlags(false, true))
	assert.Equal(t, LogLevelDebug, LevelFromFlags(true, true))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": "console", "text": "console", "Console": "console", "json": "json"} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   LogLevel
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{LogLevelError, zapcore.ErrorLevel, zapcore.WarnLevel},
		{LogLevelWarn, zapcore.WarnLevel, zapcore.InfoLevel},
		{LogLevelInfo, zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		logger, err := New(Options{Level: tt.level})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(tt.enabled))
		assert.False(t, logger.Core().Enabled(tt.off))
	}

	logger, err := New(Options{Level: LogLevelDebug, Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirwalk.log")
	logger, err := New(Options{Level: LogLevelWarn, File: path, Rotation: Rotation{MaxSize: 1, MaxBackups: 1, MaxAge: 1}})
	require.NoError(t, err)

	logger.Info("not written")
	logger.Warn("cannot read directory")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cannot read directory")
	assert.NotContains(t, string(data), "not written")
}

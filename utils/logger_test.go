package utils

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	t.Run("stdout json", func(t *testing.T) {
		logger := NewLogger(LoggerOptions{Level: "info", Format: "json"})
		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	})

	t.Run("rotating file", func(t *testing.T) {
		logger := NewLogger(LoggerOptions{
			Level:    "debug",
			Format:   "text",
			Output:   "file",
			FilePath: filepath.Join(t.TempDir(), "app.log"),
			MaxSize:  1,
		})
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
		logger.Info("written")
	})
}

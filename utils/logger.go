package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions describes where and how the application logs
type LoggerOptions struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// NewLogger builds a slog logger; Output "file" rotates through lumberjack
func NewLogger(opts LoggerOptions) *slog.Logger {
	var w io.Writer
	switch strings.ToLower(opts.Output) {
	case "file":
		w = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}
	case "stderr":
		w = os.Stderr
	default:
		w = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLogLevel(opts.Level)}
	if strings.ToLower(opts.Format) == "text" {
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts))
}

// ParseLogLevel maps a config string to a slog level, defaulting to info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

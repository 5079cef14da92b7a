// Package logging builds the structured logger used across ctdp. Records are
// written as JSON lines to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ctdp-app/ctdp/internal/config"
)

// New returns a logger writing to the log file configured in cfg, and the
// closer for the underlying file.
func New(cfg *config.Config) (*slog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   cfg.LogPath(),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   true,
	}

	return NewWithWriter(w, cfg.Log.Level), w
}

// NewWithWriter returns a JSON logger at the given level writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return slog.New(h)
}

// ParseLevel maps a config level name to a slog.Level. Unknown names map to
// info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// OrDefault returns l, or the default logger when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}

	return l
}

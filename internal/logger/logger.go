// Package logger holds the process-wide structured logger. Call sites use the
// package-level helpers with alternating key/value pairs:
//
//	logger.Info("attached catalogue", "data_dir", dir)
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newLogger(os.Stderr, slog.LevelWarn))
}

// InitWithWriter replaces the logger with one writing text records to w.
func InitWithWriter(level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	current.Store(newLogger(w, lvl))
	return nil
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels.
// An empty string means warn.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}

func Debug(msg string, args ...any) { current.Load().Debug(msg, args...) }
func Info(msg string, args ...any)  { current.Load().Info(msg, args...) }
func Warn(msg string, args ...any)  { current.Load().Warn(msg, args...) }

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

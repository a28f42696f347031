package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Level defaults to info; AERODNS_LOG_LEVEL
// accepts debug/info/warn/error.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("AERODNS_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

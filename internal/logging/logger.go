package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global slog logger: JSON to stdout plus any extra sinks,
// with request fields from the context added to every record.
func Setup(level string, sinks ...slog.Handler) {
	handlers := append([]slog.Handler{
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}),
	}, sinks...)
	slog.SetDefault(slog.New(NewContextHandler(NewMultiHandler(handlers...))))
}

// ParseLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

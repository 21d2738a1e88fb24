package logger

import (
	"log/slog"
	"os"
)

// New builds the process-wide JSON logger. LOG_LEVEL (debug, info, warn,
// error) overrides the default info level; unparseable values are ignored.
func New() *slog.Logger {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		_ = level.UnmarshalText([]byte(raw))
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "canteen"))
}

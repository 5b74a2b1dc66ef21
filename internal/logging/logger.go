package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON slog logger on stdout. LOG_LEVEL accepts
// debug, info, warn or error; anything else means info.
func Setup() *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(slog.New(NewStdoutHandler(level)))
	return level
}

func NewStdoutHandler(level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

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

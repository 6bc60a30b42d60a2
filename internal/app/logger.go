package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production always emits JSON;
// elsewhere LOG_FORMAT picks between JSON and a source-annotated text
// format for local reading.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && (cfg.IsProduction() || cfg.LogFormat == "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	}))
}

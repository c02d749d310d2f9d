package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Operators set LOG_FORMAT=json
// when shipping to a collector; the text handler keeps local runs of
// the API and worker readable.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

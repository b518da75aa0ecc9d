package logging

import (
	"log/slog"
	"os"
)

// SetupLogger configures structured text logging on stderr. Verbose
// lowers the level to debug and adds source locations, which is useful
// when tracing why a particular operation was planned.
func SetupLogger(verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOptions(verbose)))
}

// SetupJSONLogger configures JSON structured logging on stderr, for
// runs driven by cron or CI where logs are collected.
func SetupJSONLogger(verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, handlerOptions(verbose)))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	}
}

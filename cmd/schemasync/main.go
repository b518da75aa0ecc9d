package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/user/schemasync/internal/cli"
	"github.com/user/schemasync/internal/engine"
)

var version = "dev"

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	if err := cli.Execute(ctx, version); err != nil {
		switch {
		case errors.Is(err, engine.ErrBackupFailed):
			slog.Error("run aborted: backup could not be completed, no mutation was attempted", "error", err)
		case errors.Is(err, engine.ErrInspectFailed):
			slog.Error("run aborted: schema inspection failed", "error", err)
		case errors.Is(err, engine.ErrDatabaseLocked):
			slog.Error("run aborted: another reconciliation is in progress", "error", err)
		default:
			slog.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}

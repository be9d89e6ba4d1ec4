package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/afrikanet/satellite-console/internal/app/console"
	"github.com/afrikanet/satellite-console/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logFile, err := os.OpenFile("console.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()
	// Logs go to a file so they do not interleave with the prompt.
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := console.New(cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("failed to initialize console", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("console stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

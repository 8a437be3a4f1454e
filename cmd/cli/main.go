package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/marketpro/internal/cli"
	"github.com/dmitrijs2005/marketpro/internal/config"
	"github.com/dmitrijs2005/marketpro/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

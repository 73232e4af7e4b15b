package server

import (
	"context"
	"fmt"

	"voice-assistant/internal/bootstrap"
	"voice-assistant/internal/config"
	"voice-assistant/internal/observability"
)

// Run loads the configuration for variant and serves until SIGINT or SIGTERM.
func Run(variant config.Variant) error {
	cfg, err := config.Load(variant)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLoggerWithLevel(cfg.LogLevel)
	ctx := context.Background()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to initialize dependencies", err)
		return err
	}

	srv := New(cfg, deps, logger)
	srv.Setup()
	if err := srv.Start(ctx); err != nil {
		return err
	}
	return srv.WaitForShutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/light-bringer/storefront-core/internal/config"
	"github.com/light-bringer/storefront-core/internal/pkg/logger"
	"github.com/light-bringer/storefront-core/internal/services"
	"github.com/light-bringer/storefront-core/internal/transport/cli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	// 1. Load configuration from .env and environment variables
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	// 2. Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize service dependencies (DI container)
	opts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer opts.Close()

	log.Debug("storefront ready", "shop", cfg.ShopDomain, "storage", cfg.CartStorage)

	// 4. Run the command
	return cli.NewRunner(opts, os.Stdout).Run(ctx, args)
}

package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"craft-gallery/cmd"
	"craft-gallery/pkg/config"
	"craft-gallery/pkg/logging"
	"craft-gallery/pkg/services"
)

// Standalone server entry point configured only through environment variables
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logger.Sync()

	// Initialize services
	fetcher, err := services.NewFetcher(cfg.ManifestSource)
	if err != nil {
		logger.Fatal("Invalid manifest source", zap.Error(err))
	}
	svc := services.NewService(cfg, fetcher, logger)

	if err := cmd.ServeWebsite(context.Background(), cfg, svc, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
		os.Exit(1)
	}
}

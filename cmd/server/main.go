// Package main implements the entry point for the driver service, a REST
// API for managing drivers and their assigned cars.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/fleetwise/driver-service/internal/config"
	"github.com/fleetwise/driver-service/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start driver service: %v", err)
	}
}

// run loads configuration, wires the application together and serves HTTP
// until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

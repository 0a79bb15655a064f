package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fleetwise/driver-service/internal/config"
	"github.com/fleetwise/driver-service/internal/events"
	"github.com/fleetwise/driver-service/internal/platform/postgres"
	"github.com/fleetwise/driver-service/internal/platform/rabbitmq"
	"github.com/fleetwise/driver-service/internal/service"
)

// application holds the shared dependencies wired at startup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db        *sql.DB
	publisher events.Publisher

	carService    service.CarService
	driverService service.DriverService

	// closers run in reverse order during shutdown.
	closers []func() error
}

// newApplication connects to the database, runs migrations, connects the
// event publisher and builds the service layer.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.closers = append(app.closers, db.Close)

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, log); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	publisher, err := setupPublisher(cfg, log)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.publisher = publisher
	if closer, ok := publisher.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}

	carStore := postgres.NewCarStore(db, log)
	driverStore := postgres.NewDriverStore(db, log)

	app.carService, err = service.NewCarService(carStore, log)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create car service: %w", err)
	}

	app.driverService, err = service.NewDriverService(driverStore, carStore, publisher, db, log)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create driver service: %w", err)
	}

	return app, nil
}

// setupPublisher connects to RabbitMQ, falling back to an in-process
// publisher when no broker URL is configured.
func setupPublisher(cfg *config.Config, log *slog.Logger) (events.Publisher, error) {
	if cfg.Broker.URL == "" {
		log.Warn("No broker URL configured, driver notifications stay in-process")
		return events.NewInMemoryPublisher(log), nil
	}

	publisher, err := rabbitmq.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return publisher, nil
}

// cleanup releases application resources in reverse acquisition order.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("Cleanup failed", "error", err)
		}
	}
	app.closers = nil
}

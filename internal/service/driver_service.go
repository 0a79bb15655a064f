package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/events"
	"github.com/fleetwise/driver-service/internal/platform/logger"
	"github.com/fleetwise/driver-service/internal/store"
)

// DriverService provides driver-related operations: CRUD with email/phone
// uniqueness enforcement, resolution of the referenced car, and the
// driver-created notification on successful registration.
type DriverService interface {
	// GetDriver retrieves an active driver by its ID, car eagerly loaded.
	GetDriver(ctx context.Context, id int64) (*domain.Driver, error)

	// ListDrivers returns all active drivers.
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)

	// CreateDriver registers a new driver referencing the car with carID.
	// Checks run in a fixed order: phone uniqueness, email uniqueness, car
	// resolution. After the insert succeeds a creation notification is
	// published; a publish failure surfaces as ErrUnavailable but the
	// persisted driver is not rolled back.
	CreateDriver(ctx context.Context, carID int64, driver *domain.Driver) (*domain.Driver, error)

	// UpdateDriver overwrites all mutable fields of the driver with the given
	// id, including the car reference when supplied. Email then phone are
	// re-checked for uniqueness, each only when its value changed.
	UpdateDriver(ctx context.Context, id int64, driver *domain.Driver) (*domain.Driver, error)

	// DeleteDriver soft-deletes the driver. No existence check is performed.
	DeleteDriver(ctx context.Context, id int64) error
}

// driverService implements the DriverService interface.
type driverService struct {
	drivers   store.DriverStore
	cars      store.CarStore
	publisher events.Publisher
	logger    *slog.Logger

	// db, when set, makes the multi-statement writes run inside a single
	// transaction. A nil db runs them directly against the stores, which is
	// what the unit tests do.
	db *sql.DB
}

// NewDriverService creates a new DriverService backed by the given stores
// and notification publisher. db may be nil, in which case writes are not
// wrapped in transactions.
func NewDriverService(
	drivers store.DriverStore,
	cars store.CarStore,
	publisher events.Publisher,
	db *sql.DB,
	log *slog.Logger,
) (DriverService, error) {
	if drivers == nil {
		return nil, domain.NewValidationError("drivers", "cannot be nil", domain.ErrValidation)
	}
	if cars == nil {
		return nil, domain.NewValidationError("cars", "cannot be nil", domain.ErrValidation)
	}
	if publisher == nil {
		return nil, domain.NewValidationError("publisher", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &driverService{
		drivers:   drivers,
		cars:      cars,
		publisher: publisher,
		db:        db,
		logger:    log.With(slog.String("component", "driver_service")),
	}, nil
}

// GetDriver implements DriverService.GetDriver
func (s *driverService) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewDriverNotFound(id)
		}
		log.Error("failed to retrieve driver",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", id))
		return nil, err
	}

	return driver, nil
}

// ListDrivers implements DriverService.ListDrivers
func (s *driverService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	drivers, err := s.drivers.List(ctx)
	if err != nil {
		log.Error("failed to list drivers", slog.String("error", err.Error()))
		return nil, err
	}

	return drivers, nil
}

// inTx runs fn against transaction-scoped stores when a database handle is
// configured, or against the plain stores otherwise.
func (s *driverService) inTx(
	ctx context.Context,
	fn func(drivers store.DriverStore, cars store.CarStore) error,
) error {
	if s.db == nil {
		return fn(s.drivers, s.cars)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.drivers.WithTx(tx), s.cars.WithTx(tx))
	})
}

// CreateDriver implements DriverService.CreateDriver
func (s *driverService) CreateDriver(
	ctx context.Context,
	carID int64,
	driver *domain.Driver,
) (*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.inTx(ctx, func(drivers store.DriverStore, cars store.CarStore) error {
		// Phone before email: a request carrying both duplicates reports
		// the phone conflict.
		if err := checkPhoneFree(ctx, drivers, driver.Phone); err != nil {
			return err
		}
		if err := checkEmailFree(ctx, drivers, driver.Email); err != nil {
			return err
		}

		car, err := cars.GetByID(ctx, carID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewCarNotFound(carID)
			}
			log.Error("failed to resolve car for driver creation",
				slog.String("error", err.Error()),
				slog.Int64("car_id", carID))
			return err
		}

		driver.Car = car
		if err := drivers.Create(ctx, driver); err != nil {
			// The partial unique indexes catch racers that passed both
			// pre-checks before either insert committed.
			switch {
			case errors.Is(err, store.ErrEmailExists):
				return NewEmailExists(driver.Email)
			case errors.Is(err, store.ErrPhoneExists):
				return NewPhoneExists(driver.Phone)
			}
			log.Error("failed to create driver",
				slog.String("error", err.Error()),
				slog.String("email", driver.Email))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The driver row is durable at this point. The publish outcome is
	// observed synchronously but a failure does not undo the insert; it is
	// surfaced as a distinct error kind so the caller knows the side effect
	// could not be guaranteed.
	event := events.NewDriverCreatedEvent(driver.ID)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error("driver persisted but notification publish failed",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", driver.ID),
			slog.String("event_id", event.ID))
		return nil, NewServiceUnavailable(err)
	}

	log.Info("driver created",
		slog.Int64("driver_id", driver.ID),
		slog.String("event_id", event.ID))
	return driver, nil
}

// UpdateDriver implements DriverService.UpdateDriver
func (s *driverService) UpdateDriver(
	ctx context.Context,
	id int64,
	driver *domain.Driver,
) (*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.inTx(ctx, func(drivers store.DriverStore, cars store.CarStore) error {
		current, err := drivers.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewDriverNotFound(id)
			}
			log.Error("failed to resolve driver for update",
				slog.String("error", err.Error()),
				slog.Int64("driver_id", id))
			return err
		}

		// Email before phone; each check only runs when the value changed,
		// so a self-update is never a conflict.
		if driver.Email != current.Email {
			if err := checkEmailFree(ctx, drivers, driver.Email); err != nil {
				return err
			}
		}
		if driver.Phone != current.Phone {
			if err := checkPhoneFree(ctx, drivers, driver.Phone); err != nil {
				return err
			}
		}

		switch {
		case driver.Car == nil:
			driver.Car = current.Car
		case current.Car == nil || driver.Car.ID != current.Car.ID:
			// Re-resolve a changed reference so a dangling car id is
			// reported as the car being missing, not as a driver failure.
			car, err := cars.GetByID(ctx, driver.Car.ID)
			if err != nil {
				if store.IsNotFoundError(err) {
					return NewCarNotFound(driver.Car.ID)
				}
				log.Error("failed to resolve car for driver update",
					slog.String("error", err.Error()),
					slog.Int64("car_id", driver.Car.ID))
				return err
			}
			driver.Car = car
		default:
			driver.Car = current.Car
		}

		driver.ID = id
		if err := drivers.Update(ctx, driver); err != nil {
			switch {
			case errors.Is(err, store.ErrEmailExists):
				return NewEmailExists(driver.Email)
			case errors.Is(err, store.ErrPhoneExists):
				return NewPhoneExists(driver.Phone)
			case store.IsNotFoundError(err):
				return NewDriverNotFound(id)
			}
			log.Error("failed to update driver",
				slog.String("error", err.Error()),
				slog.Int64("driver_id", id))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("driver updated", slog.Int64("driver_id", id))
	return driver, nil
}

// DeleteDriver implements DriverService.DeleteDriver
func (s *driverService) DeleteDriver(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.drivers.Delete(ctx, id); err != nil {
		log.Error("failed to delete driver",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", id))
		return err
	}

	return nil
}

func checkEmailFree(ctx context.Context, drivers store.DriverStore, email string) error {
	exists, err := drivers.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return NewEmailExists(email)
	}
	return nil
}

func checkPhoneFree(ctx context.Context, drivers store.DriverStore, phone string) error {
	exists, err := drivers.ExistsByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if exists {
		return NewPhoneExists(phone)
	}
	return nil
}

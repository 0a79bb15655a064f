package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/platform/logger"
	"github.com/fleetwise/driver-service/internal/store"
)

// CarService provides car-related operations: CRUD plus license plate
// uniqueness enforcement over the car store.
type CarService interface {
	// GetCar retrieves an active car by its ID.
	GetCar(ctx context.Context, id int64) (*domain.Car, error)

	// ListCars returns all active cars.
	ListCars(ctx context.Context) ([]*domain.Car, error)

	// CreateCar persists a new car after checking the license plate is free.
	CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)

	// UpdateCar overwrites all mutable fields of the car with the given id.
	// The license plate uniqueness check only runs when the plate changed.
	UpdateCar(ctx context.Context, id int64, car *domain.Car) (*domain.Car, error)

	// DeleteCar soft-deletes the car. No existence check is performed.
	DeleteCar(ctx context.Context, id int64) error
}

// carService implements the CarService interface.
type carService struct {
	cars   store.CarStore
	logger *slog.Logger
}

// NewCarService creates a new CarService backed by the given store.
func NewCarService(cars store.CarStore, log *slog.Logger) (CarService, error) {
	if cars == nil {
		return nil, domain.NewValidationError("cars", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &carService{
		cars:   cars,
		logger: log.With(slog.String("component", "car_service")),
	}, nil
}

// GetCar implements CarService.GetCar
func (s *carService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewCarNotFound(id)
		}
		log.Error("failed to retrieve car",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return nil, err
	}

	return car, nil
}

// ListCars implements CarService.ListCars
func (s *carService) ListCars(ctx context.Context) ([]*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cars, err := s.cars.List(ctx)
	if err != nil {
		log.Error("failed to list cars", slog.String("error", err.Error()))
		return nil, err
	}

	return cars, nil
}

// CreateCar implements CarService.CreateCar
// The pre-insert existence check gives a fast, friendly conflict; the
// database unique index remains the authoritative guard, so a losing racer
// still comes back as the same conflict via the store error mapping.
func (s *carService) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkLicensePlateFree(ctx, car.LicensePlate); err != nil {
		return nil, err
	}

	if err := s.cars.Create(ctx, car); err != nil {
		if errors.Is(err, store.ErrLicensePlateExists) {
			return nil, NewCarExists(car.LicensePlate)
		}
		log.Error("failed to create car",
			slog.String("error", err.Error()),
			slog.String("license_plate", car.LicensePlate))
		return nil, err
	}

	log.Info("car created",
		slog.Int64("car_id", car.ID),
		slog.String("license_plate", car.LicensePlate))
	return car, nil
}

// UpdateCar implements CarService.UpdateCar
func (s *carService) UpdateCar(ctx context.Context, id int64, car *domain.Car) (*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewCarNotFound(id)
		}
		log.Error("failed to resolve car for update",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return nil, err
	}

	if car.LicensePlate != current.LicensePlate {
		if err := s.checkLicensePlateFree(ctx, car.LicensePlate); err != nil {
			return nil, err
		}
	}

	car.ID = id
	if err := s.cars.Update(ctx, car); err != nil {
		switch {
		case errors.Is(err, store.ErrLicensePlateExists):
			return nil, NewCarExists(car.LicensePlate)
		case store.IsNotFoundError(err):
			return nil, NewCarNotFound(id)
		}
		log.Error("failed to update car",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return nil, err
	}

	log.Info("car updated", slog.Int64("car_id", id))
	return car, nil
}

// DeleteCar implements CarService.DeleteCar
func (s *carService) DeleteCar(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cars.Delete(ctx, id); err != nil {
		log.Error("failed to delete car",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return err
	}

	return nil
}

func (s *carService) checkLicensePlateFree(ctx context.Context, licensePlate string) error {
	exists, err := s.cars.ExistsByLicensePlate(ctx, licensePlate)
	if err != nil {
		return err
	}
	if exists {
		return NewCarExists(licensePlate)
	}
	return nil
}

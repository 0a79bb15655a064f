package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/platform/logger"
	"github.com/fleetwise/driver-service/internal/store"
)

// CarStore implements the store.CarStore interface using a PostgreSQL
// database as the storage backend.
type CarStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCarStore creates a new PostgreSQL implementation of the CarStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewCarStore(db store.DBTX, logger *slog.Logger) *CarStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CarStore{
		db:     db,
		logger: logger.With(slog.String("component", "car_store")),
	}
}

// Ensure CarStore implements store.CarStore interface
var _ store.CarStore = (*CarStore)(nil)

// GetByID implements store.CarStore.GetByID
// Returns store.ErrCarNotFound if no active car with that id exists.
func (s *CarStore) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT car_id, color, model, license_plate, year, is_deleted
		FROM cars
		WHERE car_id = $1 AND is_deleted = FALSE
	`

	var car domain.Car
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&car.ID,
		&car.Color,
		&car.Model,
		&car.LicensePlate,
		&car.Year,
		&car.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("car not found", slog.Int64("car_id", id))
			return nil, store.ErrCarNotFound
		}
		log.Error("failed to get car by ID",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return nil, MapError(err)
	}

	return &car, nil
}

// List implements store.CarStore.List
// Soft-deleted cars are excluded.
func (s *CarStore) List(ctx context.Context) ([]*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT car_id, color, model, license_plate, year, is_deleted
		FROM cars
		WHERE is_deleted = FALSE
		ORDER BY car_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list cars", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cars []*domain.Car
	for rows.Next() {
		var car domain.Car
		err := rows.Scan(
			&car.ID,
			&car.Color,
			&car.Model,
			&car.LicensePlate,
			&car.Year,
			&car.IsDeleted,
		)
		if err != nil {
			log.Error("failed to scan car row", slog.String("error", err.Error()))
			return nil, err
		}
		cars = append(cars, &car)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if cars == nil {
		cars = []*domain.Car{}
	}

	return cars, nil
}

// ExistsByLicensePlate implements store.CarStore.ExistsByLicensePlate
func (s *CarStore) ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM cars
			WHERE license_plate = $1 AND is_deleted = FALSE
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, licensePlate).Scan(&exists); err != nil {
		log.Error("failed to check license plate existence",
			slog.String("error", err.Error()),
			slog.String("license_plate", licensePlate))
		return false, MapError(err)
	}

	return exists, nil
}

// Create implements store.CarStore.Create
// It persists the car and writes the assigned id back into it.
// Returns store.ErrLicensePlateExists if the partial unique index rejects
// the insert.
func (s *CarStore) Create(ctx context.Context, car *domain.Car) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := car.Validate(); err != nil {
		log.Warn("car validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO cars (color, model, license_plate, year, is_deleted)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING car_id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		car.Color,
		car.Model,
		car.LicensePlate,
		car.Year,
	).Scan(&car.ID)
	if err != nil {
		log.Error("failed to create car",
			slog.String("error", err.Error()),
			slog.String("license_plate", car.LicensePlate))
		return MapError(err)
	}

	log.Info("car created successfully",
		slog.Int64("car_id", car.ID),
		slog.String("license_plate", car.LicensePlate))
	return nil
}

// Update implements store.CarStore.Update
// Returns store.ErrCarNotFound if the car does not exist or is deleted.
func (s *CarStore) Update(ctx context.Context, car *domain.Car) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := car.Validate(); err != nil {
		log.Warn("car validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("car_id", car.ID))
		return err
	}

	query := `
		UPDATE cars
		SET color = $1, model = $2, license_plate = $3, year = $4
		WHERE car_id = $5 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		car.Color,
		car.Model,
		car.LicensePlate,
		car.Year,
		car.ID,
	)
	if err != nil {
		log.Error("failed to update car",
			slog.String("error", err.Error()),
			slog.Int64("car_id", car.ID))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("car_id", car.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("car not found for update", slog.Int64("car_id", car.ID))
		return store.ErrCarNotFound
	}

	log.Info("car updated successfully", slog.Int64("car_id", car.ID))
	return nil
}

// Delete implements store.CarStore.Delete
// It soft-deletes the row and is idempotent: deleting an absent or already
// deleted car is not an error.
func (s *CarStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cars
		SET is_deleted = TRUE
		WHERE car_id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		log.Error("failed to delete car",
			slog.String("error", err.Error()),
			slog.Int64("car_id", id))
		return MapError(err)
	}

	log.Info("car deleted", slog.Int64("car_id", id))
	return nil
}

// WithTx implements store.CarStore.WithTx
func (s *CarStore) WithTx(tx *sql.Tx) store.CarStore {
	return &CarStore{
		db:     tx,
		logger: s.logger,
	}
}

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

// DriverStore implements the store.DriverStore interface using a PostgreSQL
// database as the storage backend.
type DriverStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDriverStore creates a new PostgreSQL implementation of the DriverStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewDriverStore(db store.DBTX, logger *slog.Logger) *DriverStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DriverStore{
		db:     db,
		logger: logger.With(slog.String("component", "driver_store")),
	}
}

// Ensure DriverStore implements store.DriverStore interface
var _ store.DriverStore = (*DriverStore)(nil)

// The join resolves the referenced car without the is_deleted filter:
// a soft-deleted car stays attached to the drivers pointing at it.
const driverSelectColumns = `
	d.driver_id, d.name, d.email, d.phone, d.sex, d.is_deleted,
	c.car_id, c.color, c.model, c.license_plate, c.year, c.is_deleted
`

// scanDriver reads one driver row with its joined car columns.
func scanDriver(scan func(dest ...any) error) (*domain.Driver, error) {
	var driver domain.Driver
	var sex string
	var carID sql.NullInt64
	var carColor, carModel, carPlate sql.NullString
	var carYear sql.NullInt64
	var carDeleted sql.NullBool

	err := scan(
		&driver.ID,
		&driver.Name,
		&driver.Email,
		&driver.Phone,
		&sex,
		&driver.IsDeleted,
		&carID,
		&carColor,
		&carModel,
		&carPlate,
		&carYear,
		&carDeleted,
	)
	if err != nil {
		return nil, err
	}

	driver.Sex = domain.DriverSex(sex)
	if carID.Valid {
		driver.Car = &domain.Car{
			ID:           carID.Int64,
			Color:        carColor.String,
			Model:        carModel.String,
			LicensePlate: carPlate.String,
			Year:         int(carYear.Int64),
			IsDeleted:    carDeleted.Bool,
		}
	}

	return &driver, nil
}

// GetByID implements store.DriverStore.GetByID
// Returns store.ErrDriverNotFound if no active driver with that id exists.
func (s *DriverStore) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + driverSelectColumns + `
		FROM drivers d
		LEFT JOIN cars c ON c.car_id = d.car_id
		WHERE d.driver_id = $1 AND d.is_deleted = FALSE
	`

	row := s.db.QueryRowContext(ctx, query, id)
	driver, err := scanDriver(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("driver not found", slog.Int64("driver_id", id))
			return nil, store.ErrDriverNotFound
		}
		log.Error("failed to get driver by ID",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", id))
		return nil, MapError(err)
	}

	return driver, nil
}

// List implements store.DriverStore.List
// Soft-deleted drivers are excluded.
func (s *DriverStore) List(ctx context.Context) ([]*domain.Driver, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + driverSelectColumns + `
		FROM drivers d
		LEFT JOIN cars c ON c.car_id = d.car_id
		WHERE d.is_deleted = FALSE
		ORDER BY d.driver_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list drivers", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows.Scan)
		if err != nil {
			log.Error("failed to scan driver row", slog.String("error", err.Error()))
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if drivers == nil {
		drivers = []*domain.Driver{}
	}

	return drivers, nil
}

// ExistsByEmail implements store.DriverStore.ExistsByEmail
func (s *DriverStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email", email)
}

// ExistsByPhone implements store.DriverStore.ExistsByPhone
func (s *DriverStore) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return s.exists(ctx, "phone", phone)
}

func (s *DriverStore) exists(ctx context.Context, column, value string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// column is one of the two fixed callers above, never user input.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM drivers
			WHERE ` + column + ` = $1 AND is_deleted = FALSE
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		log.Error("failed to check driver existence",
			slog.String("error", err.Error()),
			slog.String("column", column))
		return false, MapError(err)
	}

	return exists, nil
}

// Create implements store.DriverStore.Create
// It persists the driver and writes the assigned id back into it.
// Returns store.ErrEmailExists or store.ErrPhoneExists if a partial unique
// index rejects the insert.
func (s *DriverStore) Create(ctx context.Context, driver *domain.Driver) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := driver.Validate(); err != nil {
		log.Warn("driver validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	var carID sql.NullInt64
	if driver.Car != nil {
		carID = sql.NullInt64{Int64: driver.Car.ID, Valid: true}
	}

	query := `
		INSERT INTO drivers (name, email, phone, sex, car_id, is_deleted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING driver_id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		driver.Name,
		driver.Email,
		driver.Phone,
		string(driver.Sex),
		carID,
	).Scan(&driver.ID)
	if err != nil {
		log.Error("failed to create driver",
			slog.String("error", err.Error()),
			slog.String("email", driver.Email))
		return MapError(err)
	}

	log.Info("driver created successfully",
		slog.Int64("driver_id", driver.ID),
		slog.String("email", driver.Email))
	return nil
}

// Update implements store.DriverStore.Update
// Returns store.ErrDriverNotFound if the driver does not exist or is deleted.
func (s *DriverStore) Update(ctx context.Context, driver *domain.Driver) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := driver.Validate(); err != nil {
		log.Warn("driver validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", driver.ID))
		return err
	}

	var carID sql.NullInt64
	if driver.Car != nil {
		carID = sql.NullInt64{Int64: driver.Car.ID, Valid: true}
	}

	query := `
		UPDATE drivers
		SET name = $1, email = $2, phone = $3, sex = $4, car_id = $5
		WHERE driver_id = $6 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		driver.Name,
		driver.Email,
		driver.Phone,
		string(driver.Sex),
		carID,
		driver.ID,
	)
	if err != nil {
		log.Error("failed to update driver",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", driver.ID))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", driver.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("driver not found for update", slog.Int64("driver_id", driver.ID))
		return store.ErrDriverNotFound
	}

	log.Info("driver updated successfully", slog.Int64("driver_id", driver.ID))
	return nil
}

// Delete implements store.DriverStore.Delete
// It soft-deletes the row and is idempotent: deleting an absent or already
// deleted driver is not an error.
func (s *DriverStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE drivers
		SET is_deleted = TRUE
		WHERE driver_id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		log.Error("failed to delete driver",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", id))
		return MapError(err)
	}

	log.Info("driver deleted", slog.Int64("driver_id", id))
	return nil
}

// WithTx implements store.DriverStore.WithTx
func (s *DriverStore) WithTx(tx *sql.Tx) store.DriverStore {
	return &DriverStore{
		db:     tx,
		logger: s.logger,
	}
}

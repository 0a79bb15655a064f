package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetwise/driver-service/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"
)

// Partial unique index names declared in the migrations. MapError uses the
// constraint name carried by a 23505 to pick the entity-specific duplicate
// error, so a race that slips past the service-level existence check still
// surfaces as the right conflict.
const (
	carsLicensePlateConstraint = "uniq_cars_license_plate"
	driversEmailConstraint     = "uniq_drivers_email"
	driversPhoneConstraint     = "uniq_drivers_phone"
)

// MapError maps a database error to the store error vocabulary.
// It wraps the original error to preserve context for debugging.
// This function should be used in all database operations to ensure
// consistent error handling.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case carsLicensePlateConstraint:
				return fmt.Errorf("%w: %v", store.ErrLicensePlateExists, err)
			case driversEmailConstraint:
				return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
			case driversPhoneConstraint:
				return fmt.Errorf("%w: %v", store.ErrPhoneExists, err)
			default:
				return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
			}
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrNotFound,
				pgErr.ConstraintName,
				err,
			)
		}
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

package store

import (
	"context"
	"database/sql"

	"github.com/fleetwise/driver-service/internal/domain"
)

// DriverStore defines the interface for driver data persistence.
//
// Reads honor the soft-delete convention for drivers. The car a driver
// references is resolved without the filter: a soft-deleted car stays
// attached to the drivers that point at it (the reference is historical,
// not cascaded).
type DriverStore interface {
	// GetByID retrieves an active driver by its unique ID with the referenced
	// car eagerly loaded. Returns ErrDriverNotFound if no active row exists.
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)

	// List returns all active drivers in store-native (id) order, cars
	// eagerly loaded. Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Driver, error)

	// ExistsByEmail reports whether an active driver with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByPhone reports whether an active driver with the given phone exists.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// Create persists a new driver and assigns its ID. The driver must carry
	// a resolved car reference. Returns ErrEmailExists or ErrPhoneExists on
	// uniqueness violations (enforced by partial unique indexes).
	// Returns validation errors from the domain Driver if data is invalid.
	Create(ctx context.Context, driver *domain.Driver) error

	// Update overwrites all mutable fields of an existing driver, including
	// the car reference, preserving its ID. Returns ErrDriverNotFound if the
	// driver does not exist or is deleted. Returns ErrEmailExists or
	// ErrPhoneExists on uniqueness violations.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete soft-deletes the driver with the given id. It is idempotent and
	// does not report whether the row existed.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new DriverStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) DriverStore
}

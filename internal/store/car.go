package store

import (
	"context"
	"database/sql"

	"github.com/fleetwise/driver-service/internal/domain"
)

// CarStore defines the interface for car data persistence.
//
// All reads honor the soft-delete convention: rows with is_deleted = TRUE are
// invisible to GetByID, List and ExistsByLicensePlate. Delete flips the flag
// instead of removing the row, so a deleted car id still satisfies the foreign
// key of any driver referencing it.
type CarStore interface {
	// GetByID retrieves an active car by its unique ID.
	// Returns ErrCarNotFound if no active row with that id exists.
	GetByID(ctx context.Context, id int64) (*domain.Car, error)

	// List returns all active cars in store-native (id) order.
	// Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Car, error)

	// ExistsByLicensePlate reports whether an active car with the given
	// license plate exists.
	ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error)

	// Create persists a new car and assigns its ID.
	// Returns ErrLicensePlateExists if the license plate is already taken by
	// an active car (enforced by a partial unique index).
	// Returns validation errors from the domain Car if data is invalid.
	Create(ctx context.Context, car *domain.Car) error

	// Update overwrites all mutable fields of an existing car, preserving its
	// ID. Returns ErrCarNotFound if the car does not exist or is deleted.
	// Returns ErrLicensePlateExists on a license plate collision.
	Update(ctx context.Context, car *domain.Car) error

	// Delete soft-deletes the car with the given id. It is idempotent and
	// does not report whether the row existed.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new CarStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CarStore
}

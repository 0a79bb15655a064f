package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (ErrCarNotFound, ErrDriverNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a car with the same license plate).
	ErrDuplicate = errors.New("entity already exists")

	// Entity-specific "not found" errors

	// ErrCarNotFound indicates that the requested car does not exist in the
	// store, or has been soft-deleted.
	ErrCarNotFound = fmt.Errorf("%w: car", ErrNotFound)

	// ErrDriverNotFound indicates that the requested driver does not exist in
	// the store, or has been soft-deleted.
	ErrDriverNotFound = fmt.Errorf("%w: driver", ErrNotFound)

	// Entity-specific "duplicate" errors. These correspond one-to-one to the
	// partial unique indexes declared in the migrations; the database is the
	// authoritative uniqueness guarantee under concurrent writers.

	// ErrLicensePlateExists indicates that an active car with the given
	// license plate already exists.
	ErrLicensePlateExists = fmt.Errorf("%w: license plate", ErrDuplicate)

	// ErrEmailExists indicates that an active driver with the given email
	// already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPhoneExists indicates that an active driver with the given phone
	// already exists.
	ErrPhoneExists = fmt.Errorf("%w: phone", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

package service

import (
	"errors"
	"fmt"
)

// Error kind sentinels. Service methods return *Error values that unwrap to
// one of these, so callers classify failures with errors.Is and the API layer
// maps kind to HTTP status in a single place.
var (
	// ErrNotFound indicates the requested id does not resolve to an active row.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation: the license plate, email
	// or phone is already in use by an active row.
	ErrConflict = errors.New("already exists")

	// ErrUnavailable indicates the post-creation notification could not be
	// delivered. The primary write is durable; only the side effect failed.
	ErrUnavailable = errors.New("service unavailable")
)

// Client-safe message formats. These are part of the service contract: the
// boundary returns them verbatim in the error body.
const (
	driverNotFoundMsg = "driver with id '%d' not found"
	carNotFoundMsg    = "car with id '%d' not found"
	emailExistsMsg    = "driver with email '%s' already exists"
	phoneExistsMsg    = "driver with phone '%s' already exists"
	carExistsMsg      = "car with number '%s' already exists"
	serviceUnavailMsg = "Service unavailable. Try again later"
)

// Error is the failure type returned by the domain services. Message is safe
// to show to clients; Err is the kind sentinel (plus any underlying cause)
// reachable through Unwrap.
type Error struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewDriverNotFound creates the not-found error for a driver id.
func NewDriverNotFound(id int64) *Error {
	return &Error{Message: fmt.Sprintf(driverNotFoundMsg, id), Err: ErrNotFound}
}

// NewCarNotFound creates the not-found error for a car id.
func NewCarNotFound(id int64) *Error {
	return &Error{Message: fmt.Sprintf(carNotFoundMsg, id), Err: ErrNotFound}
}

// NewEmailExists creates the conflict error for a duplicate driver email.
func NewEmailExists(email string) *Error {
	return &Error{Message: fmt.Sprintf(emailExistsMsg, email), Err: ErrConflict}
}

// NewPhoneExists creates the conflict error for a duplicate driver phone.
func NewPhoneExists(phone string) *Error {
	return &Error{Message: fmt.Sprintf(phoneExistsMsg, phone), Err: ErrConflict}
}

// NewCarExists creates the conflict error for a duplicate license plate.
func NewCarExists(licensePlate string) *Error {
	return &Error{Message: fmt.Sprintf(carExistsMsg, licensePlate), Err: ErrConflict}
}

// NewServiceUnavailable creates the error reported when the notification
// publish fails after a successful write. cause is kept on the unwrap chain
// for logging.
func NewServiceUnavailable(cause error) *Error {
	return &Error{Message: serviceUnavailMsg, Err: fmt.Errorf("%w: %v", ErrUnavailable, cause)}
}

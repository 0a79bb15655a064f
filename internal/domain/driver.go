package domain

import "errors"

// Driver-specific validation errors
var (
	// ErrDriverNameEmpty is returned when a driver's name is empty.
	ErrDriverNameEmpty = errors.New("driver name cannot be empty")

	// ErrDriverEmailEmpty is returned when a driver's email is empty.
	ErrDriverEmailEmpty = errors.New("driver email cannot be empty")

	// ErrDriverPhoneEmpty is returned when a driver's phone is empty.
	ErrDriverPhoneEmpty = errors.New("driver phone cannot be empty")
)

// DriverSex is the closed enumeration of accepted driver sex values.
type DriverSex string

// Accepted DriverSex values.
const (
	SexMale   DriverSex = "M"
	SexFemale DriverSex = "F"
)

// ParseDriverSex converts a raw string into a DriverSex.
// Returns ErrInvalidSex for anything outside the {M, F} set.
func ParseDriverSex(s string) (DriverSex, error) {
	switch DriverSex(s) {
	case SexMale, SexFemale:
		return DriverSex(s), nil
	default:
		return "", ErrInvalidSex
	}
}

// IsValid reports whether the value is one of the accepted enum members.
func (s DriverSex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Driver represents a registered driver. A driver references exactly one car
// by id; the car's lifecycle is independent of any driver pointing to it.
// ID is zero until the store persists the driver and assigns one.
type Driver struct {
	ID        int64     `json:"driverId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Sex       DriverSex `json:"sex"`
	Car       *Car      `json:"car,omitempty"`
	IsDeleted bool      `json:"-"`
}

// NewDriver creates a not-yet-persisted Driver with the given attributes.
// The car reference is attached later, when the service resolves the
// requested car id. Returns an error if validation fails.
func NewDriver(name, email, phone string, sex DriverSex) (*Driver, error) {
	driver := &Driver{
		Name:  name,
		Email: email,
		Phone: phone,
		Sex:   sex,
	}

	if err := driver.Validate(); err != nil {
		return nil, err
	}

	return driver, nil
}

// Validate checks if the Driver has valid data.
// Returns an error if any field fails validation.
func (d *Driver) Validate() error {
	if d.Name == "" {
		return ErrDriverNameEmpty
	}

	if d.Email == "" {
		return ErrDriverEmailEmpty
	}

	if d.Phone == "" {
		return ErrDriverPhoneEmpty
	}

	if !d.Sex.IsValid() {
		return ErrInvalidSex
	}

	return nil
}

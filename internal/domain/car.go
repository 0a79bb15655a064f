package domain

import "errors"

// Car-specific validation errors
var (
	// ErrCarColorEmpty is returned when a car's color is empty.
	ErrCarColorEmpty = errors.New("car color cannot be empty")

	// ErrCarModelEmpty is returned when a car's model is empty.
	ErrCarModelEmpty = errors.New("car model cannot be empty")

	// ErrCarLicensePlateEmpty is returned when a car's license plate is empty.
	ErrCarLicensePlateEmpty = errors.New("car license plate cannot be empty")

	// ErrCarYearInvalid is returned when a car's year is outside the accepted range.
	ErrCarYearInvalid = errors.New("car year must be between 1950 and 2100")
)

// Car represents a vehicle that can be assigned to a driver.
// ID is zero until the store persists the car and assigns one.
// Rows are never physically erased: deletion flips IsDeleted and the
// store excludes deleted rows from active reads.
type Car struct {
	ID           int64  `json:"carId"`
	Color        string `json:"color"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Year         int    `json:"year"`
	IsDeleted    bool   `json:"-"`
}

// NewCar creates a not-yet-persisted Car with the given attributes.
// Returns an error if validation fails.
func NewCar(color, model, licensePlate string, year int) (*Car, error) {
	car := &Car{
		Color:        color,
		Model:        model,
		LicensePlate: licensePlate,
		Year:         year,
	}

	if err := car.Validate(); err != nil {
		return nil, err
	}

	return car, nil
}

// Validate checks if the Car has valid data.
// Returns an error if any field fails validation.
func (c *Car) Validate() error {
	if c.Color == "" {
		return ErrCarColorEmpty
	}

	if c.Model == "" {
		return ErrCarModelEmpty
	}

	if c.LicensePlate == "" {
		return ErrCarLicensePlateEmpty
	}

	if c.Year < 1950 || c.Year > 2100 {
		return ErrCarYearInvalid
	}

	return nil
}

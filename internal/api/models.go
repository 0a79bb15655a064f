package api

import (
	"github.com/fleetwise/driver-service/internal/domain"
)

// Request/response structures mirroring the service's JSON contract.

// CarRequest defines the payload for car create/update endpoints.
type CarRequest struct {
	Color        string `json:"color"        validate:"required"`
	Model        string `json:"model"        validate:"required"`
	LicensePlate string `json:"licensePlate" validate:"required"`
	Year         int    `json:"year"         validate:"required,gte=1950,lte=2100"`
}

// DriverRequest defines the payload for driver create/update endpoints.
type DriverRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,number,min=9,max=15"`
	Sex   string `json:"sex"   validate:"required,oneof=M F"`
	CarID int64  `json:"carId" validate:"required,gt=0"`
}

// CarResponse represents a car in API responses.
type CarResponse struct {
	CarID        int64  `json:"carId"`
	Color        string `json:"color"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Year         int    `json:"year"`
}

// CarListResponse wraps the car collection returned by GET /cars.
type CarListResponse struct {
	Cars []CarResponse `json:"cars"`
}

// DriverResponse represents a driver in API responses, without the
// embedded car.
type DriverResponse struct {
	DriverID int64  `json:"driverId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Sex      string `json:"sex"`
}

// DriverWithCarResponse represents a driver with its referenced car embedded.
// Returned by GET /drivers/{id}.
type DriverWithCarResponse struct {
	DriverID int64        `json:"driverId"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Sex      string       `json:"sex"`
	Car      *CarResponse `json:"car,omitempty"`
}

// DriverListResponse wraps the driver collection returned by GET /drivers.
type DriverListResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// toDomainCar converts a CarRequest to a not-yet-persisted domain Car.
func (req CarRequest) toDomainCar() *domain.Car {
	return &domain.Car{
		Color:        req.Color,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		Year:         req.Year,
	}
}

// toDomainDriver converts a DriverRequest to a not-yet-persisted domain
// Driver. The sex value has already passed the oneof validation.
func (req DriverRequest) toDomainDriver() *domain.Driver {
	return &domain.Driver{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Sex:   domain.DriverSex(req.Sex),
	}
}

// carToResponse converts a domain Car to a CarResponse.
func carToResponse(car *domain.Car) CarResponse {
	return CarResponse{
		CarID:        car.ID,
		Color:        car.Color,
		Model:        car.Model,
		LicensePlate: car.LicensePlate,
		Year:         car.Year,
	}
}

// driverToResponse converts a domain Driver to a DriverResponse.
func driverToResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		DriverID: driver.ID,
		Name:     driver.Name,
		Email:    driver.Email,
		Phone:    driver.Phone,
		Sex:      string(driver.Sex),
	}
}

// driverToResponseWithCar converts a domain Driver to a DriverWithCarResponse.
func driverToResponseWithCar(driver *domain.Driver) DriverWithCarResponse {
	resp := DriverWithCarResponse{
		DriverID: driver.ID,
		Name:     driver.Name,
		Email:    driver.Email,
		Phone:    driver.Phone,
		Sex:      string(driver.Sex),
	}
	if driver.Car != nil {
		car := carToResponse(driver.Car)
		resp.Car = &car
	}
	return resp
}

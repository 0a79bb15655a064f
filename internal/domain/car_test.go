package domain

import "testing"

func TestNewCar(t *testing.T) {
	t.Parallel() // Enable parallel execution

	car, err := NewCar("red", "Toyota Camry", "1234AB", 2020)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if car.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", car.ID)
	}

	if car.Color != "red" {
		t.Errorf("Expected color red, got %s", car.Color)
	}

	if car.LicensePlate != "1234AB" {
		t.Errorf("Expected license plate 1234AB, got %s", car.LicensePlate)
	}

	if car.IsDeleted {
		t.Error("Expected new car to not be deleted")
	}

	// Test empty color
	_, err = NewCar("", "Toyota Camry", "1234AB", 2020)
	if err != ErrCarColorEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarColorEmpty, err)
	}

	// Test empty model
	_, err = NewCar("red", "", "1234AB", 2020)
	if err != ErrCarModelEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarModelEmpty, err)
	}

	// Test empty license plate
	_, err = NewCar("red", "Toyota Camry", "", 2020)
	if err != ErrCarLicensePlateEmpty {
		t.Errorf("Expected error %v, got %v", ErrCarLicensePlateEmpty, err)
	}
}

func TestCarValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	validCar := Car{
		ID:           1,
		Color:        "black",
		Model:        "BMW X5",
		LicensePlate: "5678CD",
		Year:         2015,
	}

	if err := validCar.Validate(); err != nil {
		t.Errorf("Expected valid car to pass validation, got %v", err)
	}

	// Year bounds
	tooOld := validCar
	tooOld.Year = 1949
	if err := tooOld.Validate(); err != ErrCarYearInvalid {
		t.Errorf("Expected error %v, got %v", ErrCarYearInvalid, err)
	}

	tooNew := validCar
	tooNew.Year = 2101
	if err := tooNew.Validate(); err != ErrCarYearInvalid {
		t.Errorf("Expected error %v, got %v", ErrCarYearInvalid, err)
	}

	// Boundary years are accepted
	oldest := validCar
	oldest.Year = 1950
	if err := oldest.Validate(); err != nil {
		t.Errorf("Expected year 1950 to be valid, got %v", err)
	}

	newest := validCar
	newest.Year = 2100
	if err := newest.Validate(); err != nil {
		t.Errorf("Expected year 2100 to be valid, got %v", err)
	}
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/store"
)

// MockCarStore implements store.CarStore for testing.
type MockCarStore struct {
	// Function fields for customizable behavior
	GetByIDFn              func(ctx context.Context, id int64) (*domain.Car, error)
	ListFn                 func(ctx context.Context) ([]*domain.Car, error)
	ExistsByLicensePlateFn func(ctx context.Context, licensePlate string) (bool, error)
	CreateFn               func(ctx context.Context, car *domain.Car) error
	UpdateFn               func(ctx context.Context, car *domain.Car) error
	DeleteFn               func(ctx context.Context, id int64) error

	// Data for the default implementation
	Cars   map[int64]*domain.Car
	NextID int64
}

// NewMockCarStore creates a new mock store with initialized defaults.
func NewMockCarStore() *MockCarStore {
	return &MockCarStore{
		Cars:   make(map[int64]*domain.Car),
		NextID: 1,
	}
}

// Ensure MockCarStore implements store.CarStore
var _ store.CarStore = (*MockCarStore)(nil)

// GetByID implements the CarStore interface.
func (m *MockCarStore) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	car, ok := m.Cars[id]
	if !ok || car.IsDeleted {
		return nil, store.ErrCarNotFound
	}
	copied := *car
	return &copied, nil
}

// List implements the CarStore interface.
func (m *MockCarStore) List(ctx context.Context) ([]*domain.Car, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	cars := make([]*domain.Car, 0, len(m.Cars))
	for id := int64(1); id < m.NextID; id++ {
		if car, ok := m.Cars[id]; ok && !car.IsDeleted {
			copied := *car
			cars = append(cars, &copied)
		}
	}
	return cars, nil
}

// ExistsByLicensePlate implements the CarStore interface.
func (m *MockCarStore) ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error) {
	if m.ExistsByLicensePlateFn != nil {
		return m.ExistsByLicensePlateFn(ctx, licensePlate)
	}

	for _, car := range m.Cars {
		if !car.IsDeleted && car.LicensePlate == licensePlate {
			return true, nil
		}
	}
	return false, nil
}

// Create implements the CarStore interface.
func (m *MockCarStore) Create(ctx context.Context, car *domain.Car) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, car)
	}

	for _, existing := range m.Cars {
		if !existing.IsDeleted && existing.LicensePlate == car.LicensePlate {
			return store.ErrLicensePlateExists
		}
	}

	car.ID = m.NextID
	m.NextID++
	copied := *car
	m.Cars[car.ID] = &copied
	return nil
}

// Update implements the CarStore interface.
func (m *MockCarStore) Update(ctx context.Context, car *domain.Car) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, car)
	}

	existing, ok := m.Cars[car.ID]
	if !ok || existing.IsDeleted {
		return store.ErrCarNotFound
	}

	for id, other := range m.Cars {
		if id != car.ID && !other.IsDeleted && other.LicensePlate == car.LicensePlate {
			return store.ErrLicensePlateExists
		}
	}

	copied := *car
	m.Cars[car.ID] = &copied
	return nil
}

// Delete implements the CarStore interface.
func (m *MockCarStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if car, ok := m.Cars[id]; ok {
		car.IsDeleted = true
	}
	return nil
}

// WithTx implements the CarStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockCarStore) WithTx(tx *sql.Tx) store.CarStore {
	return m
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/store"
)

// MockDriverStore implements store.DriverStore for testing.
type MockDriverStore struct {
	// Function fields for customizable behavior
	GetByIDFn       func(ctx context.Context, id int64) (*domain.Driver, error)
	ListFn          func(ctx context.Context) ([]*domain.Driver, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
	ExistsByPhoneFn func(ctx context.Context, phone string) (bool, error)
	CreateFn        func(ctx context.Context, driver *domain.Driver) error
	UpdateFn        func(ctx context.Context, driver *domain.Driver) error
	DeleteFn        func(ctx context.Context, id int64) error

	// Data for the default implementation
	Drivers map[int64]*domain.Driver
	NextID  int64
}

// NewMockDriverStore creates a new mock store with initialized defaults.
func NewMockDriverStore() *MockDriverStore {
	return &MockDriverStore{
		Drivers: make(map[int64]*domain.Driver),
		NextID:  1,
	}
}

// Ensure MockDriverStore implements store.DriverStore
var _ store.DriverStore = (*MockDriverStore)(nil)

// GetByID implements the DriverStore interface.
func (m *MockDriverStore) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	driver, ok := m.Drivers[id]
	if !ok || driver.IsDeleted {
		return nil, store.ErrDriverNotFound
	}
	copied := *driver
	return &copied, nil
}

// List implements the DriverStore interface.
func (m *MockDriverStore) List(ctx context.Context) ([]*domain.Driver, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	drivers := make([]*domain.Driver, 0, len(m.Drivers))
	for id := int64(1); id < m.NextID; id++ {
		if driver, ok := m.Drivers[id]; ok && !driver.IsDeleted {
			copied := *driver
			drivers = append(drivers, &copied)
		}
	}
	return drivers, nil
}

// ExistsByEmail implements the DriverStore interface.
func (m *MockDriverStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}

	for _, driver := range m.Drivers {
		if !driver.IsDeleted && driver.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByPhone implements the DriverStore interface.
func (m *MockDriverStore) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFn != nil {
		return m.ExistsByPhoneFn(ctx, phone)
	}

	for _, driver := range m.Drivers {
		if !driver.IsDeleted && driver.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// Create implements the DriverStore interface.
func (m *MockDriverStore) Create(ctx context.Context, driver *domain.Driver) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, driver)
	}

	for _, existing := range m.Drivers {
		if existing.IsDeleted {
			continue
		}
		if existing.Email == driver.Email {
			return store.ErrEmailExists
		}
		if existing.Phone == driver.Phone {
			return store.ErrPhoneExists
		}
	}

	driver.ID = m.NextID
	m.NextID++
	copied := *driver
	m.Drivers[driver.ID] = &copied
	return nil
}

// Update implements the DriverStore interface.
func (m *MockDriverStore) Update(ctx context.Context, driver *domain.Driver) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, driver)
	}

	existing, ok := m.Drivers[driver.ID]
	if !ok || existing.IsDeleted {
		return store.ErrDriverNotFound
	}

	for id, other := range m.Drivers {
		if id == driver.ID || other.IsDeleted {
			continue
		}
		if other.Email == driver.Email {
			return store.ErrEmailExists
		}
		if other.Phone == driver.Phone {
			return store.ErrPhoneExists
		}
	}

	copied := *driver
	m.Drivers[driver.ID] = &copied
	return nil
}

// Delete implements the DriverStore interface.
func (m *MockDriverStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if driver, ok := m.Drivers[id]; ok {
		driver.IsDeleted = true
	}
	return nil
}

// WithTx implements the DriverStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockDriverStore) WithTx(tx *sql.Tx) store.DriverStore {
	return m
}

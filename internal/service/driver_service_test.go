package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/events"
	"github.com/fleetwise/driver-service/internal/mocks"
	"github.com/fleetwise/driver-service/internal/service"
	"github.com/fleetwise/driver-service/internal/store"
)

type driverServiceFixture struct {
	drivers   *mocks.MockDriverStore
	cars      *mocks.MockCarStore
	publisher *events.InMemoryPublisher
	svc       service.DriverService
}

func newDriverServiceFixture(t *testing.T) *driverServiceFixture {
	t.Helper()

	f := &driverServiceFixture{
		drivers:   mocks.NewMockDriverStore(),
		cars:      mocks.NewMockCarStore(),
		publisher: events.NewInMemoryPublisher(nil),
	}

	svc, err := service.NewDriverService(f.drivers, f.cars, f.publisher, nil, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

// seedCar persists a car directly through the mock store.
func (f *driverServiceFixture) seedCar(t *testing.T, plate string) *domain.Car {
	t.Helper()
	car, err := domain.NewCar("red", "Toyota Camry", plate, 2020)
	require.NoError(t, err)
	require.NoError(t, f.cars.Create(context.Background(), car))
	return car
}

func newTestDriver(t *testing.T, email, phone string) *domain.Driver {
	t.Helper()
	driver, err := domain.NewDriver("John Doe", email, phone, domain.SexMale)
	require.NoError(t, err)
	return driver
}

func TestDriverService_CreateDriver(t *testing.T) {
	t.Parallel()

	t.Run("creates driver, attaches car and publishes exactly one event", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")

		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		require.NotNil(t, created.Car)
		assert.Equal(t, car.ID, created.Car.ID)

		published := f.publisher.Published()
		require.Len(t, published, 1)
		assert.Equal(t, created.ID, published[0].DriverID)
		assert.NotEmpty(t, published[0].ID)
	})

	t.Run("duplicate phone conflicts before email check", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")

		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		// Same phone AND same email: phone wins because it is checked first.
		_, err = f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "driver with phone '+77001234567' already exists", err.Error())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")

		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		_, err = f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77007654321"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "driver with email 'john@example.com' already exists", err.Error())
	})

	t.Run("unknown car rejects without persisting or publishing", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)

		_, err := f.svc.CreateDriver(context.Background(),
			999, newTestDriver(t, "john@example.com", "+77001234567"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "car with id '999' not found", err.Error())

		assert.Empty(t, f.drivers.Drivers)
		assert.Empty(t, f.publisher.Published())
	})

	t.Run("publish failure surfaces as unavailable but driver stays persisted", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		f.publisher.FailWith = errors.New("broker down")

		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrUnavailable)
		assert.Equal(t, "Service unavailable. Try again later", err.Error())

		// The write is durable: the driver is visible afterwards.
		drivers, listErr := f.svc.ListDrivers(context.Background())
		require.NoError(t, listErr)
		assert.Len(t, drivers, 1)
	})

	t.Run("store race duplicate maps to the matching conflict", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		f.drivers.CreateFn = func(ctx context.Context, driver *domain.Driver) error {
			return store.ErrEmailExists
		}

		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "driver with email 'john@example.com' already exists", err.Error())
		assert.Empty(t, f.publisher.Published())
	})
}

func TestDriverService_GetDriver(t *testing.T) {
	t.Parallel()

	t.Run("returns driver with car loaded", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		got, err := f.svc.GetDriver(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", got.Email)
		require.NotNil(t, got.Car)
		assert.Equal(t, "1234AB", got.Car.LicensePlate)
	})

	t.Run("unknown id yields not found with id in message", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)

		_, err := f.svc.GetDriver(context.Background(), 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "driver with id '999' not found", err.Error())
	})

	t.Run("deleted driver is not found", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteDriver(context.Background(), created.ID))

		_, err = f.svc.GetDriver(context.Background(), created.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestDriverService_UpdateDriver(t *testing.T) {
	t.Parallel()

	t.Run("self-update with unchanged email and phone is not a conflict", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		replacement := newTestDriver(t, "john@example.com", "+77001234567")
		replacement.Name = "John Q. Doe"

		updated, err := f.svc.UpdateDriver(context.Background(), created.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "John Q. Doe", updated.Name)
	})

	t.Run("changed email colliding with another driver conflicts", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		second, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "jane@example.com", "+77007654321"))
		require.NoError(t, err)

		replacement := newTestDriver(t, "john@example.com", "+77007654321")
		_, err = f.svc.UpdateDriver(context.Background(), second.ID, replacement)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "driver with email 'john@example.com' already exists", err.Error())
	})

	t.Run("changed phone colliding with another driver conflicts", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		_, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		second, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "jane@example.com", "+77007654321"))
		require.NoError(t, err)

		replacement := newTestDriver(t, "jane@example.com", "+77001234567")
		_, err = f.svc.UpdateDriver(context.Background(), second.ID, replacement)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "driver with phone '+77001234567' already exists", err.Error())
	})

	t.Run("changing car re-resolves the reference", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		first := f.seedCar(t, "1234AB")
		second := f.seedCar(t, "5678CD")
		created, err := f.svc.CreateDriver(context.Background(),
			first.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		replacement := newTestDriver(t, "john@example.com", "+77001234567")
		replacement.Car = &domain.Car{ID: second.ID}

		updated, err := f.svc.UpdateDriver(context.Background(), created.ID, replacement)
		require.NoError(t, err)
		require.NotNil(t, updated.Car)
		assert.Equal(t, "5678CD", updated.Car.LicensePlate)
	})

	t.Run("changing to an unknown car yields car not found", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)

		replacement := newTestDriver(t, "john@example.com", "+77001234567")
		replacement.Car = &domain.Car{ID: 999}

		_, err = f.svc.UpdateDriver(context.Background(), created.ID, replacement)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "car with id '999' not found", err.Error())
	})

	t.Run("unknown driver yields not found", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)

		_, err := f.svc.UpdateDriver(context.Background(), 42,
			newTestDriver(t, "john@example.com", "+77001234567"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "driver with id '42' not found", err.Error())
	})

	t.Run("update publishes no event", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		require.Len(t, f.publisher.Published(), 1)

		replacement := newTestDriver(t, "john@example.com", "+77001234567")
		_, err = f.svc.UpdateDriver(context.Background(), created.ID, replacement)
		require.NoError(t, err)

		assert.Len(t, f.publisher.Published(), 1)
	})
}

func TestDriverService_DeleteDriver(t *testing.T) {
	t.Parallel()

	t.Run("delete of unknown id succeeds", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		assert.NoError(t, f.svc.DeleteDriver(context.Background(), 999))
	})

	t.Run("deleted driver frees email and phone for reuse", func(t *testing.T) {
		t.Parallel()
		f := newDriverServiceFixture(t)
		car := f.seedCar(t, "1234AB")
		created, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		require.NoError(t, f.svc.DeleteDriver(context.Background(), created.ID))

		again, err := f.svc.CreateDriver(context.Background(),
			car.ID, newTestDriver(t, "john@example.com", "+77001234567"))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, again.ID)
	})
}

func TestNewDriverService(t *testing.T) {
	t.Parallel()

	drivers := mocks.NewMockDriverStore()
	cars := mocks.NewMockCarStore()
	publisher := events.NewInMemoryPublisher(nil)

	t.Run("nil driver store rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.NewDriverService(nil, cars, publisher, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil car store rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.NewDriverService(drivers, nil, publisher, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil publisher rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.NewDriverService(drivers, cars, nil, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

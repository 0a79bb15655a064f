package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/mocks"
	"github.com/fleetwise/driver-service/internal/service"
	"github.com/fleetwise/driver-service/internal/store"
)

func newTestCar(t *testing.T, plate string) *domain.Car {
	t.Helper()
	car, err := domain.NewCar("red", "Toyota Camry", plate, 2020)
	require.NoError(t, err)
	return car
}

func TestCarService_CreateCar(t *testing.T) {
	t.Parallel()

	t.Run("creates car and assigns id", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "1234AB", created.LicensePlate)
	})

	t.Run("rejects duplicate license plate", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		_, err = svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)

		_, err = svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "car with number '1234AB' already exists", err.Error())
	})

	t.Run("maps store race duplicate to conflict", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		// exists-check says free, insert still collides
		carStore.ExistsByLicensePlateFn = func(ctx context.Context, plate string) (bool, error) {
			return false, nil
		}
		carStore.CreateFn = func(ctx context.Context, car *domain.Car) error {
			return store.ErrLicensePlateExists
		}
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		_, err = svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "car with number '1234AB' already exists", err.Error())
	})

	t.Run("plate freed by soft delete can be reused", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		first, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		require.NoError(t, svc.DeleteCar(context.Background(), first.ID))

		second, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestCarService_GetCar(t *testing.T) {
	t.Parallel()

	t.Run("returns existing car", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)

		got, err := svc.GetCar(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Toyota Camry", got.Model)
	})

	t.Run("unknown id yields not found with id in message", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		_, err = svc.GetCar(context.Background(), 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "car with id '999' not found", err.Error())
	})

	t.Run("deleted car is not found", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		require.NoError(t, svc.DeleteCar(context.Background(), created.ID))

		_, err = svc.GetCar(context.Background(), created.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCarService_ListCars(t *testing.T) {
	t.Parallel()

	t.Run("empty store lists empty slice", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		cars, err := svc.ListCars(context.Background())
		require.NoError(t, err)
		assert.Empty(t, cars)
	})

	t.Run("excludes soft-deleted cars", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		kept, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		dropped, err := svc.CreateCar(context.Background(), newTestCar(t, "5678CD"))
		require.NoError(t, err)
		require.NoError(t, svc.DeleteCar(context.Background(), dropped.ID))

		cars, err := svc.ListCars(context.Background())
		require.NoError(t, err)
		require.Len(t, cars, 1)
		assert.Equal(t, kept.ID, cars[0].ID)
	})
}

func TestCarService_UpdateCar(t *testing.T) {
	t.Parallel()

	t.Run("overwrites fields and keeps id", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)

		replacement := newTestCar(t, "1234AB")
		replacement.Color = "blue"
		replacement.Year = 2022

		updated, err := svc.UpdateCar(context.Background(), created.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "blue", updated.Color)
		assert.Equal(t, 2022, updated.Year)
	})

	t.Run("keeping own plate is not a conflict", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)

		_, err = svc.UpdateCar(context.Background(), created.ID, newTestCar(t, "1234AB"))
		assert.NoError(t, err)
	})

	t.Run("changing to a taken plate conflicts", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		_, err = svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)
		second, err := svc.CreateCar(context.Background(), newTestCar(t, "5678CD"))
		require.NoError(t, err)

		_, err = svc.UpdateCar(context.Background(), second.ID, newTestCar(t, "1234AB"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrConflict)
		assert.Equal(t, "car with number '1234AB' already exists", err.Error())
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		_, err = svc.UpdateCar(context.Background(), 42, newTestCar(t, "1234AB"))
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.Equal(t, "car with id '42' not found", err.Error())
	})
}

func TestCarService_DeleteCar(t *testing.T) {
	t.Parallel()

	t.Run("delete of unknown id succeeds", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		assert.NoError(t, svc.DeleteCar(context.Background(), 999))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		created, err := svc.CreateCar(context.Background(), newTestCar(t, "1234AB"))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCar(context.Background(), created.ID))
		assert.NoError(t, svc.DeleteCar(context.Background(), created.ID))
	})

	t.Run("store failure propagates", func(t *testing.T) {
		t.Parallel()
		carStore := mocks.NewMockCarStore()
		storeErr := errors.New("connection reset")
		carStore.DeleteFn = func(ctx context.Context, id int64) error {
			return storeErr
		}
		svc, err := service.NewCarService(carStore, nil)
		require.NoError(t, err)

		err = svc.DeleteCar(context.Background(), 1)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestNewCarService(t *testing.T) {
	t.Parallel()

	_, err := service.NewCarService(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

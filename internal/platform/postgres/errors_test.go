package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/fleetwise/driver-service/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "no rows maps to not found",
			err:      sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "wrapped no rows maps to not found",
			err:      fmt.Errorf("query car: %w", sql.ErrNoRows),
			sentinel: store.ErrNotFound,
		},
		{
			name: "license plate constraint maps to plate duplicate",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "uniq_cars_license_plate",
			},
			sentinel: store.ErrLicensePlateExists,
		},
		{
			name: "email constraint maps to email duplicate",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "uniq_drivers_email",
			},
			sentinel: store.ErrEmailExists,
		},
		{
			name: "phone constraint maps to phone duplicate",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "uniq_drivers_phone",
			},
			sentinel: store.ErrPhoneExists,
		},
		{
			name: "unknown unique constraint maps to generic duplicate",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "some_other_index",
			},
			sentinel: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to not found",
			err: &pgconn.PgError{
				Code:           "23503",
				ConstraintName: "drivers_car_id_fkey",
			},
			sentinel: store.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.sentinel)
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapError(nil))
	})

	t.Run("unrelated errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection refused")
		assert.Equal(t, cause, MapError(cause))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
}

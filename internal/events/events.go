package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DriverCreatedEvent is the notification emitted after a driver is
// successfully registered. It carries the store-assigned driver id for the
// rating/onboarding consumers listening on the driver-ids channel.
type DriverCreatedEvent struct {
	ID         string    `json:"id"`
	DriverID   int64     `json:"driverId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewDriverCreatedEvent creates a DriverCreatedEvent for the given driver id
// with a fresh event id and the current timestamp.
func NewDriverCreatedEvent(driverID int64) *DriverCreatedEvent {
	return &DriverCreatedEvent{
		ID:         uuid.New().String(),
		DriverID:   driverID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is the outbound side of the driver-created notification channel.
// Publish is fire-once with a synchronously observed outcome: the caller
// waits for the attempt to finish, and a returned error means delivery could
// not be confirmed. Implementations must not retry.
type Publisher interface {
	Publish(ctx context.Context, event *DriverCreatedEvent) error
}

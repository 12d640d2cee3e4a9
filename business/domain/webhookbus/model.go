package webhookbus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Delivery states an outbox event moves through.
const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Event is one outbound webhook delivery sitting in the outbox.
type Event struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Kind          string
	Payload       json.RawMessage
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEvent contains information needed to enqueue a delivery.
type NewEvent struct {
	TenantID uuid.UUID
	Kind     string
	Payload  json.RawMessage
}

package webhookdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/webhookbus"
)

type event struct {
	ID            uuid.UUID `db:"event_id"`
	TenantID      uuid.UUID `db:"tenant_id"`
	Kind          string    `db:"kind"`
	Payload       []byte    `db:"payload"`
	Status        string    `db:"status"`
	Attempts      int       `db:"attempts"`
	NextAttemptAt time.Time `db:"next_attempt_at"`
	LastError     string    `db:"last_error"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toDBEvent(bus webhookbus.Event) event {
	return event{
		ID:            bus.ID,
		TenantID:      bus.TenantID,
		Kind:          bus.Kind,
		Payload:       bus.Payload,
		Status:        bus.Status,
		Attempts:      bus.Attempts,
		NextAttemptAt: bus.NextAttemptAt.UTC(),
		LastError:     bus.LastError,
		CreatedAt:     bus.CreatedAt.UTC(),
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}
}

func toBusEvent(db event) webhookbus.Event {
	return webhookbus.Event{
		ID:            db.ID,
		TenantID:      db.TenantID,
		Kind:          db.Kind,
		Payload:       json.RawMessage(db.Payload),
		Status:        db.Status,
		Attempts:      db.Attempts,
		NextAttemptAt: db.NextAttemptAt.In(time.Local),
		LastError:     db.LastError,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}
}

func toBusEvents(dbs []event) []webhookbus.Event {
	bus := make([]webhookbus.Event, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusEvent(db)
	}

	return bus
}

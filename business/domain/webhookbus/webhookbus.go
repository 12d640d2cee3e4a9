// Package webhookbus delivers outbound webhook events with an outbox. An
// event is a single row written when something noteworthy happens; a
// background dispatcher drains pending rows and POSTs them to the owning
// tenant's configured endpoint. Delivery is at-least-once and unordered, and
// a delivery failure never affects the request that enqueued the event.
package webhookbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// ErrNotFound is returned when an event cannot be located.
var ErrNotFound = errors.New("event not found")

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, evt Event) error
	Update(ctx context.Context, evt Event) error
	QueryDue(ctx context.Context, now time.Time, limit int) ([]Event, error)
}

// Core manages the set of APIs for webhook outbox access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a webhook core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new core value that will use the specified
// transaction in any store related calls. Enqueueing inside the triggering
// request's transaction makes the outbox write atomic with the trigger.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	core := Core{
		log:    c.log,
		storer: storer,
	}

	return &core, nil
}

// Enqueue records an event for delivery. This is a single atomic write; the
// dispatcher picks the row up on its next pass.
func (c *Core) Enqueue(ctx context.Context, ne NewEvent) (Event, error) {
	ctx, span := otel.AddSpan(ctx, "business.webhookbus.enqueue")
	defer span.End()

	now := time.Now()

	evt := Event{
		ID:            uuid.New(),
		TenantID:      ne.TenantID,
		Kind:          ne.Kind,
		Payload:       ne.Payload,
		Status:        StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, evt); err != nil {
		return Event{}, fmt.Errorf("create: %w", err)
	}

	return evt, nil
}

// QueryDue returns pending events whose next attempt time has passed.
func (c *Core) QueryDue(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	ctx, span := otel.AddSpan(ctx, "business.webhookbus.querydue")
	defer span.End()

	evts, err := c.storer.QueryDue(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("query due: %w", err)
	}

	return evts, nil
}

// MarkDelivered records a successful delivery.
func (c *Core) MarkDelivered(ctx context.Context, evt Event) error {
	ctx, span := otel.AddSpan(ctx, "business.webhookbus.markdelivered")
	defer span.End()

	evt.Status = StatusDelivered
	evt.Attempts++
	evt.LastError = ""
	evt.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, evt); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// MarkFailed records a failed attempt. The event stays pending and is
// rescheduled for nextAttempt unless it has exhausted its attempts, in which
// case it moves to failed and is never retried.
func (c *Core) MarkFailed(ctx context.Context, evt Event, nextAttempt time.Time, maxAttempts int, cause error) error {
	ctx, span := otel.AddSpan(ctx, "business.webhookbus.markfailed")
	defer span.End()

	evt.Attempts++
	evt.LastError = cause.Error()
	evt.NextAttemptAt = nextAttempt
	evt.UpdatedAt = time.Now()

	if evt.Attempts >= maxAttempts {
		evt.Status = StatusFailed
	}

	if err := c.storer.Update(ctx, evt); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// Package webhookdb contains webhook outbox CRUD functionality.
package webhookdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/workforcehq/jobboard/business/domain/webhookbus"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages the set of APIs for webhook outbox database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (webhookbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new event into the outbox.
func (s *Store) Create(ctx context.Context, evt webhookbus.Event) error {
	const q = `
	INSERT INTO webhook_events
		(event_id, tenant_id, kind, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at)
	VALUES
		(:event_id, :tenant_id, :kind, :payload, :status, :attempts, :next_attempt_at, :last_error, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEvent(evt)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces the delivery bookkeeping on an event.
func (s *Store) Update(ctx context.Context, evt webhookbus.Event) error {
	const q = `
	UPDATE
		webhook_events
	SET
		status = :status,
		attempts = :attempts,
		next_attempt_at = :next_attempt_at,
		last_error = :last_error,
		updated_at = :updated_at
	WHERE
		event_id = :event_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEvent(evt)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryDue retrieves pending events whose next attempt time has passed,
// oldest first.
func (s *Store) QueryDue(ctx context.Context, now time.Time, limit int) ([]webhookbus.Event, error) {
	data := map[string]any{
		"now":   now.UTC(),
		"limit": limit,
	}

	const q = `
	SELECT
		event_id, tenant_id, kind, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at
	FROM
		webhook_events
	WHERE
		status = 'pending' AND next_attempt_at <= :now
	ORDER BY
		created_at ASC
	FETCH NEXT :limit ROWS ONLY`

	var dbEvts []event
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbEvts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusEvents(dbEvts), nil
}

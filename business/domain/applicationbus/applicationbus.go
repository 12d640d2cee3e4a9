// Package applicationbus provides business access to job application data.
package applicationbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/appstatus"
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("duplicate application")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, app Application) error
	Update(ctx context.Context, app Application) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Application, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, applicationID uuid.UUID) (Application, error)
	ExistsByEmail(ctx context.Context, jobID uuid.UUID, tenantID uuid.UUID, email string) (bool, error)
}

// Core manages the set of APIs for application access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs an application core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new core value that will use the specified
// transaction in any store related calls.
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

// Create records an external application. The existence pre-check gives the
// common duplicate the friendly path, but two concurrent submissions can both
// pass it, so correctness rests on the unique index over
// (job_id, tenant_id, lower(email)) which the store reports as ErrDuplicate.
func (c *Core) Create(ctx context.Context, na NewApplication) (Application, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.create")
	defer span.End()

	exists, err := c.storer.ExistsByEmail(ctx, na.JobID, na.TenantID, na.CandidateData.Email)
	if err != nil {
		return Application{}, fmt.Errorf("exists by email: %w", err)
	}
	if exists {
		return Application{}, ErrDuplicate
	}

	now := time.Now()

	data := na.CandidateData
	data.SubmittedAt = now

	app := Application{
		ID:             uuid.New(),
		TenantID:       na.TenantID,
		JobID:          na.JobID,
		Status:         appstatus.Pending,
		CoverLetter:    na.CoverLetter,
		ExpectedSalary: na.ExpectedSalary,
		AvailableFrom:  na.AvailableFrom,
		CandidateData:  data,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.storer.Create(ctx, app); err != nil {
		return Application{}, fmt.Errorf("create: %w", err)
	}

	return app, nil
}

// UpdateStatus moves the application to the specified status.
func (c *Core) UpdateStatus(ctx context.Context, app Application, status appstatus.Status) (Application, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.updatestatus")
	defer span.End()

	app.Status = status
	app.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, app); err != nil {
		return Application{}, fmt.Errorf("update: %w", err)
	}

	return app, nil
}

// UpdateNotes replaces the reviewer notes on the application.
func (c *Core) UpdateNotes(ctx context.Context, app Application, notes string) (Application, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.updatenotes")
	defer span.End()

	app.Notes = notes
	app.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, app); err != nil {
		return Application{}, fmt.Errorf("update: %w", err)
	}

	return app, nil
}

// Query retrieves a list of existing applications.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Application, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.query")
	defer span.End()

	apps, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return apps, nil
}

// Count returns the total number of applications matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the application by the specified ID.
func (c *Core) QueryByID(ctx context.Context, applicationID uuid.UUID) (Application, error) {
	ctx, span := otel.AddSpan(ctx, "business.applicationbus.querybyid")
	defer span.End()

	app, err := c.storer.QueryByID(ctx, applicationID)
	if err != nil {
		return Application{}, fmt.Errorf("query: applicationID[%s]: %w", applicationID, err)
	}

	return app, nil
}

// Package jobbus provides business access to job posting data, including the
// upsert path used by external job sources.
package jobbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/slug"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound        = errors.New("job not found")
	ErrHasApplications = errors.New("job has applications")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, job Job) error
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, job Job) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Job, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, jobID uuid.UUID) (Job, error)
	QueryPublishedByID(ctx context.Context, tenantID uuid.UUID, jobID uuid.UUID) (Job, error)
	Upsert(ctx context.Context, job Job) (Job, error)
	DeleteExternal(ctx context.Context, tenantID uuid.UUID, source string, externalID string) error
	CountApplications(ctx context.Context, jobID uuid.UUID) (int, error)
}

// Core manages the set of APIs for job access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a job core API for use.
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

// Create adds a new job to the system. The tenant and employer always come
// from the caller's ambient context, never from client input.
func (c *Core) Create(ctx context.Context, nj NewJob) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.create")
	defer span.End()

	now := time.Now()

	contact := nj.ContactEmail
	if contact.Address == "" {
		contact = nj.EmployerEmail
	}

	job := Job{
		ID:             uuid.New(),
		TenantID:       nj.TenantID,
		EmployerID:     nj.EmployerID,
		CategoryID:     nj.CategoryID,
		Title:          nj.Title,
		Slug:           slug.MakeUnique(nj.Title),
		Summary:        nj.Summary,
		Description:    nj.Description,
		Requirements:   nj.Requirements,
		Location:       nj.Location,
		Latitude:       nj.Latitude,
		Longitude:      nj.Longitude,
		Type:           nj.Type,
		SalaryMin:      nj.SalaryMin,
		SalaryMax:      nj.SalaryMax,
		SalaryCurrency: nj.SalaryCurrency,
		SalaryPeriod:   nj.SalaryPeriod,
		ShowSalary:     nj.ShowSalary,
		Status:         nj.Status,
		Featured:       nj.Featured,
		Remote:         nj.Remote,
		ContactEmail:   contact,
		ExpiresAt:      nj.ExpiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if !job.ShowSalary {
		clearSalary(&job)
	}

	if job.Status.Equal(jobstatus.Published) {
		job.PublishedAt = &now
	}

	if err := c.storer.Create(ctx, job); err != nil {
		return Job{}, fmt.Errorf("create: %w", err)
	}

	return job, nil
}

// Update modifies information about a job. The slug is regenerated only when
// the title changes.
func (c *Core) Update(ctx context.Context, job Job, uj UpdateJob) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.update")
	defer span.End()

	if uj.Title != nil && *uj.Title != job.Title {
		job.Title = *uj.Title
		job.Slug = slug.MakeUnique(*uj.Title)
	}

	if uj.CategoryID != nil {
		job.CategoryID = uj.CategoryID
	}

	if uj.Summary != nil {
		job.Summary = *uj.Summary
	}

	if uj.Description != nil {
		job.Description = *uj.Description
	}

	if uj.Requirements != nil {
		job.Requirements = *uj.Requirements
	}

	if uj.Location != nil {
		job.Location = *uj.Location
	}

	if uj.Latitude != nil {
		job.Latitude = uj.Latitude
	}

	if uj.Longitude != nil {
		job.Longitude = uj.Longitude
	}

	if uj.Type != nil {
		job.Type = *uj.Type
	}

	if uj.SalaryMin != nil {
		job.SalaryMin = uj.SalaryMin
	}

	if uj.SalaryMax != nil {
		job.SalaryMax = uj.SalaryMax
	}

	if uj.SalaryCurrency != nil {
		job.SalaryCurrency = *uj.SalaryCurrency
	}

	if uj.SalaryPeriod != nil {
		job.SalaryPeriod = *uj.SalaryPeriod
	}

	if uj.ShowSalary != nil {
		job.ShowSalary = *uj.ShowSalary
	}

	if uj.Status != nil {
		c.applyStatus(&job, *uj.Status)
	}

	if uj.Featured != nil {
		job.Featured = *uj.Featured
	}

	if uj.Remote != nil {
		job.Remote = *uj.Remote
	}

	if uj.ContactEmail != nil {
		job.ContactEmail = *uj.ContactEmail
	}

	if uj.ExpiresAt != nil {
		job.ExpiresAt = uj.ExpiresAt
	}

	if !job.ShowSalary {
		clearSalary(&job)
	}

	job.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, job); err != nil {
		return Job{}, fmt.Errorf("update: %w", err)
	}

	return job, nil
}

// UpdateStatus moves the job to the specified lifecycle status.
func (c *Core) UpdateStatus(ctx context.Context, job Job, status jobstatus.Status) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.updatestatus")
	defer span.End()

	c.applyStatus(&job, status)
	job.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, job); err != nil {
		return Job{}, fmt.Errorf("update: %w", err)
	}

	return job, nil
}

// Delete removes the specified job. Deletion is blocked while the job has
// one or more applications.
func (c *Core) Delete(ctx context.Context, job Job) error {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.delete")
	defer span.End()

	count, err := c.storer.CountApplications(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("count applications: %w", err)
	}

	if count > 0 {
		return ErrHasApplications
	}

	if err := c.storer.Delete(ctx, job); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Duplicate clones the job into a fresh draft. The external sync key is not
// carried over, a copy is a native job.
func (c *Core) Duplicate(ctx context.Context, job Job) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.duplicate")
	defer span.End()

	now := time.Now()

	cp := job
	cp.ID = uuid.New()
	cp.Title = job.Title + " (copy)"
	cp.Slug = slug.MakeUnique(cp.Title)
	cp.Status = jobstatus.Draft
	cp.PublishedAt = nil
	cp.ExternalID = ""
	cp.ExternalSource = ""
	cp.ExternalPayload = nil
	cp.SyncedAt = nil
	cp.CreatedAt = now
	cp.UpdatedAt = now

	if err := c.storer.Create(ctx, cp); err != nil {
		return Job{}, fmt.Errorf("create: %w", err)
	}

	return cp, nil
}

// Upsert creates or refreshes the job keyed by (tenant, source, external id).
// Missing optional fields fall back to documented defaults and the raw
// payload is retained for audit.
func (c *Core) Upsert(ctx context.Context, up UpsertJob) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.upsert")
	defer span.End()

	now := time.Now()

	jobType := up.Type
	if jobType.String() == "" {
		jobType = jobtype.FullTime
	}

	currency := up.SalaryCurrency
	if currency == "" {
		currency = "XOF"
	}

	status := up.Status
	if status.String() == "" {
		status = jobstatus.Published
	}

	job := Job{
		ID:              uuid.New(),
		TenantID:        up.TenantID,
		Title:           up.Title,
		Slug:            slug.MakeUnique(up.Title),
		Summary:         up.Summary,
		Description:     up.Description,
		Requirements:    up.Requirements,
		Location:        up.Location,
		Type:            jobType,
		SalaryMin:       up.SalaryMin,
		SalaryMax:       up.SalaryMax,
		SalaryCurrency:  currency,
		ShowSalary:      up.SalaryMin != nil || up.SalaryMax != nil,
		Status:          status,
		Remote:          up.Remote,
		ExpiresAt:       up.ExpiresAt,
		ExternalID:      up.ExternalID,
		ExternalSource:  up.ExternalSource,
		ExternalPayload: up.Payload,
		SyncedAt:        &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if job.Status.Equal(jobstatus.Published) {
		job.PublishedAt = &now
	}

	stored, err := c.storer.Upsert(ctx, job)
	if err != nil {
		return Job{}, fmt.Errorf("upsert: %w", err)
	}

	return stored, nil
}

// DeleteExternal hard deletes the job matching the external key triple. A
// missing key is a no-op success.
func (c *Core) DeleteExternal(ctx context.Context, tenantID uuid.UUID, source string, externalID string) error {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.deleteexternal")
	defer span.End()

	if err := c.storer.DeleteExternal(ctx, tenantID, source, externalID); err != nil {
		return fmt.Errorf("delete external: %w", err)
	}

	return nil
}

// Query retrieves a list of existing jobs.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.query")
	defer span.End()

	jobs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return jobs, nil
}

// Count returns the total number of jobs matching the filter.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the job by the specified ID.
func (c *Core) QueryByID(ctx context.Context, jobID uuid.UUID) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.querybyid")
	defer span.End()

	job, err := c.storer.QueryByID(ctx, jobID)
	if err != nil {
		return Job{}, fmt.Errorf("query: jobID[%s]: %w", jobID, err)
	}

	return job, nil
}

// QueryPublishedByID finds the job by ID within the tenant, but only when it
// is currently visible to the public. Absent, unpublished and cross-tenant
// lookups are indistinguishable, they all come back ErrNotFound.
func (c *Core) QueryPublishedByID(ctx context.Context, tenantID uuid.UUID, jobID uuid.UUID) (Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.querypublishedbyid")
	defer span.End()

	job, err := c.storer.QueryPublishedByID(ctx, tenantID, jobID)
	if err != nil {
		return Job{}, fmt.Errorf("query: jobID[%s]: %w", jobID, err)
	}

	return job, nil
}

// CountApplications returns the number of applications submitted for the job.
func (c *Core) CountApplications(ctx context.Context, jobID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.countapplications")
	defer span.End()

	return c.storer.CountApplications(ctx, jobID)
}

func (c *Core) applyStatus(job *Job, status jobstatus.Status) {
	job.Status = status

	if status.Equal(jobstatus.Published) && job.PublishedAt == nil {
		now := time.Now()
		job.PublishedAt = &now
	}
}

func clearSalary(job *Job) {
	job.SalaryMin = nil
	job.SalaryMax = nil
	job.SalaryCurrency = ""
	job.SalaryPeriod = ""
}

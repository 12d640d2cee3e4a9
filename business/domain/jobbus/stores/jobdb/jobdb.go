// Package jobdb contains job related CRUD functionality.
package jobdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

const jobColumns = `
		job_id, tenant_id, employer_id, category_id, title, slug, summary,
		description, requirements, location, latitude, longitude, job_type,
		salary_min, salary_max, salary_currency, salary_period, show_salary,
		status, featured, remote, contact_email, published_at, expires_at,
		external_id, external_source, external_payload, synced_at,
		created_at, updated_at`

// Store manages the set of APIs for job database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (jobbus.Storer, error) {
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

// Create inserts a new job into the database.
func (s *Store) Create(ctx context.Context, job jobbus.Job) error {
	const q = `
	INSERT INTO jobs
		(job_id, tenant_id, employer_id, category_id, title, slug, summary,
		description, requirements, location, latitude, longitude, job_type,
		salary_min, salary_max, salary_currency, salary_period, show_salary,
		status, featured, remote, contact_email, published_at, expires_at,
		external_id, external_source, external_payload, synced_at,
		created_at, updated_at)
	VALUES
		(:job_id, :tenant_id, :employer_id, :category_id, :title, :slug, :summary,
		:description, :requirements, :location, :latitude, :longitude, :job_type,
		:salary_min, :salary_max, :salary_currency, :salary_period, :show_salary,
		:status, :featured, :remote, :contact_email, :published_at, :expires_at,
		:external_id, :external_source, :external_payload, :synced_at,
		:created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBJob(job)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a job document in the database.
func (s *Store) Update(ctx context.Context, job jobbus.Job) error {
	const q = `
	UPDATE
		jobs
	SET
		category_id = :category_id,
		title = :title,
		slug = :slug,
		summary = :summary,
		description = :description,
		requirements = :requirements,
		location = :location,
		latitude = :latitude,
		longitude = :longitude,
		job_type = :job_type,
		salary_min = :salary_min,
		salary_max = :salary_max,
		salary_currency = :salary_currency,
		salary_period = :salary_period,
		show_salary = :show_salary,
		status = :status,
		featured = :featured,
		remote = :remote,
		contact_email = :contact_email,
		published_at = :published_at,
		expires_at = :expires_at,
		updated_at = :updated_at
	WHERE
		job_id = :job_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBJob(job)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a job from the database.
func (s *Store) Delete(ctx context.Context, job jobbus.Job) error {
	const q = `
	DELETE FROM
		jobs
	WHERE
		job_id = :job_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBJob(job)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing jobs from the database.
func (s *Store) Query(ctx context.Context, filter jobbus.QueryFilter, orderBy order.By, page page.Page) ([]jobbus.Job, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	q := "SELECT" + jobColumns + " FROM jobs"

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbJobs []job
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbJobs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusJobs(dbJobs)
}

// Count returns the total number of jobs in the DB.
func (s *Store) Count(ctx context.Context, filter jobbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1) AS count
	FROM
		jobs`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified job from the database.
func (s *Store) QueryByID(ctx context.Context, jobID uuid.UUID) (jobbus.Job, error) {
	data := struct {
		ID string `db:"job_id"`
	}{
		ID: jobID.String(),
	}

	q := "SELECT" + jobColumns + " FROM jobs WHERE job_id = :job_id"

	var dbJob job
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbJob); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return jobbus.Job{}, fmt.Errorf("db: %w", jobbus.ErrNotFound)
		}
		return jobbus.Job{}, fmt.Errorf("db: %w", err)
	}

	return toBusJob(dbJob)
}

// QueryPublishedByID gets the specified job only when it is inside the public
// visibility window for the given tenant. Absent, unpublished and wrong
// tenant rows all surface as not found.
func (s *Store) QueryPublishedByID(ctx context.Context, tenantID uuid.UUID, jobID uuid.UUID) (jobbus.Job, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		ID       string `db:"job_id"`
	}{
		TenantID: tenantID.String(),
		ID:       jobID.String(),
	}

	q := "SELECT" + jobColumns + ` FROM jobs
	WHERE
		job_id = :job_id AND
		tenant_id = :tenant_id AND
		status = 'published' AND
		(expires_at IS NULL OR expires_at > now()) AND
		(published_at IS NULL OR published_at <= now())`

	var dbJob job
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbJob); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return jobbus.Job{}, fmt.Errorf("db: %w", jobbus.ErrNotFound)
		}
		return jobbus.Job{}, fmt.Errorf("db: %w", err)
	}

	return toBusJob(dbJob)
}

// Upsert inserts the job or, when the (tenant_id, external_source,
// external_id) key already exists, refreshes the existing row in place. The
// stored row is returned so callers see the surviving identifier.
func (s *Store) Upsert(ctx context.Context, busJob jobbus.Job) (jobbus.Job, error) {
	q := `
	INSERT INTO jobs
		(job_id, tenant_id, employer_id, category_id, title, slug, summary,
		description, requirements, location, latitude, longitude, job_type,
		salary_min, salary_max, salary_currency, salary_period, show_salary,
		status, featured, remote, contact_email, published_at, expires_at,
		external_id, external_source, external_payload, synced_at,
		created_at, updated_at)
	VALUES
		(:job_id, :tenant_id, :employer_id, :category_id, :title, :slug, :summary,
		:description, :requirements, :location, :latitude, :longitude, :job_type,
		:salary_min, :salary_max, :salary_currency, :salary_period, :show_salary,
		:status, :featured, :remote, :contact_email, :published_at, :expires_at,
		:external_id, :external_source, :external_payload, :synced_at,
		:created_at, :updated_at)
	ON CONFLICT (tenant_id, external_source, external_id) DO UPDATE SET
		title = EXCLUDED.title,
		slug = EXCLUDED.slug,
		summary = EXCLUDED.summary,
		description = EXCLUDED.description,
		requirements = EXCLUDED.requirements,
		location = EXCLUDED.location,
		job_type = EXCLUDED.job_type,
		salary_min = EXCLUDED.salary_min,
		salary_max = EXCLUDED.salary_max,
		salary_currency = EXCLUDED.salary_currency,
		show_salary = EXCLUDED.show_salary,
		status = EXCLUDED.status,
		remote = EXCLUDED.remote,
		expires_at = EXCLUDED.expires_at,
		external_payload = EXCLUDED.external_payload,
		synced_at = EXCLUDED.synced_at,
		updated_at = EXCLUDED.updated_at
	RETURNING` + jobColumns

	var dbJob job
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBJob(busJob), &dbJob); err != nil {
		return jobbus.Job{}, fmt.Errorf("namedquerystruct: %w", err)
	}

	return toBusJob(dbJob)
}

// DeleteExternal removes the job matching the external key triple. Deleting
// a key that never existed is not an error.
func (s *Store) DeleteExternal(ctx context.Context, tenantID uuid.UUID, source string, externalID string) error {
	data := struct {
		TenantID   string `db:"tenant_id"`
		Source     string `db:"external_source"`
		ExternalID string `db:"external_id"`
	}{
		TenantID:   tenantID.String(),
		Source:     source,
		ExternalID: externalID,
	}

	const q = `
	DELETE FROM
		jobs
	WHERE
		tenant_id = :tenant_id AND
		external_source = :external_source AND
		external_id = :external_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// CountApplications returns the number of applications submitted for the job.
func (s *Store) CountApplications(ctx context.Context, jobID uuid.UUID) (int, error) {
	data := struct {
		ID string `db:"job_id"`
	}{
		ID: jobID.String(),
	}

	const q = `
	SELECT
		count(1) AS count
	FROM
		applications
	WHERE
		job_id = :job_id`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

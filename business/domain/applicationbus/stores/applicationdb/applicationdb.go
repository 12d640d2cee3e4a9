// Package applicationdb contains application related CRUD functionality.
package applicationdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages the set of APIs for application database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (applicationbus.Storer, error) {
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

// Create inserts a new application into the database. A unique violation on
// the (job_id, tenant_id, lower(email)) index means the candidate already
// applied, which closes the race two concurrent submissions can open.
func (s *Store) Create(ctx context.Context, app applicationbus.Application) error {
	dbApp, err := toDBApplication(app)
	if err != nil {
		return err
	}

	const q = `
	INSERT INTO applications
		(application_id, tenant_id, job_id, candidate_id, status, cover_letter,
		expected_salary, available_from, notes, candidate_data, created_at, updated_at)
	VALUES
		(:application_id, :tenant_id, :job_id, :candidate_id, :status, :cover_letter,
		:expected_salary, :available_from, :notes, :candidate_data, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbApp); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", applicationbus.ErrDuplicate)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an application document in the database.
func (s *Store) Update(ctx context.Context, app applicationbus.Application) error {
	dbApp, err := toDBApplication(app)
	if err != nil {
		return err
	}

	const q = `
	UPDATE
		applications
	SET
		status = :status,
		notes = :notes,
		updated_at = :updated_at
	WHERE
		application_id = :application_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbApp); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing applications from the database.
func (s *Store) Query(ctx context.Context, filter applicationbus.QueryFilter, orderBy order.By, page page.Page) ([]applicationbus.Application, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		application_id, tenant_id, job_id, candidate_id, status, cover_letter,
		expected_salary, available_from, notes, candidate_data, created_at, updated_at
	FROM
		applications`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbApps []application
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbApps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusApplications(dbApps)
}

// Count returns the total number of applications in the DB.
func (s *Store) Count(ctx context.Context, filter applicationbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1) AS count
	FROM
		applications`

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

// QueryByID gets the specified application from the database.
func (s *Store) QueryByID(ctx context.Context, applicationID uuid.UUID) (applicationbus.Application, error) {
	data := struct {
		ID string `db:"application_id"`
	}{
		ID: applicationID.String(),
	}

	const q = `
	SELECT
		application_id, tenant_id, job_id, candidate_id, status, cover_letter,
		expected_salary, available_from, notes, candidate_data, created_at, updated_at
	FROM
		applications
	WHERE
		application_id = :application_id`

	var dbApp application
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbApp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return applicationbus.Application{}, fmt.Errorf("db: %w", applicationbus.ErrNotFound)
		}
		return applicationbus.Application{}, fmt.Errorf("db: %w", err)
	}

	return toBusApplication(dbApp)
}

// ExistsByEmail reports whether the candidate email already applied to the
// job within the tenant. Matching mirrors the unique index, case insensitive
// on the stored candidate email.
func (s *Store) ExistsByEmail(ctx context.Context, jobID uuid.UUID, tenantID uuid.UUID, email string) (bool, error) {
	data := struct {
		JobID    string `db:"job_id"`
		TenantID string `db:"tenant_id"`
		Email    string `db:"email"`
	}{
		JobID:    jobID.String(),
		TenantID: tenantID.String(),
		Email:    email,
	}

	const q = `
	SELECT
		count(1) AS count
	FROM
		applications
	WHERE
		job_id = :job_id AND
		tenant_id = :tenant_id AND
		lower(candidate_data->>'email') = lower(:email)`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return false, fmt.Errorf("db: %w", err)
	}

	return count.Count > 0, nil
}

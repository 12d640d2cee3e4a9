// Package categorydb contains category related CRUD functionality.
package categorydb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages the set of APIs for category database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (categorybus.Storer, error) {
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

// Create inserts a new category into the database.
func (s *Store) Create(ctx context.Context, cat categorybus.Category) error {
	const q = `
	INSERT INTO job_categories
		(category_id, tenant_id, name, slug, created_at, updated_at)
	VALUES
		(:category_id, :tenant_id, :name, :slug, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCategory(cat)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", categorybus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a category document in the database.
func (s *Store) Update(ctx context.Context, cat categorybus.Category) error {
	const q = `
	UPDATE
		job_categories
	SET
		name = :name,
		slug = :slug,
		updated_at = :updated_at
	WHERE
		category_id = :category_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCategory(cat)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", categorybus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a category from the database.
func (s *Store) Delete(ctx context.Context, cat categorybus.Category) error {
	const q = `
	DELETE FROM
		job_categories
	WHERE
		category_id = :category_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCategory(cat)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing categories from the database.
func (s *Store) Query(ctx context.Context, filter categorybus.QueryFilter, orderBy order.By, page page.Page) ([]categorybus.Category, error) {
	data := map[string]any{
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		category_id, tenant_id, name, slug, created_at, updated_at
	FROM
		job_categories`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbCats []category
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbCats); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCategories(dbCats)
}

// Count returns the total number of categories in the DB.
func (s *Store) Count(ctx context.Context, filter categorybus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1) AS count
	FROM
		job_categories`

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

// QueryByID gets the specified category from the database.
func (s *Store) QueryByID(ctx context.Context, categoryID uuid.UUID) (categorybus.Category, error) {
	data := struct {
		ID string `db:"category_id"`
	}{
		ID: categoryID.String(),
	}

	const q = `
	SELECT
		category_id, tenant_id, name, slug, created_at, updated_at
	FROM
		job_categories
	WHERE
		category_id = :category_id`

	var dbCat category
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCat); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return categorybus.Category{}, fmt.Errorf("db: %w", categorybus.ErrNotFound)
		}
		return categorybus.Category{}, fmt.Errorf("db: %w", err)
	}

	return toBusCategory(dbCat)
}

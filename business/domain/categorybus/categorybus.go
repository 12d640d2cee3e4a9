// Package categorybus provides business access to job category data.
package categorybus

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
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("category not found")
	ErrUniqueName = errors.New("category name is not unique")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cat Category) error
	Update(ctx context.Context, cat Category) error
	Delete(ctx context.Context, cat Category) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Category, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, categoryID uuid.UUID) (Category, error)
}

// Core manages the set of APIs for category access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a category core API for use.
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

// Create adds a new category to the system.
func (c *Core) Create(ctx context.Context, nc NewCategory) (Category, error) {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.create")
	defer span.End()

	now := time.Now()

	cat := Category{
		ID:        uuid.New(),
		TenantID:  nc.TenantID,
		Name:      nc.Name,
		Slug:      slug.Make(nc.Name.String()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, cat); err != nil {
		return Category{}, fmt.Errorf("create: %w", err)
	}

	return cat, nil
}

// Update modifies information about a category. The slug follows the name.
func (c *Core) Update(ctx context.Context, cat Category, uc UpdateCategory) (Category, error) {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.update")
	defer span.End()

	if uc.Name != nil {
		cat.Name = *uc.Name
		cat.Slug = slug.Make(uc.Name.String())
	}

	cat.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cat); err != nil {
		return Category{}, fmt.Errorf("update: %w", err)
	}

	return cat, nil
}

// Delete removes the specified category.
func (c *Core) Delete(ctx context.Context, cat Category) error {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cat); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing categories.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Category, error) {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.query")
	defer span.End()

	cats, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cats, nil
}

// Count returns the total number of categories.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the category by the specified ID.
func (c *Core) QueryByID(ctx context.Context, categoryID uuid.UUID) (Category, error) {
	ctx, span := otel.AddSpan(ctx, "business.categorybus.querybyid")
	defer span.End()

	cat, err := c.storer.QueryByID(ctx, categoryID)
	if err != nil {
		return Category{}, fmt.Errorf("query: categoryID[%s]: %w", categoryID, err)
	}

	return cat, nil
}

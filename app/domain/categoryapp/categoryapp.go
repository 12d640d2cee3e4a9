// Package categoryapp maintains the web based api for job category access.
package categoryapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/app/sdk/query"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

type app struct {
	categoryBus *categorybus.Core
}

func newApp(categoryBus *categorybus.Core) *app {
	return &app{
		categoryBus: categoryBus,
	}
}

// create adds a new category to the resolved tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewCategory
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	nc, err := toBusNewCategory(req, t.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cat, err := a.categoryBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, categorybus.ErrUniqueName) {
			return errs.New(errs.Aborted, categorybus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: category[%s]: %s", req.Name, err)
	}

	return toAppCategory(cat)
}

// update modifies an existing category.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateCategory
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cat, errEnc := a.lookup(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	uc, err := toBusUpdateCategory(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updCat, err := a.categoryBus.Update(ctx, cat, uc)
	if err != nil {
		if errors.Is(err, categorybus.ErrUniqueName) {
			return errs.New(errs.Aborted, categorybus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: categoryID[%s]: %s", cat.ID, err)
	}

	return toAppCategory(updCat)
}

// delete removes a category. Jobs keep working, their category link is
// cleared by the database.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	cat, errEnc := a.lookup(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	if err := a.categoryBus.Delete(ctx, cat); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: categoryID[%s]: %s", cat.ID, err)
	}

	return nil
}

// query returns the categories of the resolved tenant with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	t, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}
	tenantID := t.ID
	filter.TenantID = &tenantID

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, categorybus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	cats, err := a.categoryBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.categoryBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppCategories(cats), total, pg)
}

// queryByID returns a category by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	cat, errEnc := a.lookup(ctx, r)
	if errEnc != nil {
		return errEnc
	}

	return toAppCategory(cat)
}

// lookup resolves the category_id path parameter within the resolved tenant.
// A category belonging to another tenant is reported as not found.
func (a *app) lookup(ctx context.Context, r *http.Request) (categorybus.Category, web.Encoder) {
	id := web.Param(r, "category_id")

	categoryID, err := uuid.Parse(id)
	if err != nil {
		return categorybus.Category{}, errs.NewFieldErrors("category_id", err)
	}

	cat, err := a.categoryBus.QueryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, categorybus.ErrNotFound) {
			return categorybus.Category{}, errs.New(errs.NotFound, categorybus.ErrNotFound)
		}
		return categorybus.Category{}, errs.Errorf(errs.Internal, "querybyid: categoryID[%s]: %s", categoryID, err)
	}

	t, err := mid.GetTenant(ctx)
	if err != nil {
		return categorybus.Category{}, errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	if cat.TenantID != t.ID {
		return categorybus.Category{}, errs.New(errs.NotFound, categorybus.ErrNotFound)
	}

	return cat, nil
}

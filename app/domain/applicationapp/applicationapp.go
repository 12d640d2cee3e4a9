// Package applicationapp maintains the web based api for reviewing candidate
// applications.
package applicationapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/app/sdk/query"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/role"
)

type app struct {
	applicationBus *applicationbus.Core
	jobBus         *jobbus.Core
	permBus        *permbus.Core
}

func newApp(applicationBus *applicationbus.Core, jobBus *jobbus.Core, permBus *permbus.Core) *app {
	return &app{
		applicationBus: applicationBus,
		jobBus:         jobBus,
		permBus:        permBus,
	}
}

// query returns the tenant's applications with paging. Employers only see
// applications to their own jobs, enforced by scoping the query to a job they
// own when job_id is supplied and refusing the unscoped listing otherwise.
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

	actor, err := mid.GetActor(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if !actor.Role.Equal(role.SuperAdmin) {
		tenantID := actor.TenantID
		filter.TenantID = &tenantID
	}

	if actor.Role.Equal(role.Employer) {
		if filter.JobID == nil {
			return errs.Errorf(errs.InvalidArgument, "job_id is required")
		}

		if encErr := a.checkJobAccess(ctx, actor, *filter.JobID, actions.List); encErr != nil {
			return encErr
		}
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, applicationbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	apps, err := a.applicationBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.applicationBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppApplications(apps), total, pg)
}

// queryByID returns an application by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	appl, encErr := a.lookup(ctx, r, actions.Get)
	if encErr != nil {
		return encErr
	}

	return toAppApplication(appl)
}

// updateStatus moves the application through the review pipeline.
func (a *app) updateStatus(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateApplicationStatus
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	appl, encErr := a.lookup(ctx, r, actions.ChangeStatus)
	if encErr != nil {
		return encErr
	}

	status, err := toBusStatus(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updAppl, err := a.applicationBus.UpdateStatus(ctx, appl, status)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "updatestatus: applicationID[%s]: %s", appl.ID, err)
	}

	return toAppApplication(updAppl)
}

// updateNotes replaces the reviewer notes on the application.
func (a *app) updateNotes(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateApplicationNotes
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	appl, encErr := a.lookup(ctx, r, actions.Update)
	if encErr != nil {
		return encErr
	}

	updAppl, err := a.applicationBus.UpdateNotes(ctx, appl, req.Notes)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "updatenotes: applicationID[%s]: %s", appl.ID, err)
	}

	return toAppApplication(updAppl)
}

// lookup resolves the application_id path parameter and checks the caller can
// act on the owning job.
func (a *app) lookup(ctx context.Context, r *http.Request, act actions.Action) (applicationbus.Application, web.Encoder) {
	id := web.Param(r, "application_id")

	applicationID, err := uuid.Parse(id)
	if err != nil {
		return applicationbus.Application{}, errs.NewFieldErrors("application_id", err)
	}

	appl, err := a.applicationBus.QueryByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, applicationbus.ErrNotFound) {
			return applicationbus.Application{}, errs.New(errs.NotFound, applicationbus.ErrNotFound)
		}
		return applicationbus.Application{}, errs.Errorf(errs.Internal, "querybyid: applicationID[%s]: %s", applicationID, err)
	}

	actor, err := mid.GetActor(ctx)
	if err != nil {
		return applicationbus.Application{}, errs.New(errs.Unauthenticated, err)
	}

	if encErr := a.checkJobAccess(ctx, actor, appl.JobID, act); encErr != nil {
		return applicationbus.Application{}, encErr
	}

	return appl, nil
}

func (a *app) checkJobAccess(ctx context.Context, actor permbus.Actor, jobID uuid.UUID, act actions.Action) web.Encoder {
	job, err := a.jobBus.QueryByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobbus.ErrNotFound) {
			return errs.New(errs.NotFound, jobbus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "querybyid: jobID[%s]: %s", jobID, err)
	}

	target := permbus.JobTarget{
		TenantID:   job.TenantID,
		EmployerID: job.EmployerID,
	}

	if err := a.permBus.CheckJob(ctx, actor, act, target); err != nil {
		return errs.New(errs.PermissionDenied, err)
	}

	return nil
}

// Package jobapp maintains the web based api for job posting management.
package jobapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/app/sdk/query"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/role"
)

type app struct {
	jobBus  *jobbus.Core
	userBus *userbus.Core
}

func newApp(jobBus *jobbus.Core, userBus *userbus.Core) *app {
	return &app{
		jobBus:  jobBus,
		userBus: userBus,
	}
}

// create adds a new job to the resolved tenant, owned by the calling
// employer. Tenant and employer always come from the request context.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewJob
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := mid.GetTenant(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "userID missing in context: %s", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", userID, err)
	}

	nj, err := toBusNewJob(req, t.ID, usr)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	job, err := a.jobBus.Create(ctx, nj)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create: job[%s]: %s", req.Title, err)
	}

	return toAppJob(job)
}

// update modifies the job loaded by the authorize middleware.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateJob
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	job, err := mid.GetJob(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "job missing in context: %s", err)
	}

	uj, err := toBusUpdateJob(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updJob, err := a.jobBus.Update(ctx, job, uj)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: jobID[%s]: %s", job.ID, err)
	}

	return toAppJob(updJob)
}

// updateStatus moves the job to a new lifecycle status.
func (a *app) updateStatus(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateJobStatus
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	job, err := mid.GetJob(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "job missing in context: %s", err)
	}

	status, err := toBusStatus(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updJob, err := a.jobBus.UpdateStatus(ctx, job, status)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "updatestatus: jobID[%s]: %s", job.ID, err)
	}

	return toAppJob(updJob)
}

// delete removes the job loaded by the authorize middleware. Jobs holding
// applications cannot be removed.
func (a *app) delete(ctx context.Context, _ *http.Request) web.Encoder {
	job, err := mid.GetJob(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "job missing in context: %s", err)
	}

	if err := a.jobBus.Delete(ctx, job); err != nil {
		if errors.Is(err, jobbus.ErrHasApplications) {
			return errs.New(errs.Aborted, jobbus.ErrHasApplications)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete: jobID[%s]: %s", job.ID, err)
	}

	return nil
}

// duplicate clones the job into a fresh draft owned by the same employer.
func (a *app) duplicate(ctx context.Context, _ *http.Request) web.Encoder {
	job, err := mid.GetJob(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "job missing in context: %s", err)
	}

	cp, err := a.jobBus.Duplicate(ctx, job)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "duplicate: jobID[%s]: %s", job.ID, err)
	}

	return toAppJob(cp)
}

// query returns the tenant's jobs with paging. Employers only see their own
// postings, admins see every posting in the tenant.
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
		employerID := actor.ID
		filter.EmployerID = &employerID
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, jobbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	jobs, err := a.jobBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.jobBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppJobs(jobs), total, pg)
}

// queryByID returns the job loaded by the authorize middleware.
func (a *app) queryByID(ctx context.Context, _ *http.Request) web.Encoder {
	job, err := mid.GetJob(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "job missing in context: %s", err)
	}

	return toAppJob(job)
}

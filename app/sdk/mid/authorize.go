package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// ErrInvalidID is returned when a route id parameter is malformed.
var ErrInvalidID = errors.New("ID is not in its proper form")

// Authorize checks the role grant matrix for the resource, mapping the HTTP
// method to the action. Routes with a more specific action use
// AuthorizeAction instead.
func Authorize(perm *permbus.Core, res resource.Resource) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			act, err := mapHTTPMethodToAction(r.Method)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			return authorize(ctx, r, next, perm, res, act)
		}

		return h
	}

	return m
}

// AuthorizeAction checks the role grant matrix for an explicit action.
func AuthorizeAction(perm *permbus.Core, res resource.Resource, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			return authorize(ctx, r, next, perm, res, act)
		}

		return h
	}

	return m
}

func authorize(ctx context.Context, r *http.Request, next web.HandlerFunc, perm *permbus.Core, res resource.Resource, act actions.Action) web.Encoder {
	actor, err := GetActor(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := perm.Allowed(ctx, actor.Role, res, act); err != nil {
		return errs.New(errs.PermissionDenied, err)
	}

	return next(ctx, r)
}

// AuthorizeUser loads the user referenced by the user_id route parameter,
// runs the user record rules for the action, and stores the record in the
// context for the handler.
func AuthorizeUser(perm *permbus.Core, userBus *userbus.Core, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			id := web.Param(r, "user_id")

			userID, err := uuid.Parse(id)
			if err != nil {
				return errs.New(errs.Unauthenticated, ErrInvalidID)
			}

			usr, err := userBus.QueryByID(ctx, userID)
			if err != nil {
				switch {
				case errors.Is(err, userbus.ErrNotFound):
					return errs.New(errs.NotFound, err)
				default:
					return errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", userID, err)
				}
			}

			actor, err := GetActor(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			target := permbus.UserTarget{
				ID:       usr.ID,
				TenantID: usr.TenantID,
			}

			if err := perm.CheckUser(ctx, actor, act, target); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			ctx = setUser(ctx, usr)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeJob loads the job referenced by the job_id route parameter, runs
// the ownership rule, and stores the record in the context for the handler.
func AuthorizeJob(perm *permbus.Core, jobBus *jobbus.Core, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			id := web.Param(r, "job_id")

			jobID, err := uuid.Parse(id)
			if err != nil {
				return errs.New(errs.Unauthenticated, ErrInvalidID)
			}

			job, err := jobBus.QueryByID(ctx, jobID)
			if err != nil {
				switch {
				case errors.Is(err, jobbus.ErrNotFound):
					return errs.New(errs.NotFound, err)
				default:
					return errs.Errorf(errs.Internal, "querybyid: jobID[%s]: %s", jobID, err)
				}
			}

			actor, err := GetActor(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			target := permbus.JobTarget{
				TenantID:   job.TenantID,
				EmployerID: job.EmployerID,
			}

			if err := perm.CheckJob(ctx, actor, act, target); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			ctx = setJob(ctx, job)

			return next(ctx, r)
		}

		return h
	}

	return m
}

func mapHTTPMethodToAction(method string) (actions.Action, error) {
	switch method {
	case http.MethodGet:
		return actions.Get, nil
	case http.MethodPost:
		return actions.Create, nil
	case http.MethodPut, http.MethodPatch:
		return actions.Update, nil
	case http.MethodDelete:
		return actions.Delete, nil
	default:
		return actions.Action{}, fmt.Errorf("action: %s", method)
	}
}

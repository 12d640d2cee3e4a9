package applicationapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/types/appstatus"
)

var orderByFields = map[string]string{
	"application_id": applicationbus.OrderByID,
	"status":         applicationbus.OrderByStatus,
	"created_at":     applicationbus.OrderByCreatedAt,
}

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	JobID   string
	Status  string
	Email   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("application_id"),
		JobID:   values.Get("job_id"),
		Status:  values.Get("status"),
		Email:   values.Get("email"),
	}
}

func parseFilter(qp queryParams) (applicationbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter applicationbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("application_id", err)
		}
	}

	if qp.JobID != "" {
		id, err := uuid.Parse(qp.JobID)
		switch err {
		case nil:
			filter.JobID = &id
		default:
			fieldErrors.Add("job_id", err)
		}
	}

	if qp.Status != "" {
		status, err := appstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.Email != "" {
		filter.Email = &qp.Email
	}

	if fieldErrors != nil {
		return applicationbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}

package jobapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

var orderByFields = map[string]string{
	"job_id":       jobbus.OrderByID,
	"title":        jobbus.OrderByTitle,
	"status":       jobbus.OrderByStatus,
	"published_at": jobbus.OrderByPublishedAt,
	"created_at":   jobbus.OrderByCreatedAt,
}

type queryParams struct {
	Page       string
	Rows       string
	OrderBy    string
	ID         string
	CategoryID string
	Status     string
	Type       string
	Location   string
	Search     string
	Featured   string
	Remote     string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:       values.Get("page"),
		Rows:       values.Get("rows"),
		OrderBy:    values.Get("orderBy"),
		ID:         values.Get("job_id"),
		CategoryID: values.Get("category_id"),
		Status:     values.Get("status"),
		Type:       values.Get("type"),
		Location:   values.Get("location"),
		Search:     values.Get("search"),
		Featured:   values.Get("featured"),
		Remote:     values.Get("remote"),
	}
}

func parseFilter(qp queryParams) (jobbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter jobbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("job_id", err)
		}
	}

	if qp.CategoryID != "" {
		id, err := uuid.Parse(qp.CategoryID)
		switch err {
		case nil:
			filter.CategoryID = &id
		default:
			fieldErrors.Add("category_id", err)
		}
	}

	if qp.Status != "" {
		status, err := jobstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.Type != "" {
		t, err := jobtype.Parse(qp.Type)
		switch err {
		case nil:
			filter.Type = &t
		default:
			fieldErrors.Add("type", err)
		}
	}

	if qp.Location != "" {
		filter.Location = &qp.Location
	}

	if qp.Search != "" {
		filter.Search = &qp.Search
	}

	if qp.Featured != "" {
		featured, err := strconv.ParseBool(qp.Featured)
		switch err {
		case nil:
			filter.Featured = &featured
		default:
			fieldErrors.Add("featured", err)
		}
	}

	if qp.Remote != "" {
		remote, err := strconv.ParseBool(qp.Remote)
		switch err {
		case nil:
			filter.Remote = &remote
		default:
			fieldErrors.Add("remote", err)
		}
	}

	if fieldErrors != nil {
		return jobbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}

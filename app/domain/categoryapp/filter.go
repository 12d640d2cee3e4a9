package categoryapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/types/name"
)

var orderByFields = map[string]string{
	"category_id": categorybus.OrderByID,
	"name":        categorybus.OrderByName,
	"created_at":  categorybus.OrderByCreatedAt,
}

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Name    string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("category_id"),
		Name:    values.Get("name"),
	}
}

func parseFilter(qp queryParams) (categorybus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter categorybus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("category_id", err)
		}
	}

	if qp.Name != "" {
		nme, err := name.Parse(qp.Name)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if fieldErrors != nil {
		return categorybus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}

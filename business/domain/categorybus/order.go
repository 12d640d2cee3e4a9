package categorybus

import "github.com/workforcehq/jobboard/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "category_id"
	OrderByName      = "name"
	OrderByCreatedAt = "created_at"
)

package applicationbus

import "github.com/workforcehq/jobboard/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "application_id"
	OrderByStatus    = "status"
	OrderByCreatedAt = "created_at"
)

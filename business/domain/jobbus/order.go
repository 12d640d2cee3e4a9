package jobbus

import "github.com/workforcehq/jobboard/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// PublicOrderBy is the ordering the public listing uses, featured jobs first
// and most recently published within that.
var PublicOrderBy = order.NewBy(OrderByPublic, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID          = "job_id"
	OrderByTitle       = "title"
	OrderByStatus      = "status"
	OrderByPublishedAt = "published_at"
	OrderByCreatedAt   = "created_at"
	OrderByPublic      = "public"
)

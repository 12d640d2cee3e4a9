package jobdb

import (
	"fmt"

	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
)

var orderByFields = map[string]string{
	jobbus.OrderByID:          "job_id",
	jobbus.OrderByTitle:       "title",
	jobbus.OrderByStatus:      "status",
	jobbus.OrderByPublishedAt: "published_at",
	jobbus.OrderByCreatedAt:   "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	// The public listing sorts on two keys, featured flag first.
	if orderBy.Field == jobbus.OrderByPublic {
		return " ORDER BY featured DESC, published_at DESC", nil
	}

	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}

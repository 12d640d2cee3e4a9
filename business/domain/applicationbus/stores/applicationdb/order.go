package applicationdb

import (
	"fmt"

	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
)

var orderByFields = map[string]string{
	applicationbus.OrderByID:        "application_id",
	applicationbus.OrderByStatus:    "status",
	applicationbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}

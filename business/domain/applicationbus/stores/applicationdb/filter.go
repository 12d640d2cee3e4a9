package applicationdb

import (
	"bytes"
	"strings"

	"github.com/workforcehq/jobboard/business/domain/applicationbus"
)

func applyFilter(filter applicationbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["application_id"] = *filter.ID
		wc = append(wc, "application_id = :application_id")
	}

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.JobID != nil {
		data["job_id"] = *filter.JobID
		wc = append(wc, "job_id = :job_id")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.Email != nil {
		data["email"] = *filter.Email
		wc = append(wc, "lower(candidate_data->>'email') = lower(:email)")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}

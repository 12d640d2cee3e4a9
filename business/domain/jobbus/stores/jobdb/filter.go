package jobdb

import (
	"bytes"
	"strings"

	"github.com/workforcehq/jobboard/business/domain/jobbus"
)

func applyFilter(filter jobbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["job_id"] = *filter.ID
		wc = append(wc, "job_id = :job_id")
	}

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.EmployerID != nil {
		data["employer_id"] = *filter.EmployerID
		wc = append(wc, "employer_id = :employer_id")
	}

	if filter.CategoryID != nil {
		data["category_id"] = *filter.CategoryID
		wc = append(wc, "category_id = :category_id")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.Type != nil {
		data["job_type"] = filter.Type.String()
		wc = append(wc, "job_type = :job_type")
	}

	if filter.Location != nil {
		data["location"] = "%" + *filter.Location + "%"
		wc = append(wc, "location ILIKE :location")
	}

	if filter.Search != nil {
		data["search"] = "%" + *filter.Search + "%"
		wc = append(wc, "(title ILIKE :search OR summary ILIKE :search)")
	}

	if filter.Featured != nil {
		data["featured"] = *filter.Featured
		wc = append(wc, "featured = :featured")
	}

	if filter.Remote != nil {
		data["remote"] = *filter.Remote
		wc = append(wc, "remote = :remote")
	}

	if filter.PublishedOnly {
		wc = append(wc, "status = 'published'")
		wc = append(wc, "(expires_at IS NULL OR expires_at > now())")
		wc = append(wc, "(published_at IS NULL OR published_at <= now())")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}

package publicapp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

// Webhook actions an external source can push.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
	actionSync   = "sync"
)

const (
	maxCVSize          = 5 << 20
	maxCoverLetterSize = 2000
)

var allowedCVExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// listParams carries the validated query string of the public listing.
type listParams struct {
	page     string
	perPage  string
	tenantID uuid.UUID
	filter   jobbus.QueryFilter
}

func parseListParams(r *http.Request) (listParams, map[string]string) {
	values := r.URL.Query()
	fields := map[string]string{}

	var lp listParams
	lp.page = values.Get("page")
	lp.perPage = values.Get("per_page")

	tenantID, err := uuid.Parse(values.Get("tenant_id"))
	if err != nil {
		fields["tenant_id"] = "a valid tenant_id is required"
	} else {
		lp.tenantID = tenantID
		lp.filter.TenantID = &lp.tenantID
	}

	if v := values.Get("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			fields["category"] = "category must be a valid id"
		} else {
			lp.filter.CategoryID = &id
		}
	}

	if v := values.Get("location"); v != "" {
		lp.filter.Location = &v
	}

	if v := values.Get("type"); v != "" {
		t, err := jobtype.Parse(v)
		if err != nil {
			fields["type"] = err.Error()
		} else {
			lp.filter.Type = &t
		}
	}

	if v := values.Get("featured_only"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			fields["featured_only"] = "featured_only must be a boolean"
		} else if featured {
			lp.filter.Featured = &featured
		}
	}

	return lp, fields
}

// applyRequest carries a candidate submission, arriving either as JSON or as
// a multipart form with an attached CV file.
type applyRequest struct {
	TenantID       string   `json:"tenant_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	CoverLetter    string   `json:"cover_letter"`
	CVURL          string   `json:"cv_url"`
	ExpectedSalary *float64 `json:"expected_salary"`
	AvailableFrom  string   `json:"available_start_date"`
	Source         string   `json:"source"`
	SourceURL      string   `json:"source_url"`

	tenantID      uuid.UUID
	availableFrom *time.Time
	cvFile        io.Reader
	cvName        string
}

func parseApply(r *http.Request) (applyRequest, map[string]string, error) {
	var req applyRequest

	ct := r.Header.Get("Content-Type")
	fields := map[string]string{}

	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxCVSize + 1<<20); err != nil {
			return applyRequest{}, nil, err
		}

		req.TenantID = r.FormValue("tenant_id")
		req.FirstName = r.FormValue("first_name")
		req.LastName = r.FormValue("last_name")
		req.Email = r.FormValue("email")
		req.Phone = r.FormValue("phone")
		req.CoverLetter = r.FormValue("cover_letter")
		req.CVURL = r.FormValue("cv_url")
		req.AvailableFrom = r.FormValue("available_start_date")
		req.Source = r.FormValue("source")
		req.SourceURL = r.FormValue("source_url")

		if v := r.FormValue("expected_salary"); v != "" {
			salary, err := strconv.ParseFloat(v, 64)
			if err != nil {
				fields["expected_salary"] = "expected_salary must be a number"
			} else {
				req.ExpectedSalary = &salary
			}
		}

		file, header, err := r.FormFile("cv_file")
		switch {
		case err == nil:
			ext := strings.ToLower(filepath.Ext(header.Filename))
			if _, ok := allowedCVExtensions[ext]; !ok {
				fields["cv_file"] = "cv_file must be a pdf, doc or docx"
			} else if header.Size > maxCVSize {
				fields["cv_file"] = "cv_file must be 5MB or smaller"
			} else {
				req.cvFile = file
				req.cvName = header.Filename
			}
		case err != http.ErrMissingFile:
			return applyRequest{}, nil, err
		}

	default:
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			return applyRequest{}, nil, err
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return applyRequest{}, nil, err
		}
	}

	validateApply(&req, fields)

	return req, fields, nil
}

func validateApply(req *applyRequest, fields map[string]string) {
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		fields["tenant_id"] = "a valid tenant_id is required"
	}
	req.tenantID = tenantID

	if req.FirstName == "" {
		fields["first_name"] = "first_name is required"
	}

	if req.LastName == "" {
		fields["last_name"] = "last_name is required"
	}

	switch {
	case req.Email == "":
		fields["email"] = "email is required"
	default:
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fields["email"] = "email must be a valid address"
		}
	}

	if len(req.CoverLetter) > maxCoverLetterSize {
		fields["cover_letter"] = "cover_letter must be 2000 characters or fewer"
	}

	if req.ExpectedSalary != nil && *req.ExpectedSalary < 0 {
		fields["expected_salary"] = "expected_salary must be zero or more"
	}

	if req.AvailableFrom != "" {
		t, err := parseDate(req.AvailableFrom)
		switch {
		case err != nil:
			fields["available_start_date"] = "available_start_date must be a date"
		case !t.After(endOfToday()):
			fields["available_start_date"] = "available_start_date must be after today"
		default:
			req.availableFrom = &t
		}
	}

	if req.CVURL != "" {
		u, err := url.Parse(req.CVURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fields["cv_url"] = "cv_url must be a valid http(s) url"
		}
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// webhookRequest is the inbound push envelope from an external job source.
type webhookRequest struct {
	TenantID   string          `json:"tenant_id"`
	Action     string          `json:"action"`
	Source     string          `json:"source"`
	ExternalID string          `json:"external_id"`
	Data       json.RawMessage `json:"data"`

	tenantID uuid.UUID
}

func parseWebhook(r *http.Request) (webhookRequest, map[string]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		return webhookRequest{}, nil, err
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return webhookRequest{}, nil, err
	}

	fields := map[string]string{}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		fields["tenant_id"] = "a valid tenant_id is required"
	}
	req.tenantID = tenantID

	switch req.Action {
	case actionCreate, actionUpdate:
		if req.ExternalID == "" {
			fields["external_id"] = "external_id is required"
		}
		if len(req.Data) == 0 {
			fields["data"] = "data is required"
		}

	case actionDelete:
		if req.ExternalID == "" {
			fields["external_id"] = "external_id is required"
		}

	case actionSync:
		if len(req.Data) == 0 {
			fields["data"] = "data is required"
		}

	case "":
		fields["action"] = "action is required"

	default:
		fields["action"] = "action must be one of create, update, delete, sync"
	}

	if req.Source == "" {
		fields["source"] = "source is required"
	}

	return req, fields, nil
}

// jobPayload is the per-job body an external source pushes. Optional fields
// left at their zero value fall back to the documented defaults in the bus.
type jobPayload struct {
	ExternalID     string   `json:"external_id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
	SalaryCurrency string   `json:"salary_currency"`
	Status         string   `json:"status"`
	Remote         bool     `json:"remote"`
	ExpiresAt      string   `json:"expires_at"`
}

func toBusUpsertJob(tenantID uuid.UUID, source string, externalID string, raw json.RawMessage) (jobbus.UpsertJob, map[string]string, error) {
	var payload jobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return jobbus.UpsertJob{}, nil, err
	}

	fields := map[string]string{}

	if payload.Title == "" {
		fields["title"] = "title is required"
	}

	up := jobbus.UpsertJob{
		TenantID:       tenantID,
		ExternalSource: source,
		ExternalID:     externalID,
		Title:          payload.Title,
		Summary:        payload.Summary,
		Description:    payload.Description,
		Requirements:   payload.Requirements,
		Location:       payload.Location,
		SalaryMin:      payload.SalaryMin,
		SalaryMax:      payload.SalaryMax,
		SalaryCurrency: payload.SalaryCurrency,
		Remote:         payload.Remote,
		Payload:        raw,
	}

	if payload.Type != "" {
		t, err := jobtype.Parse(payload.Type)
		if err != nil {
			fields["type"] = err.Error()
		} else {
			up.Type = t
		}
	}

	if payload.Status != "" {
		status, err := jobstatus.Parse(payload.Status)
		if err != nil {
			fields["status"] = err.Error()
		} else {
			up.Status = status
		}
	}

	if payload.ExpiresAt != "" {
		t, err := parseDate(payload.ExpiresAt)
		if err != nil {
			fields["expires_at"] = "expires_at must be a date"
		} else {
			up.ExpiresAt = &t
		}
	}

	return up, fields, nil
}

package publicapp

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/workforcehq/jobboard/business/domain/jobbus"
)

// The public surface speaks its own envelope, {success, data, meta} on the
// happy path and {success:false, message|errors} on failure, so the types
// here encode themselves rather than going through the errs package.

// envelopeError is the public failure envelope.
type envelopeError struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	status  int
}

func failMessage(status int, message string) envelopeError {
	return envelopeError{
		Success: false,
		Message: message,
		status:  status,
	}
}

func failFields(fields map[string]string) envelopeError {
	return envelopeError{
		Success: false,
		Errors:  fields,
		status:  http.StatusUnprocessableEntity,
	}
}

// Encode implements the web.Encoder interface.
func (e envelopeError) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web httpStatus interface.
func (e envelopeError) HTTPStatus() int {
	return e.status
}

// Job is the public projection of a job posting. The employer relation is
// stripped down to a display name, no internal contact fields leak.
type Job struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Slug               string   `json:"slug"`
	Summary            string   `json:"summary"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	Location           string   `json:"location"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	Type               string   `json:"type"`
	Salary             string   `json:"salary,omitempty"`
	Featured           bool     `json:"featured"`
	Remote             bool     `json:"remote"`
	CategoryID         string   `json:"category_id,omitempty"`
	EmployerName       string   `json:"employer_name,omitempty"`
	PublishedAt        string   `json:"published_at,omitempty"`
	DaysSincePublished int      `json:"days_since_published"`
	ExpiresAt          string   `json:"expires_at,omitempty"`
	Applications       *int     `json:"applications_count,omitempty"`
}

func toPublicJob(bus jobbus.Job, employerName string, now time.Time) Job {
	app := Job{
		ID:           bus.ID.String(),
		Title:        bus.Title,
		Slug:         bus.Slug,
		Summary:      bus.Summary,
		Description:  bus.Description,
		Requirements: bus.Requirements,
		Location:     bus.Location,
		Latitude:     bus.Latitude,
		Longitude:    bus.Longitude,
		Type:         bus.Type.String(),
		Salary:       formatSalary(bus),
		Featured:     bus.Featured,
		Remote:       bus.Remote,
		EmployerName: employerName,
	}

	if bus.CategoryID != nil {
		app.CategoryID = bus.CategoryID.String()
	}

	if bus.PublishedAt != nil {
		app.PublishedAt = bus.PublishedAt.Format(time.RFC3339)
		app.DaysSincePublished = int(now.Sub(*bus.PublishedAt).Hours() / 24)
	}

	if bus.ExpiresAt != nil {
		app.ExpiresAt = bus.ExpiresAt.Format(time.RFC3339)
	}

	return app
}

// formatSalary renders the salary range for display, or nothing when the
// employer keeps it hidden.
func formatSalary(bus jobbus.Job) string {
	if !bus.ShowSalary {
		return ""
	}

	var sb strings.Builder

	switch {
	case bus.SalaryMin != nil && bus.SalaryMax != nil:
		fmt.Fprintf(&sb, "%s - %s", formatAmount(*bus.SalaryMin), formatAmount(*bus.SalaryMax))
	case bus.SalaryMin != nil:
		fmt.Fprintf(&sb, "From %s", formatAmount(*bus.SalaryMin))
	case bus.SalaryMax != nil:
		fmt.Fprintf(&sb, "Up to %s", formatAmount(*bus.SalaryMax))
	default:
		return ""
	}

	if bus.SalaryCurrency != "" {
		fmt.Fprintf(&sb, " %s", bus.SalaryCurrency)
	}

	if bus.SalaryPeriod != "" {
		fmt.Fprintf(&sb, " / %s", bus.SalaryPeriod)
	}

	return sb.String()
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// meta carries the paging block of the list envelope.
type meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// jobList is the list envelope.
type jobList struct {
	Success bool  `json:"success"`
	Data    []Job `json:"data"`
	Meta    meta  `json:"meta"`
}

// Encode implements the web.Encoder interface.
func (l jobList) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}

// jobDetail is the single job envelope.
type jobDetail struct {
	Success bool `json:"success"`
	Data    Job  `json:"data"`
}

// Encode implements the web.Encoder interface.
func (d jobDetail) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

// applyReceipt is the 201 envelope for a recorded application.
type applyReceipt struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    receiptData `json:"data"`
}

type receiptData struct {
	ApplicationID string `json:"application_id"`
	JobTitle      string `json:"job_title"`
	Status        string `json:"status"`
	SubmittedAt   string `json:"submitted_at"`
}

// Encode implements the web.Encoder interface.
func (a applyReceipt) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}

// HTTPStatus implements the web httpStatus interface.
func (a applyReceipt) HTTPStatus() int {
	return http.StatusCreated
}

// webhookReceipt is the acknowledgment envelope for an inbound webhook.
type webhookReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Encode implements the web.Encoder interface.
func (w webhookReceipt) Encode() ([]byte, string, error) {
	data, err := json.Marshal(w)
	return data, "application/json", err
}

package applicationbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/appstatus"
)

// CandidateData holds the raw submission of an external candidate. It is
// stored verbatim alongside the application since the candidate has no
// account in the system.
type CandidateData struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	CVURL       string    `json:"cv_url,omitempty"`
	Source      string    `json:"source,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Application represents a candidate's application to a job.
type Application struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	JobID          uuid.UUID
	CandidateID    *uuid.UUID
	Status         appstatus.Status
	CoverLetter    string
	ExpectedSalary *float64
	AvailableFrom  *time.Time
	Notes          string
	CandidateData  CandidateData
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewApplication contains information needed to record an external
// application. The submission timestamp is assigned server side.
type NewApplication struct {
	TenantID       uuid.UUID
	JobID          uuid.UUID
	CoverLetter    string
	ExpectedSalary *float64
	AvailableFrom  *time.Time
	CandidateData  CandidateData
}

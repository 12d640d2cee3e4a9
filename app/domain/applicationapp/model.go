package applicationapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/types/appstatus"
)

// Candidate carries the stored submission of an external candidate.
type Candidate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CVURL       string `json:"cvUrl,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	SubmittedAt string `json:"submittedAt"`
}

// Application represents a candidate's application to a job.
type Application struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenantId"`
	JobID          string    `json:"jobId"`
	Status         string    `json:"status"`
	CoverLetter    string    `json:"coverLetter,omitempty"`
	ExpectedSalary *float64  `json:"expectedSalary,omitempty"`
	AvailableFrom  string    `json:"availableFrom,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Candidate      Candidate `json:"candidate"`
	DateCreated    string    `json:"dateCreated"`
	DateUpdated    string    `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (a Application) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}

func toAppApplication(bus applicationbus.Application) Application {
	app := Application{
		ID:          bus.ID.String(),
		TenantID:    bus.TenantID.String(),
		JobID:       bus.JobID.String(),
		Status:      bus.Status.String(),
		CoverLetter: bus.CoverLetter,
		Notes:       bus.Notes,
		Candidate: Candidate{
			FirstName:   bus.CandidateData.FirstName,
			LastName:    bus.CandidateData.LastName,
			Email:       bus.CandidateData.Email,
			Phone:       bus.CandidateData.Phone,
			CVURL:       bus.CandidateData.CVURL,
			Source:      bus.CandidateData.Source,
			SourceURL:   bus.CandidateData.SourceURL,
			SubmittedAt: bus.CandidateData.SubmittedAt.Format(time.RFC3339),
		},
		ExpectedSalary: bus.ExpectedSalary,
		DateCreated:    bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:    bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.AvailableFrom != nil {
		app.AvailableFrom = bus.AvailableFrom.Format(time.RFC3339)
	}

	return app
}

func toAppApplications(apps []applicationbus.Application) []Application {
	app := make([]Application, len(apps))
	for i, a := range apps {
		app[i] = toAppApplication(a)
	}
	return app
}

// UpdateApplicationStatus defines the data needed to change a review status.
type UpdateApplicationStatus struct {
	Status string `json:"status" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateApplicationStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateApplicationStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusStatus(app UpdateApplicationStatus) (appstatus.Status, error) {
	status, err := appstatus.Parse(app.Status)
	if err != nil {
		return appstatus.Status{}, fmt.Errorf("parse status: %w", err)
	}

	return status, nil
}

// UpdateApplicationNotes defines the data needed to replace reviewer notes.
type UpdateApplicationNotes struct {
	Notes string `json:"notes" validate:"max=5000"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateApplicationNotes) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateApplicationNotes) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

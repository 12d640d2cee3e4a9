// Package publicapp maintains the unauthenticated public api consumed by
// external job boards and site plugins. It speaks its own response envelope
// and never leaks internal error detail.
package publicapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/cvstore"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/domain/webhookbus"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/foundation/logger"
)

type app struct {
	log            *logger.Logger
	jobBus         *jobbus.Core
	userBus        *userbus.Core
	tenantBus      *tenantbus.Core
	applicationBus *applicationbus.Core
	webhookBus     *webhookbus.Core
	cvStore        *cvstore.Store
}

func newApp(cfg Config) *app {
	return &app{
		log:            cfg.Log,
		jobBus:         cfg.JobBus,
		userBus:        cfg.UserBus,
		tenantBus:      cfg.TenantBus,
		applicationBus: cfg.ApplicationBus,
		webhookBus:     cfg.WebhookBus,
		cvStore:        cfg.CVStore,
	}
}

// getJobs lists the published, currently visible jobs of a tenant, featured
// first and most recently published within that.
func (a *app) getJobs(ctx context.Context, r *http.Request) web.Encoder {
	qp, fields := parseListParams(r)
	if len(fields) > 0 {
		return failFields(fields)
	}

	pg, err := page.Parse(qp.page, qp.perPage)
	if err != nil {
		return failFields(map[string]string{"per_page": err.Error()})
	}

	filter := qp.filter
	filter.PublishedOnly = true

	jobs, err := a.jobBus.Query(ctx, filter, jobbus.PublicOrderBy, pg)
	if err != nil {
		a.log.Error(ctx, "public: list jobs", "tenantID", qp.tenantID, "err", err)
		return failMessage(http.StatusInternalServerError, "Unable to list jobs")
	}

	total, err := a.jobBus.Count(ctx, filter)
	if err != nil {
		a.log.Error(ctx, "public: count jobs", "tenantID", qp.tenantID, "err", err)
		return failMessage(http.StatusInternalServerError, "Unable to list jobs")
	}

	now := time.Now()
	names := map[uuid.UUID]string{}

	items := make([]Job, len(jobs))
	for i, job := range jobs {
		items[i] = toPublicJob(job, a.employerName(ctx, names, job.EmployerID), now)
	}

	lastPage := (total + pg.RowsPerPage() - 1) / pg.RowsPerPage()
	if lastPage < 1 {
		lastPage = 1
	}

	return jobList{
		Success: true,
		Data:    items,
		Meta: meta{
			CurrentPage: pg.Number(),
			PerPage:     pg.RowsPerPage(),
			Total:       total,
			LastPage:    lastPage,
		},
	}
}

// getJob returns a single visible job with its applications counter. Absent,
// unpublished and cross-tenant jobs are indistinguishable 404s.
func (a *app) getJob(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := uuid.Parse(r.URL.Query().Get("tenant_id"))
	if err != nil {
		return failFields(map[string]string{"tenant_id": "a valid tenant_id is required"})
	}

	jobID, err := uuid.Parse(web.Param(r, "job_id"))
	if err != nil {
		return failMessage(http.StatusNotFound, "Job not found")
	}

	job, err := a.jobBus.QueryPublishedByID(ctx, tenantID, jobID)
	if err != nil {
		if errors.Is(err, jobbus.ErrNotFound) {
			return failMessage(http.StatusNotFound, "Job not found")
		}
		a.log.Error(ctx, "public: get job", "tenantID", tenantID, "jobID", jobID, "err", err)
		return failMessage(http.StatusInternalServerError, "Unable to load job")
	}

	count, err := a.jobBus.CountApplications(ctx, job.ID)
	if err != nil {
		a.log.Error(ctx, "public: count applications", "jobID", job.ID, "err", err)
		return failMessage(http.StatusInternalServerError, "Unable to load job")
	}

	names := map[uuid.UUID]string{}
	item := toPublicJob(job, a.employerName(ctx, names, job.EmployerID), time.Now())
	item.Applications = &count

	return jobDetail{
		Success: true,
		Data:    item,
	}
}

// apply records an external candidate application against a published job.
// The CV file is persisted before the record is created, an orphaned file is
// tolerated while a recorded application without its file is not.
func (a *app) apply(ctx context.Context, r *http.Request) web.Encoder {
	req, fields, err := parseApply(r)
	if err != nil {
		return failMessage(http.StatusBadRequest, "Malformed request body")
	}
	if len(fields) > 0 {
		return failFields(fields)
	}

	jobID, err := uuid.Parse(web.Param(r, "job_id"))
	if err != nil {
		return failMessage(http.StatusNotFound, "Job not found")
	}

	job, err := a.jobBus.QueryPublishedByID(ctx, req.tenantID, jobID)
	if err != nil {
		if errors.Is(err, jobbus.ErrNotFound) {
			return failMessage(http.StatusNotFound, "Job not found")
		}
		a.log.Error(ctx, "public: apply: get job", "tenantID", req.tenantID, "jobID", jobID, "err", err)
		return failMessage(http.StatusInternalServerError, "Application could not be processed")
	}

	cvURL := req.CVURL
	if req.cvFile != nil {
		cvURL, err = a.cvStore.Save(ctx, req.cvName, req.cvFile)
		if err != nil {
			a.log.Error(ctx, "public: apply: save cv", "jobID", job.ID, "err", err)
			return failMessage(http.StatusInternalServerError, "Application could not be processed")
		}
	}

	na := applicationbus.NewApplication{
		TenantID:       job.TenantID,
		JobID:          job.ID,
		CoverLetter:    req.CoverLetter,
		ExpectedSalary: req.ExpectedSalary,
		AvailableFrom:  req.availableFrom,
		CandidateData: applicationbus.CandidateData{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			CVURL:     cvURL,
			Source:    req.Source,
			SourceURL: req.SourceURL,
		},
	}

	appl, err := a.applicationBus.Create(ctx, na)
	if err != nil {
		if errors.Is(err, applicationbus.ErrDuplicate) {
			return failMessage(http.StatusConflict, "You have already applied to this job")
		}
		a.log.Error(ctx, "public: apply: create", "jobID", job.ID, "err", err)
		return failMessage(http.StatusInternalServerError, "Application could not be processed")
	}

	a.enqueueApplicationCreated(ctx, appl, job)

	return applyReceipt{
		Success: true,
		Message: "Application submitted",
		Data: receiptData{
			ApplicationID: appl.ID.String(),
			JobTitle:      job.Title,
			Status:        appl.Status.String(),
			SubmittedAt:   appl.CreatedAt.Format(time.RFC3339),
		},
	}
}

// receiveJobWebhook applies an inbound push from an external job source.
func (a *app) receiveJobWebhook(ctx context.Context, r *http.Request) web.Encoder {
	req, fields, err := parseWebhook(r)
	if err != nil {
		return failMessage(http.StatusBadRequest, "Malformed request body")
	}
	if len(fields) > 0 {
		return failFields(fields)
	}

	if _, err := a.tenantBus.QueryByID(ctx, req.tenantID); err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return failFields(map[string]string{"tenant_id": "unknown tenant"})
		}
		a.log.Error(ctx, "public: webhook: get tenant", "tenantID", req.tenantID, "err", err)
		return failMessage(http.StatusInternalServerError, "Webhook could not be processed")
	}

	switch req.Action {
	case actionCreate, actionUpdate:
		if encErr := a.upsertOne(ctx, req, req.ExternalID, req.Data); encErr != nil {
			return encErr
		}
		return webhookReceipt{Success: true, Message: "Job synchronized"}

	case actionDelete:
		if err := a.jobBus.DeleteExternal(ctx, req.tenantID, req.Source, req.ExternalID); err != nil {
			a.log.Error(ctx, "public: webhook: delete",
				"tenantID", req.tenantID, "action", req.Action, "externalID", req.ExternalID, "err", err)
			return failMessage(http.StatusInternalServerError, "Webhook could not be processed")
		}
		return webhookReceipt{Success: true, Message: "Job removed"}

	case actionSync:
		var items []json.RawMessage
		if err := json.Unmarshal(req.Data, &items); err != nil {
			return failFields(map[string]string{"data": "data must be an array of job payloads"})
		}

		for _, item := range items {
			var probe struct {
				ExternalID string `json:"external_id"`
			}
			if err := json.Unmarshal(item, &probe); err != nil || probe.ExternalID == "" {
				continue
			}

			if encErr := a.upsertOne(ctx, req, probe.ExternalID, item); encErr != nil {
				return encErr
			}
		}

		return webhookReceipt{Success: true, Message: "Synchronized"}

	default:
		return failFields(map[string]string{"action": "action must be one of create, update, delete, sync"})
	}
}

func (a *app) upsertOne(ctx context.Context, req webhookRequest, externalID string, raw json.RawMessage) web.Encoder {
	up, fields, err := toBusUpsertJob(req.tenantID, req.Source, externalID, raw)
	if err != nil {
		return failMessage(http.StatusBadRequest, "Malformed job payload")
	}
	if len(fields) > 0 {
		return failFields(fields)
	}

	if _, err := a.jobBus.Upsert(ctx, up); err != nil {
		a.log.Error(ctx, "public: webhook: upsert",
			"tenantID", req.tenantID, "action", req.Action, "externalID", externalID, "err", err)
		return failMessage(http.StatusInternalServerError, "Webhook could not be processed")
	}

	return nil
}

// enqueueApplicationCreated writes the outbox row for the new application.
// A failure here is logged and swallowed, the candidate's submission already
// succeeded.
func (a *app) enqueueApplicationCreated(ctx context.Context, appl applicationbus.Application, job jobbus.Job) {
	payload, err := json.Marshal(map[string]any{
		"application_id":  appl.ID,
		"job_id":          job.ID,
		"tenant_id":       appl.TenantID,
		"candidate_email": appl.CandidateData.Email,
		"source":          appl.CandidateData.Source,
	})
	if err != nil {
		a.log.Error(ctx, "public: apply: marshal event", "applicationID", appl.ID, "err", err)
		return
	}

	ne := webhookbus.NewEvent{
		TenantID: appl.TenantID,
		Kind:     "application.created",
		Payload:  payload,
	}

	if _, err := a.webhookBus.Enqueue(ctx, ne); err != nil {
		a.log.Error(ctx, "public: apply: enqueue event", "applicationID", appl.ID, "err", err)
	}
}

// employerName resolves the display name of a job's employer, memoized per
// request. Externally sourced jobs have no employer and render without one.
func (a *app) employerName(ctx context.Context, memo map[uuid.UUID]string, employerID uuid.UUID) string {
	if employerID == uuid.Nil {
		return ""
	}

	if name, ok := memo[employerID]; ok {
		return name
	}

	usr, err := a.userBus.QueryByID(ctx, employerID)
	if err != nil {
		memo[employerID] = ""
		return ""
	}

	memo[employerID] = usr.Name.String()
	return usr.Name.String()
}

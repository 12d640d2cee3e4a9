package jobbus_test

import (
	"context"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// stubStorer captures writes and serves canned application counts.
type stubStorer struct {
	created  []jobbus.Job
	updated  []jobbus.Job
	appCount int
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (jobbus.Storer, error) { return s, nil }

func (s *stubStorer) Create(ctx context.Context, job jobbus.Job) error {
	s.created = append(s.created, job)
	return nil
}

func (s *stubStorer) Update(ctx context.Context, job jobbus.Job) error {
	s.updated = append(s.updated, job)
	return nil
}

func (s *stubStorer) Delete(ctx context.Context, job jobbus.Job) error { return nil }

func (s *stubStorer) Query(ctx context.Context, filter jobbus.QueryFilter, orderBy order.By, page page.Page) ([]jobbus.Job, error) {
	return nil, nil
}

func (s *stubStorer) Count(ctx context.Context, filter jobbus.QueryFilter) (int, error) {
	return 0, nil
}

func (s *stubStorer) QueryByID(ctx context.Context, jobID uuid.UUID) (jobbus.Job, error) {
	return jobbus.Job{}, jobbus.ErrNotFound
}

func (s *stubStorer) QueryPublishedByID(ctx context.Context, tenantID uuid.UUID, jobID uuid.UUID) (jobbus.Job, error) {
	return jobbus.Job{}, jobbus.ErrNotFound
}

func (s *stubStorer) Upsert(ctx context.Context, job jobbus.Job) (jobbus.Job, error) {
	s.created = append(s.created, job)
	return job, nil
}

func (s *stubStorer) DeleteExternal(ctx context.Context, tenantID uuid.UUID, source string, externalID string) error {
	return nil
}

func (s *stubStorer) CountApplications(ctx context.Context, jobID uuid.UUID) (int, error) {
	return s.appCount, nil
}

func newCore(t *testing.T) (*jobbus.Core, *stubStorer) {
	t.Helper()

	storer := &stubStorer{}
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return jobbus.NewCore(log, storer), storer
}

func TestCreate(t *testing.T) {
	core, storer := newCore(t)
	ctx := context.Background()

	min := 500000.0

	job, err := core.Create(ctx, jobbus.NewJob{
		TenantID:      uuid.New(),
		EmployerID:    uuid.New(),
		EmployerEmail: mail.Address{Address: "owner@acme.test"},
		Title:         "Senior Go Developer",
		Type:          jobtype.FullTime,
		Status:        jobstatus.Published,
		SalaryMin:     &min,
		ShowSalary:    false,
	})
	require.NoError(t, err)
	require.Len(t, storer.created, 1)

	assert.Contains(t, job.Slug, "senior-go-developer-")

	// Contact falls back to the employer's address when omitted.
	assert.Equal(t, "owner@acme.test", job.ContactEmail.Address)

	// Hidden salaries are not stored at all.
	assert.Nil(t, job.SalaryMin)

	require.NotNil(t, job.PublishedAt)
}

func TestCreateDraftHasNoPublishDate(t *testing.T) {
	core, _ := newCore(t)

	job, err := core.Create(context.Background(), jobbus.NewJob{
		Title:  "Backfill Analyst",
		Type:   jobtype.PartTime,
		Status: jobstatus.Draft,
	})
	require.NoError(t, err)
	assert.Nil(t, job.PublishedAt)
}

func TestUpdateSlugRegeneratedOnlyOnTitleChange(t *testing.T) {
	core, _ := newCore(t)
	ctx := context.Background()

	job := jobbus.Job{
		ID:    uuid.New(),
		Title: "Senior Go Developer",
		Slug:  "senior-go-developer-aabbccdd",
		Type:  jobtype.FullTime,
	}

	location := "Dakar"
	got, err := core.Update(ctx, job, jobbus.UpdateJob{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, job.Slug, got.Slug)

	sameTitle := job.Title
	got, err = core.Update(ctx, job, jobbus.UpdateJob{Title: &sameTitle})
	require.NoError(t, err)
	assert.Equal(t, job.Slug, got.Slug)

	newTitle := "Staff Go Developer"
	got, err = core.Update(ctx, job, jobbus.UpdateJob{Title: &newTitle})
	require.NoError(t, err)
	assert.NotEqual(t, job.Slug, got.Slug)
	assert.Contains(t, got.Slug, "staff-go-developer-")
}

func TestUpdateHidingSalaryClearsIt(t *testing.T) {
	core, _ := newCore(t)

	min, max := 500000.0, 900000.0
	job := jobbus.Job{
		ID:         uuid.New(),
		Title:      "Senior Go Developer",
		SalaryMin:  &min,
		SalaryMax:  &max,
		ShowSalary: true,
	}

	hide := false
	got, err := core.Update(context.Background(), job, jobbus.UpdateJob{ShowSalary: &hide})
	require.NoError(t, err)
	assert.Nil(t, got.SalaryMin)
	assert.Nil(t, got.SalaryMax)
}

func TestUpdateStatusPublishSetsDate(t *testing.T) {
	core, _ := newCore(t)

	job := jobbus.Job{ID: uuid.New(), Status: jobstatus.Draft}

	got, err := core.UpdateStatus(context.Background(), job, jobstatus.Published)
	require.NoError(t, err)
	assert.True(t, got.Status.Equal(jobstatus.Published))
	require.NotNil(t, got.PublishedAt)
}

func TestDeleteBlockedByApplications(t *testing.T) {
	core, storer := newCore(t)
	ctx := context.Background()

	job := jobbus.Job{ID: uuid.New()}

	storer.appCount = 3
	assert.ErrorIs(t, core.Delete(ctx, job), jobbus.ErrHasApplications)

	storer.appCount = 0
	assert.NoError(t, core.Delete(ctx, job))
}

func TestDuplicate(t *testing.T) {
	core, _ := newCore(t)

	published := time.Now().Add(-48 * time.Hour)
	synced := time.Now().Add(-time.Hour)

	job := jobbus.Job{
		ID:              uuid.New(),
		TenantID:        uuid.New(),
		Title:           "Senior Go Developer",
		Slug:            "senior-go-developer-aabbccdd",
		Status:          jobstatus.Published,
		PublishedAt:     &published,
		ExternalID:      "ext-42",
		ExternalSource:  "partnerboard",
		ExternalPayload: []byte(`{"id":"ext-42"}`),
		SyncedAt:        &synced,
	}

	cp, err := core.Duplicate(context.Background(), job)
	require.NoError(t, err)

	assert.NotEqual(t, job.ID, cp.ID)
	assert.Equal(t, "Senior Go Developer (copy)", cp.Title)
	assert.NotEqual(t, job.Slug, cp.Slug)
	assert.True(t, cp.Status.Equal(jobstatus.Draft))
	assert.Nil(t, cp.PublishedAt)

	// A copy is a native job, the sync identity must not carry over.
	assert.Empty(t, cp.ExternalID)
	assert.Empty(t, cp.ExternalSource)
	assert.Nil(t, cp.ExternalPayload)
	assert.Nil(t, cp.SyncedAt)
}

func TestUpsertDefaults(t *testing.T) {
	core, _ := newCore(t)

	job, err := core.Upsert(context.Background(), jobbus.UpsertJob{
		TenantID:       uuid.New(),
		ExternalSource: "partnerboard",
		ExternalID:     "ext-42",
		Title:          "Imported Job",
		Payload:        []byte(`{"id":"ext-42"}`),
	})
	require.NoError(t, err)

	assert.True(t, job.Type.Equal(jobtype.FullTime))
	assert.Equal(t, "XOF", job.SalaryCurrency)
	assert.True(t, job.Status.Equal(jobstatus.Published))
	assert.NotNil(t, job.PublishedAt)
	assert.NotNil(t, job.SyncedAt)
	assert.False(t, job.ShowSalary)
}

func TestUpsertSalaryImpliesShow(t *testing.T) {
	core, _ := newCore(t)

	min := 300000.0
	job, err := core.Upsert(context.Background(), jobbus.UpsertJob{
		TenantID:       uuid.New(),
		ExternalSource: "partnerboard",
		ExternalID:     "ext-43",
		Title:          "Imported Job",
		Type:           jobtype.Contract,
		Status:         jobstatus.Draft,
		SalaryMin:      &min,
	})
	require.NoError(t, err)

	assert.True(t, job.ShowSalary)
	assert.True(t, job.Type.Equal(jobtype.Contract))
	assert.True(t, job.Status.Equal(jobstatus.Draft))
	assert.Nil(t, job.PublishedAt)
}

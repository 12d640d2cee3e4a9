package publicapp

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

func TestValidateApply(t *testing.T) {
	tenantID := uuid.New().String()
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	valid := applyRequest{
		TenantID:  tenantID,
		FirstName: "Awa",
		LastName:  "Diop",
		Email:     "awa@example.test",
	}

	t.Run("minimal valid request", func(t *testing.T) {
		req := valid
		fields := map[string]string{}
		validateApply(&req, fields)
		assert.Empty(t, fields)
	})

	t.Run("future start date accepted", func(t *testing.T) {
		req := valid
		req.AvailableFrom = tomorrow
		fields := map[string]string{}
		validateApply(&req, fields)
		assert.Empty(t, fields)
		require.NotNil(t, req.availableFrom)
	})

	tests := []struct {
		name   string
		mutate func(*applyRequest)
		field  string
	}{
		{"missing tenant", func(r *applyRequest) { r.TenantID = "" }, "tenant_id"},
		{"missing first name", func(r *applyRequest) { r.FirstName = "" }, "first_name"},
		{"missing last name", func(r *applyRequest) { r.LastName = "" }, "last_name"},
		{"missing email", func(r *applyRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *applyRequest) { r.Email = "not-an-address" }, "email"},
		{"cover letter too long", func(r *applyRequest) { r.CoverLetter = strings.Repeat("x", 2001) }, "cover_letter"},
		{"negative salary", func(r *applyRequest) { s := -1.0; r.ExpectedSalary = &s }, "expected_salary"},
		{"start date in the past", func(r *applyRequest) { r.AvailableFrom = yesterday }, "available_start_date"},
		{"start date today", func(r *applyRequest) { r.AvailableFrom = time.Now().Format("2006-01-02") }, "available_start_date"},
		{"unparseable start date", func(r *applyRequest) { r.AvailableFrom = "soon" }, "available_start_date"},
		{"cv url without scheme", func(r *applyRequest) { r.CVURL = "example.test/cv.pdf" }, "cv_url"},
		{"cv url with ftp scheme", func(r *applyRequest) { r.CVURL = "ftp://example.test/cv.pdf" }, "cv_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			fields := map[string]string{}
			validateApply(&req, fields)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestParseApplyMultipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	w.WriteField("tenant_id", uuid.New().String())
	w.WriteField("first_name", "Awa")
	w.WriteField("last_name", "Diop")
	w.WriteField("email", "awa@example.test")
	w.WriteField("expected_salary", "450000")

	fw, err := w.CreateFormFile("cv_file", "cv.pdf")
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/public/jobs/x/apply", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())

	req, fields, err := parseApply(r)
	require.NoError(t, err)
	assert.Empty(t, fields)
	require.NotNil(t, req.ExpectedSalary)
	assert.Equal(t, 450000.0, *req.ExpectedSalary)
	assert.Equal(t, "cv.pdf", req.cvName)
	require.NotNil(t, req.cvFile)
}

func TestParseApplyMultipartRejectsExtension(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	w.WriteField("tenant_id", uuid.New().String())
	w.WriteField("first_name", "Awa")
	w.WriteField("last_name", "Diop")
	w.WriteField("email", "awa@example.test")

	fw, err := w.CreateFormFile("cv_file", "cv.exe")
	require.NoError(t, err)
	fw.Write([]byte("MZ"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/public/jobs/x/apply", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())

	_, fields, err := parseApply(r)
	require.NoError(t, err)
	assert.Contains(t, fields, "cv_file")
}

func TestParseWebhook(t *testing.T) {
	tenantID := uuid.New().String()

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			"create valid",
			`{"tenant_id":"` + tenantID + `","action":"create","source":"partnerboard","external_id":"ext-1","data":{"title":"Dev"}}`,
			nil,
		},
		{
			"create without external id",
			`{"tenant_id":"` + tenantID + `","action":"create","source":"partnerboard","data":{"title":"Dev"}}`,
			[]string{"external_id"},
		},
		{
			"update without data",
			`{"tenant_id":"` + tenantID + `","action":"update","source":"partnerboard","external_id":"ext-1"}`,
			[]string{"data"},
		},
		{
			"delete needs only external id",
			`{"tenant_id":"` + tenantID + `","action":"delete","source":"partnerboard","external_id":"ext-1"}`,
			nil,
		},
		{
			"sync needs data but no external id",
			`{"tenant_id":"` + tenantID + `","action":"sync","source":"partnerboard","data":[]}`,
			nil,
		},
		{
			"missing action",
			`{"tenant_id":"` + tenantID + `","source":"partnerboard"}`,
			[]string{"action"},
		},
		{
			"unknown action",
			`{"tenant_id":"` + tenantID + `","action":"upsert","source":"partnerboard"}`,
			[]string{"action"},
		},
		{
			"missing source",
			`{"tenant_id":"` + tenantID + `","action":"delete","external_id":"ext-1"}`,
			[]string{"source"},
		},
		{
			"bad tenant id",
			`{"tenant_id":"nope","action":"delete","source":"partnerboard","external_id":"ext-1"}`,
			[]string{"tenant_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/public/webhook/jobs", strings.NewReader(tt.body))

			_, fields, err := parseWebhook(r)
			require.NoError(t, err)

			if len(tt.fields) == 0 {
				assert.Empty(t, fields)
				return
			}
			for _, f := range tt.fields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestParseWebhookMalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/public/webhook/jobs", strings.NewReader("{not json"))

	_, _, err := parseWebhook(r)
	assert.Error(t, err)
}

func TestToBusUpsertJob(t *testing.T) {
	tenantID := uuid.New()
	raw := []byte(`{"external_id":"ext-1","title":"Imported Dev","type":"contract","status":"draft","salary_min":300000,"expires_at":"2026-12-31"}`)

	up, fields, err := toBusUpsertJob(tenantID, "partnerboard", "ext-1", raw)
	require.NoError(t, err)
	assert.Empty(t, fields)

	assert.Equal(t, tenantID, up.TenantID)
	assert.Equal(t, "partnerboard", up.ExternalSource)
	assert.Equal(t, "ext-1", up.ExternalID)
	assert.Equal(t, "Imported Dev", up.Title)
	assert.True(t, up.Type.Equal(jobtype.Contract))
	assert.True(t, up.Status.Equal(jobstatus.Draft))
	require.NotNil(t, up.SalaryMin)
	require.NotNil(t, up.ExpiresAt)
	assert.JSONEq(t, string(raw), string(up.Payload))
}

func TestToBusUpsertJobValidation(t *testing.T) {
	tenantID := uuid.New()

	t.Run("missing title", func(t *testing.T) {
		_, fields, err := toBusUpsertJob(tenantID, "partnerboard", "ext-1", []byte(`{}`))
		require.NoError(t, err)
		assert.Contains(t, fields, "title")
	})

	t.Run("bad type and status", func(t *testing.T) {
		_, fields, err := toBusUpsertJob(tenantID, "partnerboard", "ext-1", []byte(`{"title":"Dev","type":"gig","status":"live"}`))
		require.NoError(t, err)
		assert.Contains(t, fields, "type")
		assert.Contains(t, fields, "status")
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, _, err := toBusUpsertJob(tenantID, "partnerboard", "ext-1", []byte(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestFormatSalary(t *testing.T) {
	min, max := 500000.0, 900000.5

	tests := []struct {
		name string
		job  jobbus.Job
		want string
	}{
		{"hidden", jobbus.Job{SalaryMin: &min, SalaryMax: &max}, ""},
		{"no amounts", jobbus.Job{ShowSalary: true}, ""},
		{
			"full range",
			jobbus.Job{ShowSalary: true, SalaryMin: &min, SalaryMax: &max, SalaryCurrency: "XOF", SalaryPeriod: "month"},
			"500000 - 900000.50 XOF / month",
		},
		{
			"min only",
			jobbus.Job{ShowSalary: true, SalaryMin: &min, SalaryCurrency: "XOF"},
			"From 500000 XOF",
		},
		{
			"max only",
			jobbus.Job{ShowSalary: true, SalaryMax: &max},
			"Up to 900000.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSalary(tt.job))
		})
	}
}

func TestParseListParams(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/public/jobs?tenant_id="+tenantID.String()+"&type=full_time&featured_only=true&location=Dakar", nil)

		lp, fields := parseListParams(r)
		assert.Empty(t, fields)
		require.NotNil(t, lp.filter.TenantID)
		assert.Equal(t, tenantID, *lp.filter.TenantID)
		require.NotNil(t, lp.filter.Type)
		require.NotNil(t, lp.filter.Featured)
		require.NotNil(t, lp.filter.Location)
	})

	t.Run("featured_only false leaves filter unset", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/public/jobs?tenant_id="+tenantID.String()+"&featured_only=false", nil)

		lp, fields := parseListParams(r)
		assert.Empty(t, fields)
		assert.Nil(t, lp.filter.Featured)
	})

	t.Run("missing tenant", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/public/jobs", nil)

		_, fields := parseListParams(r)
		assert.Contains(t, fields, "tenant_id")
	})

	t.Run("bad type", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/public/jobs?tenant_id="+tenantID.String()+"&type=gig", nil)

		_, fields := parseListParams(r)
		assert.Contains(t, fields, "type")
	})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type testServer struct {
	app       *fiber.App
	jobs      *fakeJobRepo
	apps      *fakeAppRepo
	screening *fakeScreening
	worker    *fakeWorker
	questions *fakeQuestions
	parser    *fakeJobParser
	job       *models.Job
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	job := &models.Job{
		ID:                uuid.New(),
		Title:             "Front Desk Agent",
		Description:       "Greet guests.",
		IsActive:          true,
		ApplicationMethod: models.ApplicationMethodEnabled,
	}

	s := &testServer{
		jobs: &fakeJobRepo{jobs: map[uuid.UUID]*models.Job{job.ID: job}},
		apps: newFakeAppRepo(),
		screening: &fakeScreening{fn: func(context.Context, uuid.UUID) (*models.AIScreeningAnalysis, error) {
			return services.CombineAnalyses(nil, &models.CoverLetterAnalysis{
				QuantifiableAchievements: models.EvaluationCriterion{Score: 90, Justification: "metrics"},
			}), nil
		}},
		worker:    &fakeWorker{},
		questions: &fakeQuestions{questions: []string{"Why hospitality?"}},
		parser: &fakeJobParser{draft: &models.JobDraft{
			Title:             "Night Auditor",
			Location:          "Santa Fe, NM",
			City:              "Santa Fe",
			State:             "NM",
			Description:       "Balance the ledger overnight.",
			ApplicationMethod: models.ApplicationMethodEnabled,
		}},
		job:       job,
		uploadDir: t.TempDir(),
	}

	storage := services.NewStorageService(s.uploadDir)
	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(s.app, Handlers{
		Jobs:         NewJobHandler(s.jobs, services.NewExportService(s.jobs, s.apps), storage, s.parser, 10<<20),
		Applications: NewApplicationHandler(s.jobs, s.apps, storage, 10<<20, nil),
		Screening:    NewScreeningHandler(s.apps, s.screening, s.worker, &fakeSummarizer{summary: "resume text"}, s.questions),
	})

	return s
}

func (s *testServer) addApplication(status models.ScreeningStatus) *models.Application {
	app := &models.Application{
		ID:              uuid.New(),
		JobID:           s.job.ID,
		FirstName:       "Sam",
		LastName:        "Lee",
		CoverLetter:     "I ran the night shift.",
		Status:          models.ApplicationSubmitted,
		ScreeningStatus: status,
	}
	_ = s.apps.Create(context.Background(), app)
	return app
}

func (s *testServer) submitPath() string {
	return "/api/v1/jobs/" + s.job.ID.String() + "/applications"
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	return resp, decoded
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleScreen_Success(t *testing.T) {
	s := newTestServer(t)
	app := s.addApplication(models.ScreeningPending)

	resp, body := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/applications/"+app.ID.String()+"/screen", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", body["screening_status"])
	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, float64(18), analysis["overall_score"])
	assert.Len(t, body["degraded_fields"], 3)
}

func TestHandleScreen_CompletedRequiresForce(t *testing.T) {
	s := newTestServer(t)
	app := s.addApplication(models.ScreeningCompleted)
	path := "/api/v1/admin/applications/" + app.ID.String() + "/screen"

	resp, _ := s.do(t, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Zero(t, s.screening.calls)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodPost, path+"?force=true", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, s.screening.calls)
}

func TestHandleScreen_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"in progress", fmt.Errorf("%w: app", services.ErrScreeningInProgress), fiber.StatusConflict},
		{"fetch failure", fmt.Errorf("%w: gone", services.ErrFetchFailure), fiber.StatusBadGateway},
		{"not found", fmt.Errorf("%w: job", services.ErrNotFound), fiber.StatusNotFound},
		{"persistence", fmt.Errorf("%w: db", services.ErrPersistence), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			app := s.addApplication(models.ScreeningError)
			s.screening.fn = func(context.Context, uuid.UUID) (*models.AIScreeningAnalysis, error) {
				return nil, tt.err
			}

			resp, body := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/applications/"+app.ID.String()+"/screen", nil))

			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleScreen_BadID(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/applications/not-a-uuid/screen", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid application ID format", body["error"])

	resp, _ = s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/applications/"+uuid.NewString()+"/screen", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleScreenAsync(t *testing.T) {
	s := newTestServer(t)
	app := s.addApplication(models.ScreeningPending)
	path := "/api/v1/admin/applications/" + app.ID.String() + "/screen/async"

	resp, body := s.do(t, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "pending", body["screening_status"])
	assert.Equal(t, []uuid.UUID{app.ID}, s.worker.enqueued)

	s.worker.err = services.ErrQueueFull
	resp, _ = s.do(t, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleInterviewQuestions(t *testing.T) {
	s := newTestServer(t)
	app := s.addApplication(models.ScreeningCompleted)
	path := "/api/v1/admin/applications/" + app.ID.String() + "/interview-questions"

	resp, body := s.do(t, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"Why hospitality?"}, body["questions"])
	assert.Equal(t, "I ran the night shift.", s.questions.gotLetter)
	assert.Equal(t, "resume text", s.questions.gotResume)

	s.questions.err = fmt.Errorf("%w: empty", services.ErrGenerationFailure)
	resp, _ = s.do(t, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestHandleUpdateStatus(t *testing.T) {
	s := newTestServer(t)
	app := s.addApplication(models.ScreeningCompleted)
	path := "/api/v1/admin/applications/" + app.ID.String() + "/status"

	resp, _ := s.do(t, jsonRequest(http.MethodPatch, path, `{"status": "promoted"}`))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := s.do(t, jsonRequest(http.MethodPatch, path, `{"status": "interviewing"}`))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "interviewing", body["status"])

	stored, err := s.apps.FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationInterviewing, stored.Status)
	assert.Equal(t, models.ScreeningCompleted, stored.ScreeningStatus)
}

func applicationForm(t *testing.T, path string, fields map[string]string, filename string) *http.Request {
	t.Helper()
	return uploadForm(t, path, "resume", fields, filename, []byte("%PDF-1.4 resume"))
}

func uploadForm(t *testing.T, path, fileField string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validApplicationFields() map[string]string {
	return map[string]string{
		"first_name":           "Ada",
		"last_name":            "Ng",
		"email":                "ada@example.com",
		"phone":                "555-0100",
		"cover_letter":         "I cut check-in time by 30%.",
		"available_start_date": "2026-11-01",
		"experience_years":     "3-5 years",
	}
}

func TestHandleSubmitApplication(t *testing.T) {
	s := newTestServer(t)

	req := applicationForm(t, s.submitPath(), validApplicationFields(), "cv.pdf")

	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "submitted", body["status"])
	assert.Equal(t, "pending", body["screening_status"])

	id, err := uuid.Parse(body["id"].(string))
	require.NoError(t, err)
	stored, err := s.apps.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, s.job.ID, stored.JobID)
	assert.Equal(t, "Front Desk Agent", stored.JobTitle)
	assert.Nil(t, stored.LinkedinURL)
	assert.True(t, strings.HasSuffix(stored.ResumeRef, ".pdf"))
}

func TestHandleSubmitApplication_Rejections(t *testing.T) {
	badEmail := validApplicationFields()
	badEmail["email"] = "not-an-email"

	tests := []struct {
		name     string
		fields   map[string]string
		filename string
	}{
		{"missing resume", validApplicationFields(), ""},
		{"unsupported resume type", validApplicationFields(), "cv.png"},
		{"invalid email", badEmail, "cv.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := applicationForm(t, s.submitPath(), tt.fields, tt.filename)

			resp, body := s.do(t, req)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
			assert.Empty(t, s.apps.apps)
		})
	}
}

func TestHandleSubmitApplication_JobClosed(t *testing.T) {
	s := newTestServer(t)
	s.job.ApplicationMethod = models.ApplicationMethodDisabled

	req := applicationForm(t, s.submitPath(), validApplicationFields(), "cv.pdf")

	resp, _ := s.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCreateJob(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/jobs", `{
		"title": "Sous Chef", "department": "Kitchen", "city": "Austin", "state": "TX",
		"remote_option": true, "remote_type": "anywhere",
		"description": "Run the line on busy nights.", "application_method": "enabled"
	}`))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/jobs", `{
		"title": "Sous Chef", "department": "Kitchen", "city": "Austin", "state": "TX",
		"remote_option": false,
		"description": "Run the line on busy nights.", "application_method": "unlisted"
	}`))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "unlisted", body["application_method"])
	assert.Len(t, s.jobs.jobs, 2)
}

func TestHandleParseJobDocument(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/admin/jobs/from-document"

	resp, body := s.do(t, uploadForm(t, path, "document", nil, "auditor.pdf", []byte("%PDF-1.4 posting")))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Night Auditor", body["title"])
	assert.Equal(t, "Santa Fe", body["city"])
	assert.Equal(t, "enabled", body["application_method"])
	assert.Equal(t, false, body["remote_option"])

	require.NotNil(t, s.parser.got)
	assert.Equal(t, services.MimePDF, s.parser.got.MimeType)
	assert.Equal(t, []byte("%PDF-1.4 posting"), s.parser.got.Data)
	assert.Len(t, s.jobs.jobs, 1)
}

func TestHandleParseJobDocument_Errors(t *testing.T) {
	path := "/api/v1/admin/jobs/from-document"

	t.Run("missing document", func(t *testing.T) {
		s := newTestServer(t)
		resp, _ := s.do(t, uploadForm(t, path, "document", map[string]string{"x": "y"}, "", nil))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unsupported type", func(t *testing.T) {
		s := newTestServer(t)
		resp, _ := s.do(t, uploadForm(t, path, "document", nil, "posting.png", []byte("png")))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, s.parser.got)
	})

	t.Run("model failure", func(t *testing.T) {
		s := newTestServer(t)
		s.parser.err = fmt.Errorf("%w: timeout", services.ErrAnalysisFailure)
		resp, body := s.do(t, uploadForm(t, path, "document", nil, "posting.docx", []byte("PK")))
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		assert.NotEmpty(t, body["error"])
	})
}

func TestHandleExportApplications(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/jobs/"+s.job.ID.String()+"/applications/export", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "front-desk-agent-applications.xlsx")
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, StatusForError(services.ErrValidation))
	assert.Equal(t, fiber.StatusNotFound, StatusForError(fmt.Errorf("x: %w", repositories.ErrRecordNotFound)))
	assert.Equal(t, fiber.StatusConflict, StatusForError(services.ErrScreeningInProgress))
	assert.Equal(t, fiber.StatusBadGateway, StatusForError(services.ErrAnalysisFailure))
	assert.Equal(t, fiber.StatusTeapot, StatusForError(fiber.NewError(fiber.StatusTeapot)))
	assert.Equal(t, fiber.StatusInternalServerError, StatusForError(errors.New("boom")))
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
)

// MockGemini implements GeminiService for testing
type MockGemini struct {
	GenerateEmbeddingFunc func(ctx context.Context, text string) ([]float32, error)
	GenerateJSONFunc      func(ctx context.Context, req GenerateRequest) (string, error)
}

func (m *MockGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.GenerateEmbeddingFunc != nil {
		return m.GenerateEmbeddingFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *MockGemini) GenerateJSON(ctx context.Context, req GenerateRequest) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, req)
	}
	return "{}", nil
}

func (m *MockGemini) GenerateJSONWithRetry(ctx context.Context, req GenerateRequest, _ int) (string, error) {
	return m.GenerateJSON(ctx, req)
}

func (m *MockGemini) Model() string {
	return "mock-model"
}

// MockEvaluator implements CriterionEvaluator for testing
type MockEvaluator struct {
	EvaluateFunc func(ctx context.Context, req EvaluationRequest, out any) error
	mu           sync.Mutex
	Requests     []EvaluationRequest
}

func (m *MockEvaluator) Evaluate(ctx context.Context, req EvaluationRequest, out any) error {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, req, out)
	}
	return nil
}

func (m *MockEvaluator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

type MockResumeAnalyzer struct {
	AnalyzeResumeFunc func(ctx context.Context, resume Document, jobDescription, experienceYears string) (*models.ResumeAnalysis, error)
}

func (m *MockResumeAnalyzer) AnalyzeResume(ctx context.Context, resume Document, jobDescription, experienceYears string) (*models.ResumeAnalysis, error) {
	return m.AnalyzeResumeFunc(ctx, resume, jobDescription, experienceYears)
}

type MockCoverLetterAnalyzer struct {
	AnalyzeCoverLetterFunc func(ctx context.Context, coverLetter, jobDescription string) (*models.CoverLetterAnalysis, error)
}

func (m *MockCoverLetterAnalyzer) AnalyzeCoverLetter(ctx context.Context, coverLetter, jobDescription string) (*models.CoverLetterAnalysis, error) {
	return m.AnalyzeCoverLetterFunc(ctx, coverLetter, jobDescription)
}

type MockFetcher struct {
	FetchFunc func(ctx context.Context, ref string) (*Document, error)
}

func (m *MockFetcher) Fetch(ctx context.Context, ref string) (*Document, error) {
	return m.FetchFunc(ctx, ref)
}

type MockCandidateIndex struct {
	IndexCandidateFunc  func(ctx context.Context, applicationID, jobID uuid.UUID, jobTitle string, analysis *models.AIScreeningAnalysis) error
	RemoveCandidateFunc func(ctx context.Context, applicationID uuid.UUID) error
}

func (m *MockCandidateIndex) IndexCandidate(ctx context.Context, applicationID, jobID uuid.UUID, jobTitle string, analysis *models.AIScreeningAnalysis) error {
	if m.IndexCandidateFunc != nil {
		return m.IndexCandidateFunc(ctx, applicationID, jobID, jobTitle, analysis)
	}
	return nil
}

func (m *MockCandidateIndex) SearchCandidates(context.Context, string, uuid.UUID, int) ([]CandidateMatch, error) {
	return nil, nil
}

func (m *MockCandidateIndex) RemoveCandidate(ctx context.Context, applicationID uuid.UUID) error {
	if m.RemoveCandidateFunc != nil {
		return m.RemoveCandidateFunc(ctx, applicationID)
	}
	return nil
}

type MockScreening struct {
	ScreenApplicationFunc func(ctx context.Context, applicationID uuid.UUID) (*models.AIScreeningAnalysis, error)
}

func (m *MockScreening) ScreenApplication(ctx context.Context, applicationID uuid.UUID) (*models.AIScreeningAnalysis, error) {
	return m.ScreenApplicationFunc(ctx, applicationID)
}

// memoryCache is an in-process Cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

// memoryJobRepo implements repositories.JobRepository over a map.
type memoryJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func (r *memoryJobRepo) Create(_ context.Context, job *models.Job) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *memoryJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, repositories.ErrRecordNotFound)
	}
	cp := *job
	return &cp, nil
}

func (r *memoryJobRepo) ListOpen(context.Context) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.IsActive {
			out = append(out, *j)
		}
	}
	return out, nil
}

// memoryAppRepo implements repositories.ApplicationRepository over a map and
// follows the same conditional rules as the gorm store.
type memoryAppRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.Application

	findErr   error
	updateErr func(data *repositories.ScreeningUpdateData) error
	updates   []repositories.ScreeningUpdateData
}

func newMemoryAppRepo(apps ...*models.Application) *memoryAppRepo {
	r := &memoryAppRepo{apps: map[uuid.UUID]*models.Application{}}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *memoryAppRepo) get(id uuid.UUID) *models.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.apps[id]
	return &cp
}

func (r *memoryAppRepo) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return nil
}

func (r *memoryAppRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	app, ok := r.apps[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	cp := *app
	return &cp, nil
}

func (r *memoryAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memoryAppRepo) FindByScreeningStatus(_ context.Context, status models.ScreeningStatus, limit int) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.ScreeningStatus == status && (limit <= 0 || len(out) < limit) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memoryAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	app.Status = status
	return nil
}

func (r *memoryAppRepo) BeginScreening(_ context.Context, id uuid.UUID, staleBefore time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	if app.ScreeningStatus == models.ScreeningInProgress &&
		app.ScreeningStartedAt != nil && !app.ScreeningStartedAt.Before(staleBefore) {
		return fmt.Errorf("application %s: %w", id, repositories.ErrScreeningLocked)
	}
	now := time.Now()
	app.ScreeningStatus = models.ScreeningInProgress
	app.ScreeningStartedAt = &now
	app.ScreeningError = nil
	app.AIAnalysis = nil
	return nil
}

func (r *memoryAppRepo) UpdateScreening(_ context.Context, id uuid.UUID, data *repositories.ScreeningUpdateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, *data)
	if r.updateErr != nil {
		if err := r.updateErr(data); err != nil {
			return err
		}
	}
	app, ok := r.apps[id]
	if !ok {
		return fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	if data.ScreeningStatus != nil {
		app.ScreeningStatus = *data.ScreeningStatus
	}
	if data.AIAnalysis != nil || data.ClearAnalysis {
		app.AIAnalysis = data.AIAnalysis
	}
	if data.ScreeningError != nil || data.ClearError {
		app.ScreeningError = data.ScreeningError
	}
	return nil
}

package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
	"github.com/PathSynch-CEO/careers-page-v2/internal/services"
)

type fakeJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, repositories.ErrRecordNotFound)
	}
	return job, nil
}

func (r *fakeJobRepo) ListOpen(context.Context) ([]models.Job, error) {
	var out []models.Job
	for _, j := range r.jobs {
		if j.IsActive && j.ApplicationMethod == models.ApplicationMethodEnabled {
			out = append(out, *j)
		}
	}
	return out, nil
}

type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.Application
}

func newFakeAppRepo(apps ...*models.Application) *fakeAppRepo {
	r := &fakeAppRepo{apps: map[uuid.UUID]*models.Application{}}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *fakeAppRepo) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return nil
}

func (r *fakeAppRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	cp := *app
	return &cp, nil
}

func (r *fakeAppRepo) ListByJob(context.Context, uuid.UUID) ([]models.Application, error) {
	return nil, nil
}

func (r *fakeAppRepo) FindByScreeningStatus(context.Context, models.ScreeningStatus, int) ([]models.Application, error) {
	return nil, nil
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return fmt.Errorf("application %s: %w", id, repositories.ErrRecordNotFound)
	}
	app.Status = status
	return nil
}

func (r *fakeAppRepo) BeginScreening(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func (r *fakeAppRepo) UpdateScreening(context.Context, uuid.UUID, *repositories.ScreeningUpdateData) error {
	return nil
}

type fakeScreening struct {
	calls int
	fn    func(ctx context.Context, id uuid.UUID) (*models.AIScreeningAnalysis, error)
}

func (f *fakeScreening) ScreenApplication(ctx context.Context, id uuid.UUID) (*models.AIScreeningAnalysis, error) {
	f.calls++
	return f.fn(ctx, id)
}

type fakeWorker struct {
	enqueued []uuid.UUID
	err      error
}

func (w *fakeWorker) Start(context.Context) {}
func (w *fakeWorker) Stop()                 {}
func (w *fakeWorker) EnqueueJob(id uuid.UUID) error {
	if w.err != nil {
		return w.err
	}
	w.enqueued = append(w.enqueued, id)
	return nil
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (s *fakeSummarizer) SummarizeResume(context.Context, *models.Application) (string, error) {
	return s.summary, s.err
}

type fakeQuestions struct {
	questions []string
	err       error
	gotLetter string
	gotResume string
}

func (q *fakeQuestions) GenerateInterviewQuestions(_ context.Context, coverLetter, resumeSummary string) ([]string, error) {
	q.gotLetter, q.gotResume = coverLetter, resumeSummary
	return q.questions, q.err
}

type fakeJobParser struct {
	draft *models.JobDraft
	err   error
	got   *services.Document
}

func (p *fakeJobParser) ParseJobDescription(_ context.Context, doc services.Document) (*models.JobDraft, error) {
	p.got = &doc
	return p.draft, p.err
}

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
)

// ErrQueueFull is returned by EnqueueJob when the queue has no free slot.
var ErrQueueFull = errors.New("screening queue is full")

// ErrWorkerStopped is returned by EnqueueJob after Stop.
var ErrWorkerStopped = errors.New("worker stopped")

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(applicationID uuid.UUID) error
}

type WorkerOptions struct {
	Concurrency  int
	QueueSize    int
	AutoScreen   bool
	PollInterval time.Duration
}

type worker struct {
	appRepo   repositories.ApplicationRepository
	screening ScreeningService
	opts      WorkerOptions
	jobQueue  chan uuid.UUID
	wg        sync.WaitGroup
	stopChan  chan struct{}
	stopOnce  sync.Once
	log       *zap.Logger

	mu     sync.Mutex
	queued map[uuid.UUID]struct{}
}

func NewWorker(
	appRepo repositories.ApplicationRepository,
	screening ScreeningService,
	opts WorkerOptions,
	log *zap.Logger,
) Worker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 100
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}

	return &worker{
		appRepo:   appRepo,
		screening: screening,
		opts:      opts,
		jobQueue:  make(chan uuid.UUID, opts.QueueSize),
		stopChan:  make(chan struct{}),
		queued:    make(map[uuid.UUID]struct{}),
		log:       logger.OrNop(log),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("🚀 Starting worker", zap.Int("concurrency", w.opts.Concurrency))

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	if w.opts.AutoScreen {
		w.wg.Add(1)
		go w.pollPendingApplications(ctx)
	}

	w.log.Info("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker. An application already waiting in the queue
// is not added twice.
func (w *worker) EnqueueJob(applicationID uuid.UUID) error {
	select {
	case <-w.stopChan:
		return ErrWorkerStopped
	default:
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.queued[applicationID]; ok {
		return nil
	}

	select {
	case w.jobQueue <- applicationID:
		w.queued[applicationID] = struct{}{}
		w.log.Debug("📥 Application enqueued", logger.ApplicationID(applicationID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			log.Debug("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case applicationID := <-w.jobQueue:
			// Shutdown stops intake only; a started run finishes and records
			// its result, and Stop waits for it.
			w.screen(context.WithoutCancel(ctx), log, applicationID)
		}
	}
}

// screen runs one application. It stays marked as queued until the run ends
// so the poller cannot add it again while it is still pending.
func (w *worker) screen(ctx context.Context, log *zap.Logger, applicationID uuid.UUID) {
	defer func() {
		w.mu.Lock()
		delete(w.queued, applicationID)
		w.mu.Unlock()
	}()

	log.Info("👷 Screening application", logger.ApplicationID(applicationID))
	analysis, err := w.screening.ScreenApplication(ctx, applicationID)
	if err != nil {
		log.Warn("❌ Screening failed", logger.ApplicationID(applicationID), zap.Error(err))
		return
	}
	log.Info("✅ Screening finished",
		logger.ApplicationID(applicationID),
		zap.Int("overall_score", analysis.OverallScore))
}

func (w *worker) pollPendingApplications(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	w.log.Info("🔄 Starting pending applications poller", zap.Duration("interval", w.opts.PollInterval))

	for {
		select {
		case <-w.stopChan:
			w.log.Info("🔄 Pending applications poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.enqueuePending(ctx)
		}
	}
}

func (w *worker) enqueuePending(ctx context.Context) {
	pending, err := w.appRepo.FindByScreeningStatus(ctx, models.ScreeningPending, w.opts.QueueSize)
	if err != nil {
		w.log.Warn("⚠️  Failed to fetch pending applications", zap.Error(err))
		return
	}

	if len(pending) > 0 {
		w.log.Info("📋 Found pending applications", zap.Int("count", len(pending)))
	}

	for _, app := range pending {
		if err := w.EnqueueJob(app.ID); err != nil {
			w.log.Debug("pending application not enqueued", logger.ApplicationID(app.ID), zap.Error(err))
			return
		}
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
)

// StatusTracker owns the screening_status lifecycle of an application:
// pending -> isScreening -> completed | error.
type StatusTracker interface {
	// Begin moves the application to isScreening and clears any earlier
	// analysis. It refuses with ErrScreeningInProgress while another
	// non-stale run holds the application.
	Begin(ctx context.Context, id uuid.UUID) error
	// Complete writes completed together with the analysis in one update.
	Complete(ctx context.Context, id uuid.UUID, analysis *models.AIScreeningAnalysis) error
	// Fail writes error and leaves ai_analysis empty. Failures are logged
	// and returned for the caller to ignore.
	Fail(ctx context.Context, id uuid.UUID, cause error) error
}

type statusTracker struct {
	appRepo    repositories.ApplicationRepository
	staleAfter time.Duration
	now        func() time.Time
	log        *zap.Logger
}

func NewStatusTracker(appRepo repositories.ApplicationRepository, staleAfter time.Duration, log *zap.Logger) StatusTracker {
	return &statusTracker{
		appRepo:    appRepo,
		staleAfter: staleAfter,
		now:        time.Now,
		log:        logger.OrNop(log),
	}
}

func (t *statusTracker) Begin(ctx context.Context, id uuid.UUID) error {
	staleBefore := t.now().Add(-t.staleAfter)

	err := t.appRepo.BeginScreening(ctx, id, staleBefore)
	switch {
	case err == nil:
		t.log.Debug("screening started", logger.ApplicationID(id))
		return nil
	case errors.Is(err, repositories.ErrRecordNotFound):
		return fmt.Errorf("%w: application %s", ErrNotFound, id)
	case errors.Is(err, repositories.ErrScreeningLocked):
		return fmt.Errorf("%w: application %s", ErrScreeningInProgress, id)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}

func (t *statusTracker) Complete(ctx context.Context, id uuid.UUID, analysis *models.AIScreeningAnalysis) error {
	status := models.ScreeningCompleted
	err := t.appRepo.UpdateScreening(ctx, id, &repositories.ScreeningUpdateData{
		ScreeningStatus: &status,
		AIAnalysis:      analysis,
		ClearError:      true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (t *statusTracker) Fail(ctx context.Context, id uuid.UUID, cause error) error {
	status := models.ScreeningError
	message := "screening aborted"
	if cause != nil {
		message = cause.Error()
	}

	err := t.appRepo.UpdateScreening(ctx, id, &repositories.ScreeningUpdateData{
		ScreeningStatus: &status,
		ClearAnalysis:   true,
		ScreeningError:  &message,
	})
	if err != nil {
		t.log.Error("failed to record screening error status",
			logger.ApplicationID(id),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	t.log.Info("screening marked as failed", logger.ApplicationID(id), zap.String("reason", message))
	return nil
}

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

type ScreeningService interface {
	ScreenApplication(ctx context.Context, applicationID uuid.UUID) (*models.AIScreeningAnalysis, error)
}

type screeningService struct {
	appRepo             repositories.ApplicationRepository
	jobRepo             repositories.JobRepository
	resumes             ResumeFetcher
	resumeAnalyzer      ResumeAnalyzer
	coverLetterAnalyzer CoverLetterAnalyzer
	tracker             StatusTracker
	index               CandidateIndex
	log                 *zap.Logger
}

// NewScreeningService wires the screening pipeline. index may be nil, in
// which case screened candidates are not indexed for search.
func NewScreeningService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	resumes ResumeFetcher,
	resumeAnalyzer ResumeAnalyzer,
	coverLetterAnalyzer CoverLetterAnalyzer,
	tracker StatusTracker,
	index CandidateIndex,
	log *zap.Logger,
) ScreeningService {
	return &screeningService{
		appRepo:             appRepo,
		jobRepo:             jobRepo,
		resumes:             resumes,
		resumeAnalyzer:      resumeAnalyzer,
		coverLetterAnalyzer: coverLetterAnalyzer,
		tracker:             tracker,
		index:               index,
		log:                 logger.OrNop(log),
	}
}

// ScreenApplication scores one application and persists the result.
//
// Analyzer failures degrade the affected criteria to placeholders and the
// run still completes. Failures before both analyzers have settled leave the
// application in the error state with no analysis.
func (s *screeningService) ScreenApplication(ctx context.Context, applicationID uuid.UUID) (analysis *models.AIScreeningAnalysis, err error) {
	if applicationID == uuid.Nil {
		return nil, fmt.Errorf("%w: application id is required", ErrValidation)
	}

	log := s.log.With(logger.ApplicationID(applicationID))
	start := time.Now()

	if err := s.tracker.Begin(ctx, applicationID); err != nil {
		return nil, err
	}

	settled := false
	defer func() {
		if settled {
			return
		}
		log.Warn("screening aborted", zap.Error(err))
		// The run context may already be cancelled; the error status must still land.
		cleanupCtx := context.WithoutCancel(ctx)
		_ = s.tracker.Fail(cleanupCtx, applicationID, err)
		s.removeCandidate(cleanupCtx, applicationID, log)
	}()

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	log = log.With(logger.JobID(job.ID))

	resume, err := s.resumes.Fetch(ctx, app.ResumeRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	if len(resume.Data) == 0 {
		return nil, fmt.Errorf("%w: resume %s is empty", ErrFetchFailure, app.ResumeRef)
	}

	resumeOutcome, coverLetterOutcome := SettleBoth(ctx,
		func(ctx context.Context) (*models.ResumeAnalysis, error) {
			return s.resumeAnalyzer.AnalyzeResume(ctx, *resume, job.Description, app.ExperienceYears)
		},
		func(ctx context.Context) (*models.CoverLetterAnalysis, error) {
			return s.coverLetterAnalyzer.AnalyzeCoverLetter(ctx, app.CoverLetter, job.Description)
		},
	)
	if resumeOutcome.Err != nil {
		log.Warn("resume analysis failed, using placeholder criteria",
			logger.Task(TaskResumeAnalysis), zap.Error(resumeOutcome.Err))
	}
	if coverLetterOutcome.Err != nil {
		log.Warn("cover letter analysis failed, using placeholder criterion",
			logger.Task(TaskCoverLetterAnalysis), zap.Error(coverLetterOutcome.Err))
	}

	// A cancelled run is not a screened candidate with zero scores.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("screening interrupted: %w", ctxErr)
	}

	analysis = CombineAnalyses(resumeOutcome.Value, coverLetterOutcome.Value)
	settled = true

	if err := s.tracker.Complete(ctx, applicationID, analysis); err != nil {
		// The caller still gets the analysis; the stored status stays isScreening
		// until a later run or the stale timeout releases it.
		log.Error("failed to persist completed screening", zap.Error(err))
	}

	log.Info("screening completed",
		zap.Int("overall_score", analysis.OverallScore),
		zap.Strings("degraded_fields", DegradedFields(analysis)),
		zap.Duration("elapsed", time.Since(start)))

	s.indexCandidate(ctx, app, job, analysis, log)

	return analysis, nil
}

func (s *screeningService) indexCandidate(ctx context.Context, app *models.Application, job *models.Job, analysis *models.AIScreeningAnalysis, log *zap.Logger) {
	if s.index == nil {
		return
	}

	if err := s.index.IndexCandidate(ctx, app.ID, job.ID, job.Title, analysis); err != nil {
		log.Warn("failed to index candidate", zap.Error(err))
	}
}

// removeCandidate drops a stale search entry once the stored analysis is gone.
func (s *screeningService) removeCandidate(ctx context.Context, applicationID uuid.UUID, log *zap.Logger) {
	if s.index == nil {
		return
	}

	if err := s.index.RemoveCandidate(ctx, applicationID); err != nil {
		log.Warn("failed to remove candidate from index", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

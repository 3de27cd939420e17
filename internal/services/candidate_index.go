package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

const defaultSearchLimit = 10

// CandidateIndex keeps screened candidates searchable by skills and profile.
type CandidateIndex interface {
	IndexCandidate(ctx context.Context, applicationID, jobID uuid.UUID, jobTitle string, analysis *models.AIScreeningAnalysis) error
	SearchCandidates(ctx context.Context, query string, jobID uuid.UUID, limit int) ([]CandidateMatch, error)
	RemoveCandidate(ctx context.Context, applicationID uuid.UUID) error
}

type candidateIndex struct {
	gemini  GeminiService
	qdrant  QdrantService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewCandidateIndex(gemini GeminiService, qdrant QdrantService, log *zap.Logger) CandidateIndex {
	return &candidateIndex{
		gemini:  gemini,
		qdrant:  qdrant,
		prompts: NewPromptBuilder(),
		log:     logger.OrNop(log),
	}
}

func (c *candidateIndex) IndexCandidate(ctx context.Context, applicationID, jobID uuid.UUID, jobTitle string, analysis *models.AIScreeningAnalysis) error {
	if analysis == nil {
		return fmt.Errorf("%w: analysis is required", ErrValidation)
	}

	profile := c.prompts.BuildCandidateProfile(jobTitle, analysis)
	embedding, err := c.gemini.GenerateEmbedding(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to embed candidate profile: %w", err)
	}

	err = c.qdrant.UpsertCandidate(ctx, CandidatePoint{
		ApplicationID: applicationID,
		JobID:         jobID,
		OverallScore:  analysis.OverallScore,
		Skills:        analysis.ExtractedSkills,
		Profile:       profile,
		Embedding:     embedding,
	})
	if err != nil {
		return err
	}

	c.log.Debug("candidate indexed", logger.ApplicationID(applicationID), logger.JobID(jobID))
	return nil
}

// SearchCandidates ranks indexed candidates by similarity to query. A nil
// jobID searches across all postings.
func (c *candidateIndex) SearchCandidates(ctx context.Context, query string, jobID uuid.UUID, limit int) ([]CandidateMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	embedding, err := c.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}

	var jobFilter string
	if jobID != uuid.Nil {
		jobFilter = jobID.String()
	}

	return c.qdrant.SearchCandidates(ctx, embedding, jobFilter, limit)
}

func (c *candidateIndex) RemoveCandidate(ctx context.Context, applicationID uuid.UUID) error {
	return c.qdrant.DeleteCandidate(ctx, applicationID)
}

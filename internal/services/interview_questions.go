package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
)

const TaskInterviewQuestions = "interview_questions"

type InterviewQuestionGenerator interface {
	GenerateInterviewQuestions(ctx context.Context, coverLetter, resumeSummary string) ([]string, error)
}

type interviewQuestionGenerator struct {
	evaluator CriterionEvaluator
	cache     Cache
	prompts   *PromptBuilder
	log       *zap.Logger
}

// NewInterviewQuestionGenerator builds the generator. cache may be nil.
func NewInterviewQuestionGenerator(evaluator CriterionEvaluator, cache Cache, log *zap.Logger) InterviewQuestionGenerator {
	return &interviewQuestionGenerator{
		evaluator: evaluator,
		cache:     cache,
		prompts:   NewPromptBuilder(),
		log:       logger.OrNop(log),
	}
}

type interviewQuestionsResult struct {
	Questions []string `json:"questions"`
}

// GenerateInterviewQuestions returns at least one question or an error wrapping
// ErrGenerationFailure. Nothing is persisted.
func (g *interviewQuestionGenerator) GenerateInterviewQuestions(ctx context.Context, coverLetter, resumeSummary string) ([]string, error) {
	if strings.TrimSpace(coverLetter) == "" && strings.TrimSpace(resumeSummary) == "" {
		return nil, fmt.Errorf("%w: cover letter or resume summary is required", ErrValidation)
	}

	key := interviewQuestionsCacheKey(coverLetter, resumeSummary)
	if g.cache != nil {
		var cached interviewQuestionsResult
		hit, err := g.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			g.log.Debug("interview questions cache read failed", zap.Error(err))
		}
		if hit && len(cached.Questions) > 0 {
			return cached.Questions, nil
		}
	}

	var result interviewQuestionsResult
	err := g.evaluator.Evaluate(ctx, EvaluationRequest{
		Task:   TaskInterviewQuestions,
		Prompt: g.prompts.BuildInterviewQuestionsPrompt(coverLetter, resumeSummary),
		Schema: interviewQuestionsSchema,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	questions := make([]string, 0, len(result.Questions))
	for _, q := range result.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions returned", ErrGenerationFailure)
	}

	if g.cache != nil {
		if err := g.cache.SetJSON(ctx, key, interviewQuestionsResult{Questions: questions}, 0); err != nil {
			g.log.Debug("interview questions cache write failed", zap.Error(err))
		}
	}

	return questions, nil
}

func interviewQuestionsCacheKey(coverLetter, resumeSummary string) string {
	sum := sha256.Sum256([]byte(coverLetter + "\x00" + resumeSummary))
	return "interview_questions:" + hex.EncodeToString(sum[:])
}

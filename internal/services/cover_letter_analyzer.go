package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

const TaskCoverLetterAnalysis = "cover_letter_analysis"

type CoverLetterAnalyzer interface {
	AnalyzeCoverLetter(ctx context.Context, coverLetter, jobDescription string) (*models.CoverLetterAnalysis, error)
}

type coverLetterAnalyzer struct {
	evaluator CriterionEvaluator
	prompts   *PromptBuilder
}

func NewCoverLetterAnalyzer(evaluator CriterionEvaluator) CoverLetterAnalyzer {
	return &coverLetterAnalyzer{
		evaluator: evaluator,
		prompts:   NewPromptBuilder(),
	}
}

func (a *coverLetterAnalyzer) AnalyzeCoverLetter(ctx context.Context, coverLetter, jobDescription string) (*models.CoverLetterAnalysis, error) {
	if strings.TrimSpace(coverLetter) == "" {
		return nil, fmt.Errorf("%w: cover letter is required", ErrValidation)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrValidation)
	}

	var analysis models.CoverLetterAnalysis
	err := a.evaluator.Evaluate(ctx, EvaluationRequest{
		Task:   TaskCoverLetterAnalysis,
		Prompt: a.prompts.BuildCoverLetterAnalysisPrompt(coverLetter, jobDescription),
		Schema: coverLetterAnalysisSchema,
	}, &analysis)
	if err != nil {
		return nil, err
	}

	return &analysis, nil
}

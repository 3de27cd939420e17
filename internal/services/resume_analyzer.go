package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

const TaskResumeAnalysis = "resume_analysis"

type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, resume Document, jobDescription, experienceYears string) (*models.ResumeAnalysis, error)
}

type resumeAnalyzer struct {
	evaluator CriterionEvaluator
	prompts   *PromptBuilder
}

func NewResumeAnalyzer(evaluator CriterionEvaluator) ResumeAnalyzer {
	return &resumeAnalyzer{
		evaluator: evaluator,
		prompts:   NewPromptBuilder(),
	}
}

// AnalyzeResume returns all three resume criteria and the skill list, or an error.
func (a *resumeAnalyzer) AnalyzeResume(ctx context.Context, resume Document, jobDescription, experienceYears string) (*models.ResumeAnalysis, error) {
	if len(resume.Data) == 0 {
		return nil, fmt.Errorf("%w: resume document is empty", ErrValidation)
	}
	if !IsSupportedResumeType(resume.MimeType) {
		return nil, fmt.Errorf("%w: unsupported resume media type %q", ErrValidation, resume.MimeType)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", ErrValidation)
	}
	if strings.TrimSpace(experienceYears) == "" {
		return nil, fmt.Errorf("%w: experience band is required", ErrValidation)
	}

	var analysis models.ResumeAnalysis
	err := a.evaluator.Evaluate(ctx, EvaluationRequest{
		Task:     TaskResumeAnalysis,
		Prompt:   a.prompts.BuildResumeAnalysisPrompt(jobDescription, experienceYears),
		Document: &resume,
		Schema:   resumeAnalysisSchema,
	}, &analysis)
	if err != nil {
		return nil, err
	}

	if analysis.ExtractedSkills == nil {
		analysis.ExtractedSkills = []string{}
	}

	return &analysis, nil
}

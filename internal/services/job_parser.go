package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

const TaskJobDescriptionParsing = "job_description_parsing"

type JobDescriptionParser interface {
	ParseJobDescription(ctx context.Context, doc Document) (*models.JobDraft, error)
}

type jobDescriptionParser struct {
	evaluator CriterionEvaluator
	prompts   *PromptBuilder
}

func NewJobDescriptionParser(evaluator CriterionEvaluator) JobDescriptionParser {
	return &jobDescriptionParser{
		evaluator: evaluator,
		prompts:   NewPromptBuilder(),
	}
}

type parsedJobDescription struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ParseJobDescription extracts a job draft from a pdf, doc or docx posting
// with one model call. New drafts are public, on-site postings.
func (p *jobDescriptionParser) ParseJobDescription(ctx context.Context, doc Document) (*models.JobDraft, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("%w: job document is empty", ErrValidation)
	}
	switch doc.MimeType {
	case MimePDF, MimeDOC, MimeDOCX:
	default:
		return nil, fmt.Errorf("%w: unsupported job document media type %q", ErrValidation, doc.MimeType)
	}

	var parsed parsedJobDescription
	err := p.evaluator.Evaluate(ctx, EvaluationRequest{
		Task:     TaskJobDescriptionParsing,
		Prompt:   p.prompts.BuildJobDescriptionPrompt(),
		Document: &doc,
		Schema:   jobDescriptionSchema,
	}, &parsed)
	if err != nil {
		return nil, err
	}

	draft := &models.JobDraft{
		Title:             strings.TrimSpace(parsed.Title),
		Department:        strings.TrimSpace(parsed.Department),
		Location:          strings.TrimSpace(parsed.Location),
		Description:       strings.TrimSpace(parsed.Description),
		RemoteOption:      false,
		ApplicationMethod: models.ApplicationMethodEnabled,
	}
	if draft.Title == "" || draft.Description == "" {
		return nil, fmt.Errorf("%w: %s: title and description are required", ErrAnalysisFailure, TaskJobDescriptionParsing)
	}
	draft.City, draft.State = splitLocation(draft.Location)

	return draft, nil
}

// splitLocation splits "City, State" on its last comma. Anything without a
// comma is treated as a city.
func splitLocation(location string) (city, state string) {
	i := strings.LastIndex(location, ",")
	if i < 0 {
		return strings.TrimSpace(location), ""
	}
	return strings.TrimSpace(location[:i]), strings.TrimSpace(location[i+1:])
}

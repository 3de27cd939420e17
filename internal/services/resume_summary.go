package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PathSynch-CEO/careers-page-v2/internal/logger"
	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

const maxResumeSummaryRunes = 12000

// ResumeSummarizer produces the plain-text resume passed to the interview
// question generator.
type ResumeSummarizer interface {
	SummarizeResume(ctx context.Context, app *models.Application) (string, error)
}

type resumeSummarizer struct {
	resumes ResumeFetcher
	pdf     PDFParserService
	log     *zap.Logger
}

func NewResumeSummarizer(resumes ResumeFetcher, pdf PDFParserService, log *zap.Logger) ResumeSummarizer {
	return &resumeSummarizer{
		resumes: resumes,
		pdf:     pdf,
		log:     logger.OrNop(log),
	}
}

// SummarizeResume prefers the text of a PDF resume and falls back to the
// stored screening analysis.
func (s *resumeSummarizer) SummarizeResume(ctx context.Context, app *models.Application) (string, error) {
	log := s.log.With(logger.ApplicationID(app.ID))

	if text := s.resumeText(ctx, app, log); text != "" {
		return logger.Truncate(text, maxResumeSummaryRunes), nil
	}

	if app.AIAnalysis != nil {
		return SummarizeAnalysis(app.AIAnalysis), nil
	}

	return "", fmt.Errorf("%w: no resume text or screening analysis available", ErrValidation)
}

func (s *resumeSummarizer) resumeText(ctx context.Context, app *models.Application, log *zap.Logger) string {
	if app.ResumeRef == "" {
		return ""
	}

	doc, err := s.resumes.Fetch(ctx, app.ResumeRef)
	if err != nil {
		log.Warn("failed to fetch resume for summary", zap.Error(err))
		return ""
	}

	switch doc.MimeType {
	case MimeText:
		return CleanText(string(doc.Data))
	case MimePDF:
		text, err := s.pdf.ExtractText(doc.Data)
		if err != nil {
			log.Debug("resume text not extractable", zap.Error(err))
			return ""
		}
		return CleanText(text)
	default:
		return ""
	}
}

// SummarizeAnalysis renders a screening analysis as resume context.
func SummarizeAnalysis(analysis *models.AIScreeningAnalysis) string {
	var sb strings.Builder
	if len(analysis.ExtractedSkills) > 0 {
		sb.WriteString("Skills: " + strings.Join(analysis.ExtractedSkills, ", ") + "\n")
	}
	sb.WriteString("Role alignment: " + analysis.SkillsAndRoleAlignment.Justification + "\n")
	sb.WriteString("Experience: " + analysis.RelevantExperience.Justification + "\n")
	sb.WriteString("Education: " + analysis.Education.Justification + "\n")
	return sb.String()
}

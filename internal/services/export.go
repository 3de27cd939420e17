package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
	"github.com/PathSynch-CEO/careers-page-v2/internal/repositories"
)

const applicationsSheet = "Applications"

var applicationColumns = []string{
	"Application ID",
	"Name",
	"Email",
	"Experience",
	"Status",
	"Screening Status",
	"Overall Score",
	"Skills & Role Alignment",
	"Relevant Experience",
	"Education",
	"Quantifiable Achievements",
	"Skills",
	"Submitted",
}

type ExportService interface {
	// ExportJobApplications renders every application of a job as an xlsx
	// workbook and returns it with a suggested file name.
	ExportJobApplications(ctx context.Context, jobID uuid.UUID) (*bytes.Buffer, string, error)
}

type exportService struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
}

func NewExportService(jobRepo repositories.JobRepository, appRepo repositories.ApplicationRepository) ExportService {
	return &exportService{jobRepo: jobRepo, appRepo: appRepo}
}

func (s *exportService) ExportJobApplications(ctx context.Context, jobID uuid.UUID) (*bytes.Buffer, string, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	buf, err := BuildApplicationsWorkbook(job, apps)
	if err != nil {
		return nil, "", err
	}

	return buf, exportFilename(job), nil
}

// BuildApplicationsWorkbook writes one row per application, highest overall
// score first. Unscreened applications sort last with empty score cells.
func BuildApplicationsWorkbook(job *models.Job, apps []models.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(applicationColumns))
	for i, c := range applicationColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(applicationsSheet, "A1", &header); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(applicationColumns), 1)
	if err := f.SetCellStyle(applicationsSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	f.SetColWidth(applicationsSheet, "A", "A", 38)
	f.SetColWidth(applicationsSheet, "B", "C", 28)
	f.SetColWidth(applicationsSheet, "D", "K", 16)
	f.SetColWidth(applicationsSheet, "L", "L", 50)
	f.SetColWidth(applicationsSheet, "M", "M", 20)

	sorted := make([]models.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return overallScoreOf(&sorted[i]) > overallScoreOf(&sorted[j])
	})

	for i := range sorted {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := applicationRow(&sorted[i])
		if err := f.SetSheetRow(applicationsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if title := strings.TrimSpace(job.Title); title != "" {
		f.SetDocProps(&excelize.DocProperties{Title: title + " applications"})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func applicationRow(app *models.Application) []interface{} {
	row := []interface{}{
		app.ID.String(),
		app.FullName(),
		app.Email,
		app.ExperienceYears,
		string(app.Status),
		string(app.ScreeningStatus),
	}

	if a := app.AIAnalysis; a != nil {
		row = append(row,
			a.OverallScore,
			a.SkillsAndRoleAlignment.Score,
			a.RelevantExperience.Score,
			a.Education.Score,
			a.QuantifiableAchievements.Score,
			strings.Join(a.ExtractedSkills, ", "),
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	return append(row, app.CreatedAt.Format("2006-01-02 15:04"))
}

func overallScoreOf(app *models.Application) int {
	if app.AIAnalysis == nil {
		return -1
	}
	return app.AIAnalysis.OverallScore
}

func exportFilename(job *models.Job) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(job.Title))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = job.ID.String()
	}
	return slug + "-applications.xlsx"
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PathSynch-CEO/careers-page-v2/internal/models"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	FindByScreeningStatus(ctx context.Context, status models.ScreeningStatus, limit int) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	BeginScreening(ctx context.Context, id uuid.UUID, staleBefore time.Time) error
	UpdateScreening(ctx context.Context, id uuid.UUID, data *ScreeningUpdateData) error
}

// ScreeningUpdateData is a partial write of the screening fields. Nil
// pointers are left untouched; ClearAnalysis writes NULL to ai_analysis.
type ScreeningUpdateData struct {
	ScreeningStatus *models.ScreeningStatus
	AIAnalysis      *models.AIScreeningAnalysis
	ClearAnalysis   bool
	ScreeningError  *string
	ClearError      bool
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindByScreeningStatus(ctx context.Context, status models.ScreeningStatus, limit int) ([]models.Application, error) {
	var apps []models.Application
	query := r.db.WithContext(ctx).
		Where("screening_status = ?", status).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications by screening status: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// BeginScreening moves the application to isScreening with a conditional
// write. A run that is already in flight and started after staleBefore
// keeps the row untouched and yields ErrScreeningLocked.
func (r *applicationRepository) BeginScreening(ctx context.Context, id uuid.UUID, staleBefore time.Time) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Where("(screening_status <> ? OR screening_started_at IS NULL OR screening_started_at < ?)",
			models.ScreeningInProgress, staleBefore).
		Select("screening_status", "screening_started_at", "screening_error", "ai_analysis", "updated_at").
		Updates(&models.Application{
			ScreeningStatus:    models.ScreeningInProgress,
			ScreeningStartedAt: &now,
			UpdatedAt:          now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to begin screening: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check application: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("application %s: %w", id, ErrRecordNotFound)
	}

	return fmt.Errorf("application %s: %w", id, ErrScreeningLocked)
}

func (r *applicationRepository) UpdateScreening(ctx context.Context, id uuid.UUID, data *ScreeningUpdateData) error {
	columns := []interface{}{"updated_at"}
	values := &models.Application{UpdatedAt: time.Now()}

	if data.ScreeningStatus != nil {
		columns = append(columns, "screening_status")
		values.ScreeningStatus = *data.ScreeningStatus
	}
	if data.AIAnalysis != nil || data.ClearAnalysis {
		columns = append(columns, "ai_analysis")
		values.AIAnalysis = data.AIAnalysis
	}
	if data.ScreeningError != nil || data.ClearError {
		columns = append(columns, "screening_error")
		values.ScreeningError = data.ScreeningError
	}

	// Select with a struct keeps the jsonb serializer in play for ai_analysis.
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Select(columns[0], columns[1:]...).
		Updates(values)

	if result.Error != nil {
		return fmt.Errorf("failed to update screening: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

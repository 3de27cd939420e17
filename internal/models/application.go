package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the business pipeline stage, independent of screening.
type ApplicationStatus string

const (
	ApplicationSubmitted    ApplicationStatus = "submitted"
	ApplicationFeedback     ApplicationStatus = "feedback"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationOffer        ApplicationStatus = "offer"
	ApplicationHired        ApplicationStatus = "hired"
	ApplicationDisqualified ApplicationStatus = "disqualified"
)

type ScreeningStatus string

const (
	ScreeningPending    ScreeningStatus = "pending"
	ScreeningInProgress ScreeningStatus = "isScreening"
	ScreeningCompleted  ScreeningStatus = "completed"
	ScreeningError      ScreeningStatus = "error"
)

type Application struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID              uuid.UUID            `gorm:"type:uuid;not null;index" json:"job_id"`
	JobTitle           string               `gorm:"type:text" json:"job_title"`
	FirstName          string               `gorm:"type:text;not null" json:"first_name"`
	LastName           string               `gorm:"type:text;not null" json:"last_name"`
	Email              string               `gorm:"type:text;not null" json:"email"`
	Phone              string               `gorm:"type:text" json:"phone"`
	LinkedinURL        *string              `gorm:"type:text" json:"linkedin_url,omitempty"`
	PortfolioURL       *string              `gorm:"type:text" json:"portfolio_url,omitempty"`
	CoverLetter        string               `gorm:"type:text;not null" json:"cover_letter"`
	AvailableStartDate string               `gorm:"type:text" json:"available_start_date"`
	ExperienceYears    string               `gorm:"type:text;not null" json:"experience_years"`
	ResumeRef          string               `gorm:"type:text;not null" json:"resume_ref"`
	Status             ApplicationStatus    `gorm:"type:text;not null;default:'submitted'" json:"status"`
	ScreeningStatus    ScreeningStatus      `gorm:"type:text;not null;default:'pending';index" json:"screening_status"`
	ScreeningStartedAt *time.Time           `json:"screening_started_at,omitempty"`
	ScreeningError     *string              `gorm:"type:text" json:"screening_error,omitempty"`
	AIAnalysis         *AIScreeningAnalysis `gorm:"type:jsonb;serializer:json" json:"ai_analysis,omitempty"`
	CreatedAt          time.Time            `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationSubmitted, ApplicationFeedback, ApplicationInterviewing,
		ApplicationOffer, ApplicationHired, ApplicationDisqualified:
		return true
	}
	return false
}

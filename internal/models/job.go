package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationMethod string

const (
	ApplicationMethodEnabled      ApplicationMethod = "enabled"
	ApplicationMethodInternalOnly ApplicationMethod = "internal-only"
	ApplicationMethodUnlisted     ApplicationMethod = "unlisted"
	ApplicationMethodDisabled     ApplicationMethod = "disabled"
)

var remoteTypes = map[string]bool{
	"fully-remote-no-restrictions":  true,
	"fully-remote-chosen-locations": true,
	"hybrid":                        true,
}

func IsValidRemoteType(t string) bool {
	return remoteTypes[t]
}

type Job struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title             string            `gorm:"type:text;not null" json:"title"`
	Department        string            `gorm:"type:text" json:"department"`
	City              string            `gorm:"type:text" json:"city"`
	State             string            `gorm:"type:text" json:"state"`
	RemoteOption      bool              `gorm:"not null;default:false" json:"remote_option"`
	RemoteType        *string           `gorm:"type:text" json:"remote_type,omitempty"`
	Description       string            `gorm:"type:text;not null" json:"description"`
	IsActive          bool              `gorm:"not null;default:true" json:"is_active"`
	ApplicationMethod ApplicationMethod `gorm:"type:text;not null;default:'enabled'" json:"application_method"`
	CreatedAt         time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// AcceptsApplications reports whether the public form may submit to this job.
func (j *Job) AcceptsApplications() bool {
	return j.IsActive && (j.ApplicationMethod == ApplicationMethodEnabled || j.ApplicationMethod == ApplicationMethodUnlisted)
}

// JobDraft is a posting extracted from an uploaded document. It is returned
// for review and is not saved until an admin creates the job.
type JobDraft struct {
	Title             string            `json:"title"`
	Department        string            `json:"department"`
	Location          string            `json:"location"`
	City              string            `json:"city"`
	State             string            `json:"state"`
	Description       string            `json:"description"`
	RemoteOption      bool              `json:"remote_option"`
	ApplicationMethod ApplicationMethod `json:"application_method"`
}

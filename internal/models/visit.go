package models

import (
	"time"

	"gorm.io/gorm"
)

type VisitStatus string

const (
	VisitStatusScheduled  VisitStatus = "SCHEDULED"
	VisitStatusEnRoute    VisitStatus = "EN_ROUTE"
	VisitStatusInProgress VisitStatus = "IN_PROGRESS"
	VisitStatusCompleted  VisitStatus = "COMPLETED"
	VisitStatusSkipped    VisitStatus = "SKIPPED"
	VisitStatusCanceled   VisitStatus = "CANCELED"
)

// VisitStatuses lists every valid visit status, for query validation.
var VisitStatuses = []string{
	string(VisitStatusScheduled),
	string(VisitStatusEnRoute),
	string(VisitStatusInProgress),
	string(VisitStatusCompleted),
	string(VisitStatusSkipped),
	string(VisitStatusCanceled),
}

type Visit struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	JobID          uint64         `gorm:"not null;index" json:"job_id"`
	PropertyID     uint64         `gorm:"not null;index" json:"property_id"`
	ScheduledFor   time.Time      `gorm:"not null;index" json:"scheduled_for"`
	Status         VisitStatus    `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Job      Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Job is a recurring or one-off piece of work at a customer's property.
// Visits and invoices reference jobs; the job itself has no write surface
// in this API.
type Job struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CustomerID     uint64         `gorm:"not null;index" json:"customer_id"`
	PropertyID     *uint64        `gorm:"index" json:"property_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Status         string         `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

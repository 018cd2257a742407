package models

import (
	"time"

	"gorm.io/gorm"
)

type Property struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CustomerID     uint64         `gorm:"not null;index" json:"customer_id"`
	AddressLine1   string         `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2   string         `gorm:"type:varchar(255)" json:"address_line2"`
	City           string         `gorm:"type:varchar(100)" json:"city"`
	State          string         `gorm:"type:varchar(50)" json:"state"`
	PostalCode     string         `gorm:"type:varchar(20)" json:"postal_code"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

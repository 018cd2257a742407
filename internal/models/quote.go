package models

import (
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
)

// QuoteStatuses lists every valid quote status, for query validation.
var QuoteStatuses = []string{
	string(QuoteStatusDraft),
	string(QuoteStatusSent),
	string(QuoteStatusAccepted),
	string(QuoteStatusRejected),
	string(QuoteStatusExpired),
}

type Quote struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CustomerID     uint64         `gorm:"not null;index" json:"customer_id"`
	PropertyID     *uint64        `gorm:"index" json:"property_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Notes          string         `gorm:"type:text" json:"notes"`
	Status         QuoteStatus    `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	Subtotal       float64        `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax            float64        `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total          float64        `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Property *Property   `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Items    []QuoteItem `gorm:"foreignKey:QuoteID" json:"items"`
}

type QuoteItem struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	QuoteID        uint64         `gorm:"not null;index" json:"quote_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Quantity       float64        `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice      float64        `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal      float64        `gorm:"type:decimal(10,2);not null" json:"line_total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

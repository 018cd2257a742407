package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPartial InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// InvoiceStatuses lists every valid invoice status, for query validation.
var InvoiceStatuses = []string{
	string(InvoiceStatusDraft),
	string(InvoiceStatusSent),
	string(InvoiceStatusPartial),
	string(InvoiceStatusPaid),
	string(InvoiceStatusVoid),
	string(InvoiceStatusOverdue),
}

type Invoice struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CustomerID     uint64         `gorm:"not null;index" json:"customer_id"`
	PropertyID     *uint64        `gorm:"index" json:"property_id"`
	JobID          *uint64        `gorm:"index" json:"job_id"`
	Status         InvoiceStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	IssueDate      time.Time      `gorm:"not null" json:"issue_date"`
	DueDate        *time.Time     `json:"due_date"`
	Notes          string         `gorm:"type:text" json:"notes"`
	Subtotal       float64        `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax            float64        `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total          float64        `gorm:"type:decimal(10,2);not null" json:"total"`
	AmountPaid     float64        `gorm:"type:decimal(10,2);not null;default:0" json:"amount_paid"`
	BalanceDue     float64        `gorm:"type:decimal(10,2);not null" json:"balance_due"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Property *Property     `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Job      *Job          `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments"`
}

type InvoiceItem struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	InvoiceID      uint64         `gorm:"not null;index" json:"invoice_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Quantity       float64        `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice      float64        `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal      float64        `gorm:"type:decimal(10,2);not null" json:"line_total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

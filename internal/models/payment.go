package models

import "time"

// Payment records money received against an invoice. Payments are written
// by an external billing integration; this API only reads them.
type Payment struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganizationID uint64    `gorm:"not null;index" json:"organization_id"`
	InvoiceID      uint64    `gorm:"not null;index" json:"invoice_id"`
	Amount         float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method         string    `gorm:"type:varchar(40)" json:"method"`
	Reference      string    `gorm:"type:varchar(255)" json:"reference"`
	PaidAt         time.Time `json:"paid_at"`
	CreatedAt      time.Time `json:"created_at"`
}

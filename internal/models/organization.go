package models

import (
	"time"
)

// Organization is the tenant isolation boundary. Organizations are created
// lazily from webhook events or first authenticated access and are never
// hard-deleted; external deletion only clears ClerkOrgID.
type Organization struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ClerkOrgID *string   `gorm:"type:varchar(255);uniqueIndex" json:"clerk_org_id,omitempty"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Members []OrgMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
}

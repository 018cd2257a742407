package models

import (
	"time"
)

type User struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ClerkUserID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"clerk_user_id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName   string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100)" json:"last_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Memberships []OrgMember `gorm:"foreignKey:UserID" json:"-"`
}

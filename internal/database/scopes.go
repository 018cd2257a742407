package database

import (
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/utils"
)

// Paginate applies page/pageSize to a GORM query.
func Paginate(q utils.ListQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}
}

// OrgScope restricts a query to one tenant. Every business-record query
// goes through this so cross-tenant access is structurally impossible.
func OrgScope(organizationID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

package repository

import (
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/models"
)

// GormReferenceRepository is a GORM implementation of ReferenceChecker.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewReferenceChecker creates a new ReferenceChecker.
func NewReferenceChecker(db *gorm.DB) ReferenceChecker {
	return &GormReferenceRepository{db: db}
}

// CustomerExists reports whether the customer belongs to the organization.
func (r *GormReferenceRepository) CustomerExists(organizationID, customerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("id = ? AND organization_id = ?", customerID, organizationID).
		Count(&count).Error
	return count > 0, err
}

// PropertyBelongsToCustomer reports whether the property belongs to both
// the organization and the customer.
func (r *GormReferenceRepository) PropertyBelongsToCustomer(organizationID, customerID, propertyID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Property{}).
		Where("id = ? AND organization_id = ? AND customer_id = ?", propertyID, organizationID, customerID).
		Count(&count).Error
	return count > 0, err
}

// JobBelongsToCustomer reports whether the job belongs to both the
// organization and the customer.
func (r *GormReferenceRepository) JobBelongsToCustomer(organizationID, customerID, jobID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Where("id = ? AND organization_id = ? AND customer_id = ?", jobID, organizationID, customerID).
		Count(&count).Error
	return count > 0, err
}

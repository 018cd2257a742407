package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/utils"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

// List retrieves a page of customers, newest first, matching the search
// against name, email and phone case-insensitively.
func (r *GormCustomerRepository) List(organizationID uint64, q utils.ListQuery) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{}).Scopes(database.OrgScope(organizationID))

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	customers := []models.Customer{}
	err := query.
		Preload("Properties").
		Order("created_at DESC").
		Scopes(database.Paginate(q)).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// FindByID finds one customer with properties preloaded.
func (r *GormCustomerRepository) FindByID(organizationID, id uint64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.
		Preload("Properties").
		Scopes(database.OrgScope(organizationID)).
		First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create creates a customer.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update applies column updates to the (id, organization) row.
func (r *GormCustomerRepository) Update(organizationID, id uint64, updates map[string]any) (int64, error) {
	result := r.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Scopes(database.OrgScope(organizationID)).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete soft deletes the (id, organization) row.
func (r *GormCustomerRepository) Delete(organizationID, id uint64) (int64, error) {
	result := r.db.
		Where("id = ?", id).
		Scopes(database.OrgScope(organizationID)).
		Delete(&models.Customer{})
	return result.RowsAffected, result.Error
}

package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/utils"
)

// GormInvoiceRepository is a GORM implementation of InvoiceRepository.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// List retrieves a page of invoices, newest first. Search matches the
// customer's first/last name and the invoice notes.
func (r *GormInvoiceRepository) List(organizationID uint64, q utils.ListQuery) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{}).
		Where("invoices.organization_id = ?", organizationID)

	if q.Status != "" {
		query = query.Where("invoices.status = ?", q.Status)
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.
			Joins("JOIN customers ON customers.id = invoices.customer_id").
			Where(
				"LOWER(customers.first_name) LIKE ? OR LOWER(customers.last_name) LIKE ? OR LOWER(invoices.notes) LIKE ?",
				pattern, pattern, pattern,
			)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	invoices := []models.Invoice{}
	err := query.
		Preload("Customer").
		Preload("Property").
		Preload("Job").
		Preload("Items").
		Preload("Payments").
		Order("invoices.created_at DESC").
		Scopes(database.Paginate(q)).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// FindByID finds one invoice with all relations preloaded.
func (r *GormInvoiceRepository) FindByID(organizationID, id uint64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.
		Preload("Customer").
		Preload("Property").
		Preload("Job").
		Preload("Items").
		Preload("Payments").
		Scopes(database.OrgScope(organizationID)).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Create persists the invoice and its items in one transaction.
func (r *GormInvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

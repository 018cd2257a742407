package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/utils"
)

// GormQuoteRepository is a GORM implementation of QuoteRepository.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &GormQuoteRepository{db: db}
}

// List retrieves a page of quotes, newest first. Search matches the quote
// title and the customer's first/last name, which requires joining the
// customers table; columns are qualified to keep the query unambiguous.
func (r *GormQuoteRepository) List(organizationID uint64, q utils.ListQuery) ([]models.Quote, int64, error) {
	query := r.db.Model(&models.Quote{}).
		Where("quotes.organization_id = ?", organizationID)

	if q.Status != "" {
		query = query.Where("quotes.status = ?", q.Status)
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.
			Joins("JOIN customers ON customers.id = quotes.customer_id").
			Where(
				"LOWER(quotes.title) LIKE ? OR LOWER(customers.first_name) LIKE ? OR LOWER(customers.last_name) LIKE ?",
				pattern, pattern, pattern,
			)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	quotes := []models.Quote{}
	err := query.
		Preload("Customer").
		Preload("Property").
		Preload("Items").
		Order("quotes.created_at DESC").
		Scopes(database.Paginate(q)).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

// FindByID finds one quote with customer, property and items preloaded.
func (r *GormQuoteRepository) FindByID(organizationID, id uint64) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.
		Preload("Customer").
		Preload("Property").
		Preload("Items").
		Scopes(database.OrgScope(organizationID)).
		First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Create persists the quote and its items in one transaction; gorm inserts
// the association rows alongside the parent, so a failure leaves nothing.
func (r *GormQuoteRepository) Create(quote *models.Quote) error {
	return r.db.Create(quote).Error
}

package repository

import (
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/utils"
)

// GormVisitRepository is a GORM implementation of VisitRepository.
type GormVisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new VisitRepository.
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &GormVisitRepository{db: db}
}

// List retrieves visits scheduled within [start, end], earliest first.
func (r *GormVisitRepository) List(organizationID uint64, q utils.ListQuery) ([]models.Visit, int64, error) {
	query := r.db.Model(&models.Visit{}).
		Scopes(database.OrgScope(organizationID)).
		Where("scheduled_for >= ? AND scheduled_for <= ?", q.Start, q.End)

	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	visits := []models.Visit{}
	err := query.
		Preload("Job").
		Preload("Job.Customer").
		Preload("Property").
		Order("scheduled_for ASC").
		Scopes(database.Paginate(q)).
		Find(&visits).Error
	if err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenops/lawncare-api/internal/models"
)

// GormIdentityRepository is a GORM implementation of IdentityRepository.
type GormIdentityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &GormIdentityRepository{db: db}
}

func (r *GormIdentityRepository) FindUserByClerkID(clerkUserID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormIdentityRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormIdentityRepository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *GormIdentityRepository) FindOrganizationByClerkID(clerkOrgID string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("clerk_org_id = ?", clerkOrgID).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *GormIdentityRepository) FindOrganizationBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *GormIdentityRepository) CreateOrganization(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *GormIdentityRepository) SaveOrganization(org *models.Organization) error {
	return r.db.Save(org).Error
}

// ClearOrganizationClerkID soft-unlinks the external reference. Matching
// zero rows is not an error: deletion events may arrive for organizations
// that were never synced.
func (r *GormIdentityRepository) ClearOrganizationClerkID(clerkOrgID string) error {
	return r.db.Model(&models.Organization{}).
		Where("clerk_org_id = ?", clerkOrgID).
		Update("clerk_org_id", nil).Error
}

func (r *GormIdentityRepository) FindMember(organizationID, userID uint64) (*models.OrgMember, error) {
	var member models.OrgMember
	err := r.db.
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpsertMember inserts the membership or updates its role in place, so
// replayed membership events converge instead of duplicating rows.
func (r *GormIdentityRepository) UpsertMember(member *models.OrgMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(member).Error
}

func (r *GormIdentityRepository) DeleteMember(organizationID, userID uint64) error {
	return r.db.
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Delete(&models.OrgMember{}).Error
}

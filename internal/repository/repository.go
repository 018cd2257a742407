package repository

import (
	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/utils"
)

// CustomerRepository defines data access for customers. Every method is
// tenant-scoped: rows outside the organization are invisible.
type CustomerRepository interface {
	// List retrieves a page of customers plus the total matching count.
	List(organizationID uint64, q utils.ListQuery) ([]models.Customer, int64, error)

	// FindByID finds one customer with properties preloaded.
	FindByID(organizationID, id uint64) (*models.Customer, error)

	// Create creates a customer.
	Create(customer *models.Customer) error

	// Update applies the given column updates; returns rows affected.
	Update(organizationID, id uint64, updates map[string]any) (int64, error)

	// Delete soft deletes a customer; returns rows affected.
	Delete(organizationID, id uint64) (int64, error)
}

// QuoteRepository defines data access for quotes.
type QuoteRepository interface {
	List(organizationID uint64, q utils.ListQuery) ([]models.Quote, int64, error)
	FindByID(organizationID, id uint64) (*models.Quote, error)

	// Create persists the quote and its items atomically.
	Create(quote *models.Quote) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	List(organizationID uint64, q utils.ListQuery) ([]models.Invoice, int64, error)
	FindByID(organizationID, id uint64) (*models.Invoice, error)

	// Create persists the invoice and its items atomically.
	Create(invoice *models.Invoice) error
}

// VisitRepository defines data access for scheduled visits.
type VisitRepository interface {
	// List retrieves visits within the query's start/end range, earliest
	// scheduled first.
	List(organizationID uint64, q utils.ListQuery) ([]models.Visit, int64, error)
}

// ReferenceChecker verifies cross-entity ownership before quote/invoice
// creation: the referenced row must exist, belong to the caller's
// organization and, where applicable, to the same customer.
type ReferenceChecker interface {
	CustomerExists(organizationID, customerID uint64) (bool, error)
	PropertyBelongsToCustomer(organizationID, customerID, propertyID uint64) (bool, error)
	JobBelongsToCustomer(organizationID, customerID, jobID uint64) (bool, error)
}

// IdentityRepository defines data access for the identity records the
// webhook sync and just-in-time provisioning maintain.
type IdentityRepository interface {
	FindUserByClerkID(clerkUserID string) (*models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error

	FindOrganizationByClerkID(clerkOrgID string) (*models.Organization, error)
	FindOrganizationBySlug(slug string) (*models.Organization, error)
	CreateOrganization(org *models.Organization) error
	SaveOrganization(org *models.Organization) error

	// ClearOrganizationClerkID soft-unlinks the external reference; a
	// missing organization is a no-op.
	ClearOrganizationClerkID(clerkOrgID string) error

	FindMember(organizationID, userID uint64) (*models.OrgMember, error)

	// UpsertMember inserts the membership or updates its role in place,
	// keyed on the (organization, user) pair.
	UpsertMember(member *models.OrgMember) error

	// DeleteMember removes the membership row if present.
	DeleteMember(organizationID, userID uint64) error
}

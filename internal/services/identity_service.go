package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/rbac"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/response"
)

// ExternalIdentity is what the transport layer extracted from the request:
// the provider's user id, the active organization claim (or fallback
// header), and the raw role claim.
type ExternalIdentity struct {
	ClerkUserID string
	ClerkOrgID  string
	RoleClaim   string
}

// CallerContext is a resolved, permission-checked caller: local record ids
// plus the role the permission was granted under.
type CallerContext struct {
	UserID         uint64
	OrganizationID uint64
	Role           models.Role
}

// IdentityService resolves external identities into local caller contexts,
// provisioning tenant records just in time. A read-only request may create
// Organization/User/OrgMember rows as a byproduct; that is intentional and
// shares the webhook sync's upserts so the two paths cannot diverge.
type IdentityService struct {
	identities repository.IdentityRepository
	sync       *SyncService
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(identities repository.IdentityRepository, sync *SyncService) *IdentityService {
	return &IdentityService{identities: identities, sync: sync}
}

// ResolveCallerContext authenticates and authorizes the caller for one
// permission. Failures are *response.APIError values: 401 with no identity,
// 400 with no organization context, 403 when the role lacks the permission.
func (s *IdentityService) ResolveCallerContext(ident ExternalIdentity, permission rbac.Permission) (*CallerContext, error) {
	if ident.ClerkUserID == "" {
		return nil, response.Unauthorized("")
	}
	if ident.ClerkOrgID == "" {
		return nil, response.MissingOrgContext()
	}

	user, err := s.sync.SyncUser(SyncUserInput{ClerkUserID: ident.ClerkUserID})
	if err != nil {
		return nil, err
	}

	org, err := s.sync.EnsureOrganization(ident.ClerkOrgID, "", "")
	if err != nil {
		return nil, err
	}

	member, err := s.identities.FindMember(org.ID, user.ID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		member = &models.OrgMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           rbac.RoleFromClaim(ident.RoleClaim),
		}
		if err := s.identities.UpsertMember(member); err != nil {
			return nil, fmt.Errorf("failed to create membership: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	if !rbac.HasPermission(member.Role, permission) {
		return nil, response.Forbidden(
			fmt.Sprintf("Role %s lacks permission %s.", member.Role, permission))
	}

	return &CallerContext{
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           member.Role,
	}, nil
}

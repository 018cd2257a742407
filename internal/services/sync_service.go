package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/greenops/lawncare-api/internal/models"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/utils"
)

const fallbackSlugBase = "lawncare-org"

// SyncService applies identity-provider state to the local records: users,
// organizations and memberships, keyed by their external references. The
// provider delivers events at least once, so every operation is an
// idempotent upsert and replays converge to the same state.
type SyncService struct {
	identities repository.IdentityRepository
	log        zerolog.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(identities repository.IdentityRepository, log zerolog.Logger) *SyncService {
	return &SyncService{identities: identities, log: log}
}

// SyncUserInput carries the provider's view of a user. Nil fields were not
// present in the event and leave existing values untouched.
type SyncUserInput struct {
	ClerkUserID string
	FirstName   *string
	LastName    *string
	Email       *string
}

// PlaceholderEmail synthesizes an email for users the provider supplies
// none for, keeping the unique constraint satisfiable.
func PlaceholderEmail(clerkUserID string) string {
	return clerkUserID + "@placeholder.clerk"
}

// SyncUser upserts a user by external reference.
func (s *SyncService) SyncUser(input SyncUserInput) (*models.User, error) {
	user, err := s.identities.FindUserByClerkID(input.ClerkUserID)
	switch {
	case err == nil:
		changed := false
		if input.FirstName != nil && user.FirstName != *input.FirstName {
			user.FirstName = *input.FirstName
			changed = true
		}
		if input.LastName != nil && user.LastName != *input.LastName {
			user.LastName = *input.LastName
			changed = true
		}
		if input.Email != nil && *input.Email != "" && user.Email != *input.Email {
			user.Email = *input.Email
			changed = true
		}
		if changed {
			if err := s.identities.SaveUser(user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			ClerkUserID: input.ClerkUserID,
			Email:       PlaceholderEmail(input.ClerkUserID),
		}
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		if input.Email != nil && *input.Email != "" {
			user.Email = *input.Email
		}
		if err := s.identities.CreateUser(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.Info().Str("clerk_user_id", input.ClerkUserID).Uint64("user_id", user.ID).
			Msg("provisioned user")
		return user, nil
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
}

// EnsureOrganization upserts an organization by external reference. A new
// organization gets a unique slug derived from the provided slug or, failing
// that, the external id; an existing one only has its name refreshed.
func (s *SyncService) EnsureOrganization(clerkOrgID, name, slug string) (*models.Organization, error) {
	org, err := s.identities.FindOrganizationByClerkID(clerkOrgID)
	switch {
	case err == nil:
		if name != "" && org.Name != name {
			org.Name = name
			if err := s.identities.SaveOrganization(org); err != nil {
				return nil, fmt.Errorf("failed to update organization: %w", err)
			}
		}
		return org, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		seed := slug
		if seed == "" {
			seed = clerkOrgID
		}
		uniqueSlug, err := s.uniqueSlug(seed)
		if err != nil {
			return nil, err
		}

		displayName := name
		if displayName == "" {
			displayName = fallbackOrganizationName(clerkOrgID)
		}

		externalID := clerkOrgID
		org = &models.Organization{
			ClerkOrgID: &externalID,
			Name:       displayName,
			Slug:       uniqueSlug,
		}
		if err := s.identities.CreateOrganization(org); err != nil {
			return nil, fmt.Errorf("failed to create organization: %w", err)
		}
		s.log.Info().Str("clerk_org_id", clerkOrgID).Uint64("organization_id", org.ID).
			Str("slug", uniqueSlug).Msg("provisioned organization")
		return org, nil
	default:
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}
}

// UnlinkOrganization clears the external reference on the matching
// organization. The local record and its business data survive.
func (s *SyncService) UnlinkOrganization(clerkOrgID string) error {
	if err := s.identities.ClearOrganizationClerkID(clerkOrgID); err != nil {
		return fmt.Errorf("failed to unlink organization: %w", err)
	}
	return nil
}

// UpsertMembership sets the user's role within the organization.
func (s *SyncService) UpsertMembership(organizationID, userID uint64, role models.Role) error {
	member := &models.OrgMember{
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           role,
	}
	if err := s.identities.UpsertMember(member); err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}

// RemoveMembership deletes the membership for the resolved pair. If either
// side never synced there is nothing to remove.
func (s *SyncService) RemoveMembership(clerkOrgID, clerkUserID string) error {
	user, err := s.identities.FindUserByClerkID(clerkUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	org, err := s.identities.FindOrganizationByClerkID(clerkOrgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to look up organization: %w", err)
	}

	if err := s.identities.DeleteMember(org.ID, user.ID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return nil
}

// uniqueSlug probes base, base-1, base-2, … until a free slug is found.
func (s *SyncService) uniqueSlug(seed string) (string, error) {
	base := utils.Slugify(seed)
	if base == "" {
		base = fallbackSlugBase
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		_, err := s.identities.FindOrganizationBySlug(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func fallbackOrganizationName(clerkOrgID string) string {
	tail := clerkOrgID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return "Organization " + tail
}

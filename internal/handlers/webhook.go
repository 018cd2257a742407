package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/greenops/lawncare-api/internal/rbac"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/services"
)

// WebhookHandler consumes signed identity-provider events and applies them
// through the sync service. Signature verification happens before any
// parsing; unverifiable requests never reach the sync logic.
type WebhookHandler struct {
	sync     *services.SyncService
	verifier *svix.Webhook
	log      zerolog.Logger
}

// NewWebhookHandler creates a WebhookHandler verifying against the shared
// signing secret.
func NewWebhookHandler(sync *services.SyncService, signingSecret string, log zerolog.Logger) (*WebhookHandler, error) {
	verifier, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{sync: sync, verifier: verifier, log: log}, nil
}

type clerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type clerkUserPayload struct {
	ID                    string              `json:"id"`
	FirstName             *string             `json:"first_name"`
	LastName              *string             `json:"last_name"`
	PrimaryEmailAddressID *string             `json:"primary_email_address_id"`
	EmailAddresses        []clerkEmailAddress `json:"email_addresses"`
}

// email picks the primary address, falling back to the first one listed.
func (p clerkUserPayload) email() *string {
	if p.PrimaryEmailAddressID != nil {
		for _, addr := range p.EmailAddresses {
			if addr.ID == *p.PrimaryEmailAddressID {
				return &addr.EmailAddress
			}
		}
	}
	if len(p.EmailAddresses) > 0 {
		return &p.EmailAddresses[0].EmailAddress
	}
	return nil
}

type clerkOrganizationPayload struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug *string `json:"slug"`
}

type clerkMembershipPayload struct {
	Role         *string `json:"role"`
	Organization struct {
		ID   string  `json:"id"`
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	} `json:"organization"`
	PublicUserData struct {
		UserID     string  `json:"user_id"`
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		Identifier *string `json:"identifier"`
	} `json:"public_user_data"`
}

type clerkEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClerkEvent verifies and dispatches one webhook delivery. Every
// branch is an idempotent upsert, so redeliveries are harmless.
func (h *WebhookHandler) HandleClerkEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Fail(c, response.NewAPIError(http.StatusBadRequest, "Unable to read webhook payload."))
		return
	}

	if err := h.verifier.Verify(payload, c.Request.Header); err != nil {
		h.log.Warn().Err(err).Msg("webhook signature verification failed")
		response.Fail(c, response.NewAPIError(http.StatusBadRequest, "Webhook signature verification failed."))
		return
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		response.Fail(c, response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload."))
		return
	}

	if err := h.dispatch(event); err != nil {
		h.log.Error().Err(err).Str("event_type", event.Type).Msg("webhook event failed")
		response.HandleError(c, err, "Unable to process webhook event.")
		return
	}

	response.OK(c, gin.H{"received": true})
}

func (h *WebhookHandler) dispatch(event clerkEvent) error {
	switch event.Type {
	case "user.created", "user.updated":
		var data clerkUserPayload
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload.")
		}
		_, err := h.sync.SyncUser(services.SyncUserInput{
			ClerkUserID: data.ID,
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			Email:       data.email(),
		})
		return err

	case "organization.created", "organization.updated":
		var data clerkOrganizationPayload
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload.")
		}
		_, err := h.sync.EnsureOrganization(data.ID, data.Name, deref(data.Slug))
		return err

	case "organization.deleted":
		var data clerkOrganizationPayload
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload.")
		}
		return h.sync.UnlinkOrganization(data.ID)

	case "organizationMembership.created", "organizationMembership.updated":
		var data clerkMembershipPayload
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload.")
		}
		org, err := h.sync.EnsureOrganization(
			data.Organization.ID, deref(data.Organization.Name), deref(data.Organization.Slug))
		if err != nil {
			return err
		}
		user, err := h.sync.SyncUser(services.SyncUserInput{
			ClerkUserID: data.PublicUserData.UserID,
			FirstName:   data.PublicUserData.FirstName,
			LastName:    data.PublicUserData.LastName,
			Email:       data.PublicUserData.Identifier,
		})
		if err != nil {
			return err
		}
		return h.sync.UpsertMembership(org.ID, user.ID, rbac.RoleFromClaim(deref(data.Role)))

	case "organizationMembership.deleted":
		var data clerkMembershipPayload
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return response.NewAPIError(http.StatusBadRequest, "Invalid webhook payload.")
		}
		return h.sync.RemoveMembership(data.Organization.ID, data.PublicUserData.UserID)

	default:
		h.log.Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

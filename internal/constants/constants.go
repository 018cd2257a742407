package constants

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	CompactPageSize = 10
	MaxPageSize     = 100
)

// Context keys
const (
	ContextKeyIdentity = "identity"
	ContextKeyAuth     = "auth_context"
)

// Fallback headers for callers without a native session (tests,
// service-to-service calls).
const (
	HeaderOrganizationID    = "x-organization-id"
	HeaderOrganizationIDAlt = "x-org-id"
)

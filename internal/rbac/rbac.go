package rbac

import (
	"strings"

	"github.com/greenops/lawncare-api/internal/models"
)

// Permission names an action a role may or may not perform.
type Permission string

const (
	PermDashboardView  Permission = "dashboard:view"
	PermCustomersRead  Permission = "customers:read"
	PermCustomersWrite Permission = "customers:write"
	PermQuotesRead     Permission = "quotes:read"
	PermQuotesWrite    Permission = "quotes:write"
	PermScheduleRead   Permission = "schedule:read"
	PermScheduleWrite  Permission = "schedule:write"
	PermInvoicesRead   Permission = "invoices:read"
	PermInvoicesWrite  Permission = "invoices:write"
	PermSettingsRead   Permission = "settings:read"
	PermSettingsWrite  Permission = "settings:write"
)

var allPermissions = []Permission{
	PermDashboardView,
	PermCustomersRead,
	PermCustomersWrite,
	PermQuotesRead,
	PermQuotesWrite,
	PermScheduleRead,
	PermScheduleWrite,
	PermInvoicesRead,
	PermInvoicesWrite,
	PermSettingsRead,
	PermSettingsWrite,
}

var rolePermissions = map[models.Role]map[Permission]bool{
	models.RoleOwner: permissionSet(allPermissions...),
	models.RoleDispatcher: permissionSet(
		PermDashboardView,
		PermCustomersRead,
		PermCustomersWrite,
		PermQuotesRead,
		PermQuotesWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermInvoicesRead,
		PermInvoicesWrite,
		PermSettingsRead,
	),
	models.RoleCrewLead: permissionSet(
		PermDashboardView,
		PermCustomersRead,
		PermQuotesRead,
		PermScheduleRead,
		PermScheduleWrite,
		PermInvoicesRead,
	),
	models.RoleCrewTech: permissionSet(
		PermDashboardView,
		PermCustomersRead,
		PermQuotesRead,
		PermScheduleRead,
	),
	models.RoleCustomer: permissionSet(
		PermQuotesRead,
		PermInvoicesRead,
	),
}

func permissionSet(perms ...Permission) map[Permission]bool {
	set := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

// HasPermission reports whether the role may perform the permission.
// Unknown role/permission pairs are simply false.
func HasPermission(role models.Role, permission Permission) bool {
	return rolePermissions[role][permission]
}

// IsAllowedRole reports whether the role is one of the allowed roles.
func IsAllowedRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// RoleFromClaim maps an identity-provider role claim to an internal role.
// Any claim containing "admin" becomes OWNER; everything else, including an
// empty claim, becomes DISPATCHER. This mirrors the provider's org-role
// catalog (org:admin, org:member); extend here if the catalog grows.
func RoleFromClaim(claim string) models.Role {
	if strings.Contains(claim, "admin") {
		return models.RoleOwner
	}
	return models.RoleDispatcher
}

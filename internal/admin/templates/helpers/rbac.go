package helpers

import (
	"context"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/rbac"
)

// HasCapability reports whether the signed-in user holds capability.
// An empty capability is always granted.
func HasCapability(ctx context.Context, capability rbac.Capability) bool {
	if capability == "" {
		return true
	}
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return false
	}
	return rbac.HasCapability(user.Roles, capability)
}

// RoleLabel returns the display label of the user's first recognised role.
func RoleLabel(ctx context.Context) string {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return ""
	}
	roles := rbac.NormaliseRoles(user.Roles)
	if len(roles) == 0 {
		return ""
	}
	return rbac.Label(roles[0])
}

package rbac

import (
	"strings"
)

// Role represents a staff access tier.
type Role string

const (
	RoleAdmin      Role = "admin"
	RolePharmacist Role = "pharmacist"
	RoleManager    Role = "manager"
)

// Capability represents a discrete permission checked by routes, menus and page actions.
type Capability string

const (
	CapDashboardView   Capability = "dashboard.view"
	CapJenisObatView   Capability = "jenisobat.view"
	CapJenisObatManage Capability = "jenisobat.manage"
	CapSupplierView    Capability = "supplier.view"
	CapSupplierManage  Capability = "supplier.manage"
	CapResepView       Capability = "resep.view"
	CapResepManage     Capability = "resep.manage"
	CapQRView          Capability = "qr.view"
	CapQRScan          Capability = "qr.scan"
	CapHelpView        Capability = "help.view"
)

// capabilityRoles maps each capability to the roles permitted to access it.
var capabilityRoles = map[Capability]Roles{
	CapDashboardView:   {RoleAdmin, RolePharmacist, RoleManager},
	CapJenisObatView:   {RoleAdmin, RolePharmacist, RoleManager},
	CapJenisObatManage: {RoleAdmin, RolePharmacist},
	CapSupplierView:    {RoleAdmin, RolePharmacist, RoleManager},
	CapSupplierManage:  {RoleAdmin},
	CapResepView:       {RoleAdmin, RolePharmacist, RoleManager},
	CapResepManage:     {RoleAdmin, RolePharmacist},
	CapQRView:          {RoleAdmin, RolePharmacist, RoleManager},
	CapQRScan:          {RoleAdmin, RolePharmacist},
	CapHelpView:        {RoleAdmin, RolePharmacist, RoleManager},
}

// Roles captures a list of roles and exposes intersection checks used for RBAC evaluation.
type Roles []Role

// Has returns true if the provided role exists in the set.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects returns true if any role in the candidate slice is also present in the set.
func (rs Roles) Intersects(candidate Roles) bool {
	for _, role := range candidate {
		if rs.Has(role) {
			return true
		}
	}
	return false
}

// NormaliseRoles converts raw role strings into canonical Role values.
// "apoteker" is accepted as an alias for pharmacist.
func NormaliseRoles(raw []string) Roles {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	roles := make(Roles, 0, len(raw))
	for _, val := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(val)))
		if role == "" {
			continue
		}
		if role == "apoteker" {
			role = RolePharmacist
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// RolesForCapability returns the configured roles able to access the capability.
func RolesForCapability(cap Capability) Roles {
	if roles, ok := capabilityRoles[cap]; ok {
		return roles
	}
	return nil
}

// HasAnyRole reports whether the intersection between user roles and required roles is non-empty.
// Admin users always satisfy checks.
func HasAnyRole(userRoles []string, required Roles) bool {
	roles := NormaliseRoles(userRoles)
	if roles.Has(RoleAdmin) {
		return true
	}
	return required.Intersects(roles)
}

// HasCapability reports whether the provided roles grant access to the capability.
// Admin users implicitly possess every defined capability.
func HasCapability(userRoles []string, capability Capability) bool {
	if capability == "" {
		return true
	}
	allowed := RolesForCapability(capability)
	if len(allowed) == 0 {
		return false
	}
	roles := NormaliseRoles(userRoles)
	if roles.Has(RoleAdmin) {
		return true
	}
	return allowed.Intersects(roles)
}

// CapabilitiesForRoles enumerates the capabilities accessible to the provided user roles.
func CapabilitiesForRoles(userRoles []string) map[Capability]bool {
	roles := NormaliseRoles(userRoles)
	caps := make(map[Capability]bool, len(capabilityRoles))
	for capability, allowed := range capabilityRoles {
		if roles.Has(RoleAdmin) || allowed.Intersects(roles) {
			caps[capability] = true
		}
	}
	return caps
}

// Label returns the Indonesian display name for a role.
func Label(role Role) string {
	switch role {
	case RoleAdmin:
		return "Administrator"
	case RolePharmacist:
		return "Apoteker"
	case RoleManager:
		return "Manajer"
	default:
		return string(role)
	}
}

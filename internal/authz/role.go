// Package authz implements the static authorization core: the role/resource
// permission matrix, resource-alias normalization, the pure decision
// function, and the tenant-scope guard applied at every record-scoped entry
// point.
package authz

import "strings"

// Role is a principal's fixed access class, assigned at provisioning time.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStock      Role = "stock"
	RoleAccountant Role = "accountant"
	RoleViewer     Role = "viewer"
)

// Roles returns every role the permission matrix defines.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleStock, RoleAccountant, RoleViewer}
}

// ParseRole maps a stored role name onto a Role. Unknown names pass through
// unchanged; the matrix denies them everywhere.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Package domain defines authentication and authorization domain models.
//
// It provides credential-based authentication with role-hierarchy authorization.
// Roles form a strict total order; access checks compare rank positions, never
// role sets.
package domain

import "strings"

// Role is a named privilege level in the fixed role hierarchy.
type Role string

// Known roles, ordered from least to most privileged.
const (
	RoleUser          Role = "user"
	RoleModerator     Role = "moderator"
	RoleAdministrator Role = "administrator"
	RoleSuperAdmin    Role = "superadmin"
)

// roleRanks is the single authoritative rank table. Both the imperative
// authorizer and the HTTP role middleware compare against this table.
var roleRanks = map[Role]int{
	RoleUser:          1,
	RoleModerator:     2,
	RoleAdministrator: 3,
	RoleSuperAdmin:    4,
}

// ParseRole parses a role claim string case-insensitively.
// Unknown values return ok=false; callers must treat that as no access
// (fail closed), never as an error.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRanks[role]; !ok {
		return "", false
	}
	return role, true
}

// Rank returns the role's position in the hierarchy, or 0 for unknown roles.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether the role is ranked at or above the minimum role.
// Unknown roles on either side rank as 0 and therefore never satisfy a
// known minimum.
func (r Role) AtLeast(minimum Role) bool {
	rank := r.Rank()
	minRank := minimum.Rank()
	if rank == 0 || minRank == 0 {
		return false
	}
	return rank >= minRank
}

// String returns the role claim value.
func (r Role) String() string {
	return string(r)
}

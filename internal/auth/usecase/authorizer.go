package usecase

import (
	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
)

// Authorizer answers role-hierarchy access questions for a principal.
// All checks fail closed: a nil principal or an unknown role grants nothing.
type Authorizer struct{}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// HasRole reports whether the principal holds a role ranked at or above the
// minimum. Holding a higher role always satisfies a lower requirement.
func (a *Authorizer) HasRole(principal *authDomain.Principal, minimum authDomain.Role) bool {
	if principal == nil {
		return false
	}
	for _, role := range principal.Roles {
		if role.AtLeast(minimum) {
			return true
		}
	}
	return false
}

// CanAccessResource reports whether the principal may access a resource owned
// by ownerID. Owners always access their own resources; everyone else needs
// at least the moderator role.
func (a *Authorizer) CanAccessResource(principal *authDomain.Principal, ownerID uuid.UUID) bool {
	if principal == nil {
		return false
	}
	if principal.ID == ownerID {
		return true
	}
	return a.HasRole(principal, authDomain.RoleModerator)
}

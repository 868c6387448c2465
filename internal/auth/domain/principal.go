package domain

import (
	"github.com/google/uuid"
)

// Principal is the authenticated identity embedded in an access token.
// It is immutable once a token is issued; role changes require a new token.
type Principal struct {
	ID       uuid.UUID
	Email    string
	Username string
	Roles    []Role
}

// HighestRole returns the most privileged role the principal holds.
// A principal without any known role returns an empty role (rank 0).
func (p *Principal) HighestRole() Role {
	var highest Role
	for _, role := range p.Roles {
		if role.Rank() > highest.Rank() {
			highest = role
		}
	}
	return highest
}

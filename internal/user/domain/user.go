// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	"github.com/polishfootballnetwork/api/internal/errors"
)

// User represents a registered account. PasswordHash is an Argon2id hash;
// the plain password is never stored.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         authDomain.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal projects the user into the identity embedded in access tokens.
func (u *User) Principal() *authDomain.Principal {
	return &authDomain.Principal{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Roles:    []authDomain.Role{u.Role},
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username or email exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)

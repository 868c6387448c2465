// Package usecase implements business logic orchestration for authentication
// and authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// RefreshTokenRepository stores refresh-token records keyed by token hash.
// Implementations must support safe concurrent access from many request
// handlers; operations are always scoped to a single token hash or user id.
type RefreshTokenRepository interface {
	// Create inserts a new refresh-token record.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// Consume atomically validates and removes the record for the given hash.
	// Exactly one concurrent caller can consume a record; there is no window
	// between the state check and the removal.
	//
	// Returns:
	//   - ErrRefreshTokenNotFound if no record exists
	//   - ErrRefreshTokenRevoked if the record is revoked (record kept)
	//   - ErrRefreshTokenExpired if the record is past expiry (record purged)
	//   - the removed record on success
	Consume(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// Revoke marks the record revoked. Idempotent; reports whether a record
	// was found.
	Revoke(ctx context.Context, tokenHash string) (bool, error)

	// RevokeAllForUser revokes every non-revoked record owned by the user.
	// Returns the number of records revoked.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// UserRepository is the external user-lookup collaborator.
type UserRepository interface {
	// GetByID returns the user with the given id, or user domain ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// GetByUsername returns the user with the given username, or ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthUseCase orchestrates login, token issuance, validation, refresh and
// revocation.
type AuthUseCase interface {
	// Login authenticates credentials and issues a token pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GenerateTokens issues a token pair for an already-authenticated user.
	GenerateTokens(ctx context.Context, user *userDomain.User) (*authDomain.TokenPair, error)

	// ValidateAccessToken validates a bearer token and extracts its principal.
	// Failures are returned as a typed result, never as an error.
	ValidateAccessToken(ctx context.Context, token string) authDomain.TokenValidationResult

	// Refresh rotates a refresh token: the consumed token is never reusable
	// and the returned pair always carries a brand-new refresh token.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// RevokeRefreshToken revokes a single refresh token. Idempotent; reports
	// whether a record was found.
	RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error)

	// RevokeAllUserTokens revokes every refresh token owned by the user.
	// Returns the number of records revoked.
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int, error)
}

// LoginInput carries the credentials presented at the login endpoint.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput carries the issued token pair and the authenticated user.
type LoginOutput struct {
	TokenPair *authDomain.TokenPair
	User      *userDomain.User
}

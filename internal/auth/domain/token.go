package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenType is the bearer token type label returned with every token pair.
const TokenType = "Bearer"

// RefreshToken is the stored record backing an opaque refresh token string.
// Only the SHA-256 hash of the token is stored; the plain token exists solely
// in the response that issued it.
type RefreshToken struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsRevoked reports whether the record has been revoked. Revocation is
// terminal: a revoked record must never mint a new access token.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the record is past its expiry at the given time.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	ExpiresAt    time.Time
	RefreshToken string
	TokenType    string
}

// ValidationFailureKind classifies why an access token failed validation.
type ValidationFailureKind string

// Validation failure kinds distinguished by the token codec.
const (
	ValidationFailureExpired          ValidationFailureKind = "expired"
	ValidationFailureInvalidSignature ValidationFailureKind = "invalid_signature"
	ValidationFailureMalformedSubject ValidationFailureKind = "malformed_subject"
	ValidationFailureOther            ValidationFailureKind = "other"
)

// TokenValidationResult is the discriminated outcome of validating an access
// token. Validation never throws past the codec boundary; any signature,
// expiry, or format problem becomes a failure result.
type TokenValidationResult struct {
	Valid       bool
	Principal   *Principal
	TokenID     string
	FailureKind ValidationFailureKind
	FailureErr  error
}

// ValidationSuccess builds a successful validation result.
func ValidationSuccess(principal *Principal, tokenID string) TokenValidationResult {
	return TokenValidationResult{Valid: true, Principal: principal, TokenID: tokenID}
}

// ValidationFailure builds a failed validation result with a classified kind.
func ValidationFailure(kind ValidationFailureKind, err error) TokenValidationResult {
	return TokenValidationResult{Valid: false, FailureKind: kind, FailureErr: err}
}

// Package service provides technical services for authentication operations.
//
// This package implements password hashing, access-token encoding/validation,
// and refresh-token generation using industry-standard cryptographic practices.
package service

import (
	"time"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
)

// PasswordService defines operations for password hashing and verification.
// Implementations must use an adaptive, intentionally slow algorithm with a
// per-call random salt (e.g., argon2id, bcrypt).
type PasswordService interface {
	// Hash produces a self-describing hash string (algorithm, cost, salt and
	// digest embedded). Returns ErrInvalidInput for empty/whitespace passwords.
	Hash(password string) (string, error)

	// Verify compares a plain password against a hash in constant time.
	// Malformed hash strings return false, never an error or panic.
	Verify(password string, hash string) bool
}

// TokenCodec defines operations for encoding and validating signed access tokens.
// Access tokens are stateless: validity is determined purely by signature and
// expiry at validation time.
type TokenCodec interface {
	// Generate signs a new access token carrying the principal's identity
	// claims. Returns the signed token and its expiry timestamp.
	Generate(principal *authDomain.Principal) (token string, expiresAt time.Time, err error)

	// Validate verifies signature, issuer, audience and expiry, and extracts
	// the embedded principal. All parse/signature/expiry errors are mapped to
	// a typed failure result; Validate never panics or returns an error.
	Validate(token string) authDomain.TokenValidationResult
}

// RefreshTokenService defines operations for opaque refresh-token generation
// and hashing. Only token hashes are ever persisted.
type RefreshTokenService interface {
	// Generate creates a new high-entropy refresh token.
	// Returns the plain token (shown to the client once) and its SHA-256 hash
	// (the storage key).
	Generate() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain refresh token for store lookups.
	HashToken(plainToken string) string
}

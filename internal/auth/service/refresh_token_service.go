package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

// refreshTokenService implements RefreshTokenService using SHA-256 for hashing.
type refreshTokenService struct{}

// Generate creates a new cryptographically secure 64-byte random token
// (512 bits of entropy). The token is base64 URL-encoded for transmission.
// Returns the plain token and its SHA-256 hash; only the hash is stored.
func (r *refreshTokenService) Generate() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 64)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random refresh token")
	}

	plainToken = base64.URLEncoding.EncodeToString(randomBytes)
	tokenHash = r.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain refresh token using SHA-256.
// Returns the hash as a hexadecimal string.
func (r *refreshTokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewRefreshTokenService creates a RefreshTokenService using SHA-256 hashing.
func NewRefreshTokenService() RefreshTokenService {
	return &refreshTokenService{}
}

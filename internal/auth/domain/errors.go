package domain

import (
	"github.com/polishfootballnetwork/api/internal/errors"
)

// Authentication errors. Every refresh-token failure wraps
// ErrInvalidRefreshToken so the HTTP layer maps them all to a generic 401;
// the specific sentinel is only visible in server logs.
var (
	// ErrInvalidCredentials indicates a failed username/password check.
	// Returned for both unknown users and wrong passwords to prevent
	// user enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidRefreshToken is the generic refresh failure returned to clients.
	ErrInvalidRefreshToken = errors.Wrap(errors.ErrUnauthorized, "invalid refresh token")

	// ErrRefreshTokenNotFound indicates the refresh token has no stored record.
	ErrRefreshTokenNotFound = errors.Wrap(ErrInvalidRefreshToken, "refresh token not found")

	// ErrRefreshTokenRevoked indicates the refresh token record was revoked.
	ErrRefreshTokenRevoked = errors.Wrap(ErrInvalidRefreshToken, "refresh token revoked")

	// ErrRefreshTokenExpired indicates the refresh token record is past expiry.
	ErrRefreshTokenExpired = errors.Wrap(ErrInvalidRefreshToken, "refresh token expired")

	// ErrUserInactive indicates the owning user exists but is deactivated.
	ErrUserInactive = errors.Wrap(ErrInvalidRefreshToken, "user inactive")
)

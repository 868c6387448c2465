package service

import (
	"log/slog"
	"strings"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
	logger *slog.Logger
}

// Hash hashes a password using Argon2id with a fresh random salt per call.
// The output string embeds algorithm, parameters, salt and digest.
func (p *passwordService) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "password cannot be empty")
	}

	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify performs a constant-time comparison between a plain password and its
// hash. Malformed hash strings are logged and return false.
func (p *passwordService) Verify(password string, hash string) bool {
	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		p.logger.Warn("password verification failed on malformed hash",
			slog.Any("error", err))
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewPasswordService(logger *slog.Logger) PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
		logger: logger,
	}
}

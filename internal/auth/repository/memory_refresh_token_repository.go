// Package repository provides refresh-token persistence implementations.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
)

// MemoryRefreshTokenRepository is a process-local refresh-token store.
//
// It is an explicitly constructed, injected instance (never a package global)
// so tests and multi-tenant setups can own their lifecycle. Tokens do not
// survive a restart and the store does not share state across instances; use
// the PostgreSQL repository in production.
type MemoryRefreshTokenRepository struct {
	records sync.Map // map[string]*authDomain.RefreshToken keyed by token hash
}

// NewMemoryRefreshTokenRepository creates an empty in-memory store.
func NewMemoryRefreshTokenRepository() *MemoryRefreshTokenRepository {
	return &MemoryRefreshTokenRepository{}
}

// Create inserts a new refresh-token record keyed by its hash.
func (m *MemoryRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	clone := *token
	m.records.Store(token.TokenHash, &clone)
	return nil
}

// Consume atomically removes and returns the record for the given hash.
// LoadAndDelete guarantees a single winner under concurrent refresh attempts
// for the same token: the check-and-remove has no unguarded window.
func (m *MemoryRefreshTokenRepository) Consume(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	value, loaded := m.records.LoadAndDelete(tokenHash)
	if !loaded {
		return nil, authDomain.ErrRefreshTokenNotFound
	}
	record := value.(*authDomain.RefreshToken)

	if record.IsRevoked() {
		// Revocation is terminal; keep the record so later attempts still
		// classify as revoked in the logs.
		m.records.Store(tokenHash, record)
		return nil, authDomain.ErrRefreshTokenRevoked
	}

	if record.IsExpired(time.Now().UTC()) {
		// Lazy purge: the record stays deleted.
		return nil, authDomain.ErrRefreshTokenExpired
	}

	return record, nil
}

// Revoke marks the record revoked. Idempotent; reports whether a record exists.
func (m *MemoryRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	value, ok := m.records.Load(tokenHash)
	if !ok {
		return false, nil
	}

	record := value.(*authDomain.RefreshToken)
	if record.IsRevoked() {
		return true, nil
	}

	now := time.Now().UTC()
	revoked := *record
	revoked.RevokedAt = &now
	m.records.Store(tokenHash, &revoked)
	return true, nil
}

// RevokeAllForUser revokes every non-revoked record owned by the user.
func (m *MemoryRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	now := time.Now().UTC()
	count := 0

	m.records.Range(func(key, value any) bool {
		record := value.(*authDomain.RefreshToken)
		if record.UserID != userID || record.IsRevoked() {
			return true
		}

		revoked := *record
		revoked.RevokedAt = &now
		m.records.Store(key, &revoked)
		count++
		return true
	})

	return count, nil
}

// Len reports the number of stored records. Test helper.
func (m *MemoryRefreshTokenRepository) Len() int {
	count := 0
	m.records.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

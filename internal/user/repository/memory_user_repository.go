package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// MemoryUserRepository is a process-local user store for development and
// tests. Accounts do not survive a restart; use the PostgreSQL repository in
// production.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*userDomain.User
	byUsername map[string]*userDomain.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:       make(map[uuid.UUID]*userDomain.User),
		byUsername: make(map[string]*userDomain.User),
	}
}

// Create inserts a new user. Duplicate usernames return ErrUserAlreadyExists.
func (m *MemoryUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byUsername[user.Username]; exists {
		return userDomain.ErrUserAlreadyExists
	}
	if _, exists := m.byID[user.ID]; exists {
		return userDomain.ErrUserAlreadyExists
	}

	clone := *user
	m.byID[clone.ID] = &clone
	m.byUsername[clone.Username] = &clone
	return nil
}

// GetByID returns the user with the given id, or ErrUserNotFound.
func (m *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// GetByUsername returns the user with the given username, or ErrUserNotFound.
func (m *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byUsername[username]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// SetActive flips the user's active flag. Reports whether the user exists.
func (m *MemoryUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	user.IsActive = active
	return true, nil
}

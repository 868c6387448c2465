// Package usecase implements business logic for user account management.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authService "github.com/polishfootballnetwork/api/internal/auth/service"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// UserRepository stores user accounts.
type UserRepository interface {
	// Create inserts a new user, or ErrUserAlreadyExists on duplicates.
	Create(ctx context.Context, user *userDomain.User) error

	// GetByID returns the user with the given id, or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// GetByUsername returns the user with the given username, or ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)

	// SetActive flips the user's active flag. Reports whether the user exists.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
}

// CreateUserInput carries the parameters for creating a user account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     authDomain.Role
	IsActive bool
}

// UserUseCase orchestrates user account operations.
type UserUseCase interface {
	// Create hashes the password and stores a new user account.
	Create(ctx context.Context, input *CreateUserInput) (*userDomain.User, error)

	// Get returns the user with the given id, or ErrUserNotFound.
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// Deactivate disables the account. Reports whether the user exists.
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo    UserRepository
	passwordSvc authService.PasswordService
	logger      *slog.Logger
}

// NewUserUseCase creates a new user use case.
func NewUserUseCase(
	userRepo UserRepository,
	passwordSvc authService.PasswordService,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		logger:      logger,
	}
}

// Create hashes the password and stores a new user account. Unknown roles are
// rejected before anything is persisted.
func (u *userUseCase) Create(ctx context.Context, input *CreateUserInput) (*userDomain.User, error) {
	role, ok := authDomain.ParseRole(input.Role.String())
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown role "+input.Role.String())
	}

	passwordHash, err := u.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("user created",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role)
	return user, nil
}

// Get returns the user with the given id.
func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// Deactivate disables the account.
func (u *userUseCase) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	found, err := u.userRepo.SetActive(ctx, id, false)
	if err != nil {
		return false, err
	}
	if found {
		u.logger.Info("user deactivated", "user_id", id)
	}
	return found, nil
}

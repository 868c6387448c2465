// Package repository provides user persistence implementations.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/polishfootballnetwork/api/internal/database"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgreSQLUserRepository implements user persistence for PostgreSQL.
// Uses transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL user repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user. Duplicate usernames or emails return
// ErrUserAlreadyExists.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, username, email, password_hash, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return userDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID returns the user with the given id, or ErrUserNotFound.
func (p *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	query := `SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
			  FROM users WHERE id = $1`

	return p.getOne(ctx, query, id)
}

// GetByUsername returns the user with the given username, or ErrUserNotFound.
func (p *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	query := `SELECT id, username, email, password_hash, role, is_active, created_at, updated_at
			  FROM users WHERE username = $1`

	return p.getOne(ctx, query, username)
}

func (p *PostgreSQLUserRepository) getOne(ctx context.Context, query string, arg any) (*userDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	var user userDomain.User
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to fetch user")
	}
	return &user, nil
}

// SetActive flips the user's active flag. Reports whether the user exists.
func (p *PostgreSQLUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id, active)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to update user active flag")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read update result")
	}
	return affected > 0, nil
}

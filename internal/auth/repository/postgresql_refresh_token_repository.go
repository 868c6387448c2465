package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	"github.com/polishfootballnetwork/api/internal/database"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements refresh-token persistence for
// PostgreSQL. Rows are keyed by token hash (raw tokens are never stored) and
// indexed by user id for revoke-all. Uses transaction support via
// database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL refresh-token repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}

// Create inserts a new refresh-token record.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// Consume atomically removes and returns a live record for the given hash.
// The conditional DELETE ... RETURNING is the atomic gate: only one concurrent
// caller can delete the row, so a consumed token can never be refreshed twice.
// When the delete matches nothing, a follow-up read classifies the failure.
func (p *PostgreSQLRefreshTokenRepository) Consume(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)
	now := time.Now().UTC()

	query := `DELETE FROM refresh_tokens
			  WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > $2
			  RETURNING id, token_hash, user_id, expires_at, revoked_at, created_at`

	var record authDomain.RefreshToken
	err := querier.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&record.ID,
		&record.TokenHash,
		&record.UserID,
		&record.ExpiresAt,
		&record.RevokedAt,
		&record.CreatedAt,
	)
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(err, "failed to consume refresh token")
	}

	return nil, p.classifyConsumeFailure(ctx, tokenHash, now)
}

// classifyConsumeFailure inspects the row that refused the conditional delete.
// This read is diagnostic only; the delete above already settled the race.
func (p *PostgreSQLRefreshTokenRepository) classifyConsumeFailure(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT revoked_at, expires_at FROM refresh_tokens WHERE token_hash = $1`

	var revokedAt *time.Time
	var expiresAt time.Time
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(&revokedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authDomain.ErrRefreshTokenNotFound
		}
		return apperrors.Wrap(err, "failed to classify refresh token state")
	}

	if revokedAt != nil {
		return authDomain.ErrRefreshTokenRevoked
	}

	if expiresAt.Before(now) {
		// Lazy purge of the expired row; traffic drives cleanup.
		deleteQuery := `DELETE FROM refresh_tokens WHERE token_hash = $1 AND expires_at <= $2`
		if _, err := querier.ExecContext(ctx, deleteQuery, tokenHash, now); err != nil {
			return apperrors.Wrap(err, "failed to purge expired refresh token")
		}
		return authDomain.ErrRefreshTokenExpired
	}

	return authDomain.ErrRefreshTokenNotFound
}

// Revoke marks the record revoked. Idempotent; reports whether a record exists.
func (p *PostgreSQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = COALESCE(revoked_at, $2)
			  WHERE token_hash = $1`

	result, err := querier.ExecContext(ctx, query, tokenHash, time.Now().UTC())
	if err != nil {
		return false, apperrors.Wrap(err, "failed to revoke refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read revoke result")
	}
	return affected > 0, nil
}

// RevokeAllForUser revokes every non-revoked record owned by the user.
func (p *PostgreSQLRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = $2
			  WHERE user_id = $1 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, userID, time.Now().UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke user refresh tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read revoke-all result")
	}
	return int(affected), nil
}

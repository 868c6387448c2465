package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	"github.com/polishfootballnetwork/api/internal/auth/service"
	"github.com/polishfootballnetwork/api/internal/database"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	refreshRepo     RefreshTokenRepository
	passwordSvc     service.PasswordService
	tokenCodec      service.TokenCodec
	refreshSvc      service.RefreshTokenService
	txManager       database.TxManager
	refreshLifetime time.Duration
	logger          *slog.Logger
}

// NewAuthUseCase creates a new authentication use case.
func NewAuthUseCase(
	userRepo UserRepository,
	refreshRepo RefreshTokenRepository,
	passwordSvc service.PasswordService,
	tokenCodec service.TokenCodec,
	refreshSvc service.RefreshTokenService,
	txManager database.TxManager,
	refreshLifetime time.Duration,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		refreshRepo:     refreshRepo,
		passwordSvc:     passwordSvc,
		tokenCodec:      tokenCodec,
		refreshSvc:      refreshSvc,
		txManager:       txManager,
		refreshLifetime: refreshLifetime,
		logger:          logger,
	}
}

// Login authenticates credentials and issues a token pair. Unknown users,
// wrong passwords and inactive accounts all return ErrInvalidCredentials so
// the response cannot be used to enumerate accounts; the specific reason is
// only logged.
func (a *authUseCase) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := a.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			a.logger.Warn("login failed", "reason", "unknown user", "username", input.Username)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to fetch user for login")
	}

	if !a.passwordSvc.Verify(input.Password, user.PasswordHash) {
		a.logger.Warn("login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		a.logger.Warn("login failed", "reason", "user inactive", "user_id", user.ID)
		return nil, authDomain.ErrInvalidCredentials
	}

	pair, err := a.GenerateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	a.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return &LoginOutput{TokenPair: pair, User: user}, nil
}

// GenerateTokens issues an access token and a fresh refresh token for the
// user. Only the refresh token's hash is persisted.
func (a *authUseCase) GenerateTokens(ctx context.Context, user *userDomain.User) (*authDomain.TokenPair, error) {
	accessToken, expiresAt, err := a.tokenCodec.Generate(user.Principal())
	if err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := a.refreshSvc.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(a.refreshLifetime),
		CreatedAt: now,
	}
	if err := a.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: plainToken,
		TokenType:    authDomain.TokenType,
	}, nil
}

// ValidateAccessToken validates a bearer token and extracts its principal.
func (a *authUseCase) ValidateAccessToken(ctx context.Context, token string) authDomain.TokenValidationResult {
	return a.tokenCodec.Validate(token)
}

// Refresh rotates a refresh token. The presented token is consumed before the
// new pair is issued, so it can never mint two access tokens; consume and the
// replacement insert run in one transaction when the store supports it.
func (a *authUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	tokenHash := a.refreshSvc.HashToken(refreshToken)

	var pair *authDomain.TokenPair
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := a.refreshRepo.Consume(ctx, tokenHash)
		if err != nil {
			a.logger.Warn("refresh failed", "reason", err.Error())
			return err
		}

		user, err := a.userRepo.GetByID(ctx, record.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				a.logger.Warn("refresh failed", "reason", "user not found", "user_id", record.UserID)
				return a.revokeConsumed(ctx, record, authDomain.ErrInvalidRefreshToken)
			}
			return apperrors.Wrap(err, "failed to fetch user for refresh")
		}

		if !user.IsActive {
			a.logger.Warn("refresh failed", "reason", "user inactive", "user_id", user.ID)
			return a.revokeConsumed(ctx, record, authDomain.ErrUserInactive)
		}

		pair, err = a.GenerateTokens(ctx, user)
		if err != nil {
			return err
		}

		a.logger.Info("refresh token rotated", "user_id", user.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// revokeConsumed reinstates a consumed record in revoked state so later
// presentations of the same token classify as revoked, then returns reason.
func (a *authUseCase) revokeConsumed(
	ctx context.Context,
	record *authDomain.RefreshToken,
	reason error,
) error {
	now := time.Now().UTC()
	revoked := *record
	revoked.RevokedAt = &now
	if err := a.refreshRepo.Create(ctx, &revoked); err != nil {
		return apperrors.Wrap(err, "failed to revoke consumed refresh token")
	}
	return reason
}

// RevokeRefreshToken revokes a single refresh token. Idempotent.
func (a *authUseCase) RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	tokenHash := a.refreshSvc.HashToken(refreshToken)

	found, err := a.refreshRepo.Revoke(ctx, tokenHash)
	if err != nil {
		return false, err
	}

	a.logger.Info("refresh token revoked", "found", found)
	return found, nil
}

// RevokeAllUserTokens revokes every refresh token owned by the user.
func (a *authUseCase) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := a.refreshRepo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	a.logger.Info("revoked all user refresh tokens", "user_id", userID, "count", count)
	return count, nil
}

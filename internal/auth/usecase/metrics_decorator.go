package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	"github.com/polishfootballnetwork/api/internal/metrics"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation with its outcome and duration.
func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Login records metrics for credential authentication.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return output, err
}

// GenerateTokens records metrics for token pair issuance.
func (a *authUseCaseWithMetrics) GenerateTokens(
	ctx context.Context,
	user *userDomain.User,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.GenerateTokens(ctx, user)
	a.record(ctx, "generate_tokens", start, err)
	return pair, err
}

// ValidateAccessToken records metrics for access-token validation.
func (a *authUseCaseWithMetrics) ValidateAccessToken(
	ctx context.Context,
	token string,
) authDomain.TokenValidationResult {
	start := time.Now()
	result := a.next.ValidateAccessToken(ctx, token)

	var err error
	if !result.Valid {
		err = result.FailureErr
	}
	a.record(ctx, "validate_access_token", start, err)
	return result
}

// Refresh records metrics for refresh-token rotation.
func (a *authUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Refresh(ctx, refreshToken)
	a.record(ctx, "refresh", start, err)
	return pair, err
}

// RevokeRefreshToken records metrics for single-token revocation.
func (a *authUseCaseWithMetrics) RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	start := time.Now()
	found, err := a.next.RevokeRefreshToken(ctx, refreshToken)
	a.record(ctx, "revoke_refresh_token", start, err)
	return found, err
}

// RevokeAllUserTokens records metrics for user-wide revocation.
func (a *authUseCaseWithMetrics) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int, error) {
	start := time.Now()
	count, err := a.next.RevokeAllUserTokens(ctx, userID)
	a.record(ctx, "revoke_all_user_tokens", start, err)
	return count, err
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// mockBusinessMetrics is a testify mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// stubAuthUseCase returns canned results for decorator tests.
type stubAuthUseCase struct {
	loginErr   error
	refreshErr error
	valid      bool
}

func (s *stubAuthUseCase) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &LoginOutput{TokenPair: &authDomain.TokenPair{}}, nil
}

func (s *stubAuthUseCase) GenerateTokens(ctx context.Context, user *userDomain.User) (*authDomain.TokenPair, error) {
	return &authDomain.TokenPair{}, nil
}

func (s *stubAuthUseCase) ValidateAccessToken(ctx context.Context, token string) authDomain.TokenValidationResult {
	if s.valid {
		return authDomain.ValidationSuccess(&authDomain.Principal{}, "token-id")
	}
	return authDomain.ValidationFailure(authDomain.ValidationFailureExpired, errors.New("token expired"))
}

func (s *stubAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &authDomain.TokenPair{}, nil
}

func (s *stubAuthUseCase) RevokeRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	return true, nil
}

func (s *stubAuthUseCase) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func TestAuthUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Login", func(t *testing.T) {
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "auth", "login", "success").Once()
		m.On("RecordDuration", ctx, "auth", "login", mock.Anything, "success").Once()

		decorated := NewAuthUseCaseWithMetrics(&stubAuthUseCase{}, m)
		_, err := decorated.Login(ctx, &LoginInput{})
		assert.NoError(t, err)

		m.AssertExpectations(t)
	})

	t.Run("Error_Login", func(t *testing.T) {
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "auth", "login", "error").Once()
		m.On("RecordDuration", ctx, "auth", "login", mock.Anything, "error").Once()

		decorated := NewAuthUseCaseWithMetrics(&stubAuthUseCase{loginErr: authDomain.ErrInvalidCredentials}, m)
		_, err := decorated.Login(ctx, &LoginInput{})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)

		m.AssertExpectations(t)
	})

	t.Run("Error_ValidateAccessToken", func(t *testing.T) {
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "auth", "validate_access_token", "error").Once()
		m.On("RecordDuration", ctx, "auth", "validate_access_token", mock.Anything, "error").Once()

		decorated := NewAuthUseCaseWithMetrics(&stubAuthUseCase{valid: false}, m)
		result := decorated.ValidateAccessToken(ctx, "token")
		assert.False(t, result.Valid)

		m.AssertExpectations(t)
	})

	t.Run("Success_Refresh", func(t *testing.T) {
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "auth", "refresh", "success").Once()
		m.On("RecordDuration", ctx, "auth", "refresh", mock.Anything, "success").Once()

		decorated := NewAuthUseCaseWithMetrics(&stubAuthUseCase{}, m)
		_, err := decorated.Refresh(ctx, "token")
		assert.NoError(t, err)

		m.AssertExpectations(t)
	})
}

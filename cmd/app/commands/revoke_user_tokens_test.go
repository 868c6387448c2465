package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authRepository "github.com/polishfootballnetwork/api/internal/auth/repository"
	authService "github.com/polishfootballnetwork/api/internal/auth/service"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	"github.com/polishfootballnetwork/api/internal/database"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
	userRepository "github.com/polishfootballnetwork/api/internal/user/repository"
	userUseCase "github.com/polishfootballnetwork/api/internal/user/usecase"
)

// revokeFixture assembles an in-memory auth stack with one active user.
type revokeFixture struct {
	useCase authUseCase.AuthUseCase
	user    *userDomain.User
}

func newRevokeFixture(t *testing.T) *revokeFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := userRepository.NewMemoryUserRepository()
	passwordSvc := authService.NewPasswordService(logger)

	users := userUseCase.NewUserUseCase(userRepo, passwordSvc, logger)
	user, err := users.Create(context.Background(), &userUseCase.CreateUserInput{
		Username: "robert",
		Email:    "robert@pfn.pl",
		Password: "strong password 123",
		Role:     authDomain.RoleUser,
		IsActive: true,
	})
	require.NoError(t, err)

	useCase := authUseCase.NewAuthUseCase(
		userRepo,
		authRepository.NewMemoryRefreshTokenRepository(),
		passwordSvc,
		authService.NewTokenCodec(authService.JWTConfig{
			SigningSecret: "revoke-test-signing-secret",
			Issuer:        "pfn-api",
			Audience:      "pfn-clients",
			Lifetime:      15 * time.Minute,
		}),
		authService.NewRefreshTokenService(),
		database.NewNopTxManager(),
		7*24*time.Hour,
		logger,
	)

	return &revokeFixture{useCase: useCase, user: user}
}

func TestRunRevokeUserTokens(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_TextOutput", func(t *testing.T) {
		fixture := newRevokeFixture(t)

		// Two live sessions for the user.
		_, err := fixture.useCase.GenerateTokens(context.Background(), fixture.user)
		require.NoError(t, err)
		_, err = fixture.useCase.GenerateTokens(context.Background(), fixture.user)
		require.NoError(t, err)

		var out bytes.Buffer
		err = RunRevokeUserTokens(
			context.Background(),
			fixture.useCase,
			logger,
			fixture.user.ID.String(),
			"text",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Revoked 2 refresh token(s)")
		assert.Contains(t, out.String(), fixture.user.ID.String())
	})

	t.Run("Success_JSONOutput", func(t *testing.T) {
		fixture := newRevokeFixture(t)

		_, err := fixture.useCase.GenerateTokens(context.Background(), fixture.user)
		require.NoError(t, err)

		var out bytes.Buffer
		err = RunRevokeUserTokens(
			context.Background(),
			fixture.useCase,
			logger,
			fixture.user.ID.String(),
			"json",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"revoked_count": 1`)
	})

	t.Run("Success_NoTokens", func(t *testing.T) {
		fixture := newRevokeFixture(t)

		var out bytes.Buffer
		err := RunRevokeUserTokens(
			context.Background(),
			fixture.useCase,
			logger,
			fixture.user.ID.String(),
			"text",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Revoked 0 refresh token(s)")
	})

	t.Run("Error_InvalidUserID", func(t *testing.T) {
		fixture := newRevokeFixture(t)

		var out bytes.Buffer
		err := RunRevokeUserTokens(
			context.Background(),
			fixture.useCase,
			logger,
			"not-a-uuid",
			"text",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid user id")
	})
}

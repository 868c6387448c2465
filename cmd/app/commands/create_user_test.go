package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/polishfootballnetwork/api/internal/auth/service"
	userRepository "github.com/polishfootballnetwork/api/internal/user/repository"
	userUseCase "github.com/polishfootballnetwork/api/internal/user/usecase"
)

func newTestUserUseCase() userUseCase.UserUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return userUseCase.NewUserUseCase(
		userRepository.NewMemoryUserRepository(),
		authService.NewPasswordService(logger),
		logger,
	)
}

func TestRunCreateUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_TextOutput", func(t *testing.T) {
		useCase := newTestUserUseCase()
		var out bytes.Buffer

		err := RunCreateUser(
			context.Background(),
			useCase,
			logger,
			"robert", "robert@pfn.pl", "strong password 123",
			"moderator", true, "text",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "User created:")
		assert.Contains(t, out.String(), "robert")
		assert.Contains(t, out.String(), "moderator")
		assert.NotContains(t, out.String(), "strong password 123")
	})

	t.Run("Success_JSONOutput", func(t *testing.T) {
		useCase := newTestUserUseCase()
		var out bytes.Buffer

		err := RunCreateUser(
			context.Background(),
			useCase,
			logger,
			"anna", "anna@pfn.pl", "strong password 123",
			"user", true, "json",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"username": "anna"`)
		assert.Contains(t, out.String(), `"role": "user"`)
		assert.NotContains(t, out.String(), "password")
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		useCase := newTestUserUseCase()
		var out bytes.Buffer

		err := RunCreateUser(
			context.Background(),
			useCase,
			logger,
			"robert", "robert@pfn.pl", "strong password 123",
			"root", true, "text",
			IOTuple{Reader: strings.NewReader(""), Writer: &out},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid role")
		assert.Empty(t, out.String())
	})

	t.Run("Error_DuplicateUsername", func(t *testing.T) {
		useCase := newTestUserUseCase()
		var out bytes.Buffer
		ioTuple := IOTuple{Reader: strings.NewReader(""), Writer: &out}

		err := RunCreateUser(
			context.Background(), useCase, logger,
			"robert", "robert@pfn.pl", "strong password 123",
			"user", true, "text", ioTuple,
		)
		require.NoError(t, err)

		err = RunCreateUser(
			context.Background(), useCase, logger,
			"robert", "other@pfn.pl", "strong password 123",
			"user", true, "text", ioTuple,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

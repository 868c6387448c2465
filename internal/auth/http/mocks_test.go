package http

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	"github.com/polishfootballnetwork/api/internal/httputil"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// mockAuthUseCase is a testify mock for usecase.AuthUseCase.
type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Login(
	ctx context.Context,
	input *authUseCase.LoginInput,
) (*authUseCase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.LoginOutput), args.Error(1)
}

func (m *mockAuthUseCase) GenerateTokens(
	ctx context.Context,
	user *userDomain.User,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *mockAuthUseCase) ValidateAccessToken(
	ctx context.Context,
	token string,
) authDomain.TokenValidationResult {
	args := m.Called(ctx, token)
	return args.Get(0).(authDomain.TokenValidationResult)
}

func (m *mockAuthUseCase) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *mockAuthUseCase) RevokeRefreshToken(
	ctx context.Context,
	refreshToken string,
) (bool, error) {
	args := m.Called(ctx, refreshToken)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthUseCase) RevokeAllUserTokens(
	ctx context.Context,
	userID uuid.UUID,
) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorWriter() *httputil.ErrorWriter {
	return httputil.NewErrorWriter(testLogger(), false)
}

func testPrincipal(role authDomain.Role) *authDomain.Principal {
	return &authDomain.Principal{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    "robert@pfn.pl",
		Username: "robert",
		Roles:    []authDomain.Role{role},
	}
}

// injectPrincipal is a test middleware that bypasses token validation.
func injectPrincipal(principal *authDomain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New()
}

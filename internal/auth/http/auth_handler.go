package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polishfootballnetwork/api/internal/auth/http/dto"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	"github.com/polishfootballnetwork/api/internal/httputil"
	customValidation "github.com/polishfootballnetwork/api/internal/validation"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	useCase     authUseCase.AuthUseCase
	errorWriter *httputil.ErrorWriter
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(
	useCase authUseCase.AuthUseCase,
	errorWriter *httputil.ErrorWriter,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		useCase:     useCase,
		errorWriter: errorWriter,
		logger:      logger,
	}
}

// LoginHandler authenticates credentials and issues a token pair.
// POST /v1/auth/login - No authentication required.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		h.errorWriter.WriteError(c, customValidation.WrapValidationError(err))
		return
	}

	output, err := h.useCase.Login(c.Request.Context(), &authUseCase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		TokenResponse: dto.NewTokenResponse(output.TokenPair),
		User:          dto.NewUserResponse(output.User),
	})
}

// RefreshHandler rotates a refresh token into a new token pair.
// POST /v1/auth/refresh - No authentication required; the refresh token is
// the credential. The presented token is consumed whether or not rotation
// succeeds.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		h.errorWriter.WriteError(c, customValidation.WrapValidationError(err))
		return
	}

	pair, err := h.useCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

// LogoutHandler revokes the presented refresh token.
// POST /v1/auth/logout - No authentication required; revocation of an unknown
// token still returns 204 so the response cannot confirm token existence.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		h.errorWriter.WriteError(c, customValidation.WrapValidationError(err))
		return
	}

	if _, err := h.useCase.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LogoutAllHandler revokes every refresh token owned by the authenticated user.
// POST /v1/auth/logout-all - Requires authentication.
func (h *AuthHandler) LogoutAllHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		h.errorWriter.WriteError(c, apperrors.ErrUnauthorized)
		return
	}

	count, err := h.useCase.RevokeAllUserTokens(c.Request.Context(), principal.ID)
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LogoutAllResponse{RevokedCount: count})
}

// AdminRevokeUserTokensHandler revokes every refresh token owned by the
// target user, ending all their sessions.
// POST /v1/admin/users/:id/revoke-tokens - Requires the administrator role.
func (h *AuthHandler) AdminRevokeUserTokensHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "id must be a valid UUID"))
		return
	}

	count, err := h.useCase.RevokeAllUserTokens(c.Request.Context(), userID)
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LogoutAllResponse{RevokedCount: count})
}

// MeHandler returns the identity carried by the presented access token.
// GET /v1/auth/me - Requires authentication.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		h.errorWriter.WriteError(c, apperrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, dto.NewPrincipalResponse(principal))
}

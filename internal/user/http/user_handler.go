// Package http provides HTTP handlers for user account operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/polishfootballnetwork/api/internal/auth/http"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	"github.com/polishfootballnetwork/api/internal/httputil"
	"github.com/polishfootballnetwork/api/internal/user/http/dto"
	userUseCase "github.com/polishfootballnetwork/api/internal/user/usecase"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	useCase     userUseCase.UserUseCase
	authorizer  *authUseCase.Authorizer
	errorWriter *httputil.ErrorWriter
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(
	useCase userUseCase.UserUseCase,
	authorizer *authUseCase.Authorizer,
	errorWriter *httputil.ErrorWriter,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		useCase:     useCase,
		authorizer:  authorizer,
		errorWriter: errorWriter,
		logger:      logger,
	}
}

// GetUserHandler returns a user account.
// GET /v1/users/:id - Requires authentication. Users can read their own
// account; reading another user's account requires at least the moderator
// role.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		h.errorWriter.WriteError(c, apperrors.ErrUnauthorized)
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "id must be a valid UUID"))
		return
	}

	if !h.authorizer.CanAccessResource(principal, userID) {
		h.logger.Debug("user access denied",
			slog.String("requester_id", principal.ID.String()),
			slog.String("target_id", userID.String()))
		h.errorWriter.WriteError(c, apperrors.ErrForbidden)
		return
	}

	user, err := h.useCase.Get(c.Request.Context(), userID)
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeactivateUserHandler disables a user account. The account keeps its data
// but can no longer log in or refresh sessions.
// POST /v1/admin/users/:id/deactivate - Requires the administrator role.
func (h *UserHandler) DeactivateUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorWriter.WriteError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "id must be a valid UUID"))
		return
	}

	found, err := h.useCase.Deactivate(c.Request.Context(), userID)
	if err != nil {
		h.errorWriter.WriteError(c, err)
		return
	}
	if !found {
		h.errorWriter.WriteError(c, apperrors.ErrNotFound)
		return
	}

	h.logger.Info("user deactivated by administrator",
		slog.String("target_id", userID.String()))
	c.Status(http.StatusNoContent)
}

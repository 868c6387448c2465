package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
	"github.com/polishfootballnetwork/api/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer access token
// in the Authorization header ("bearer" matched case-insensitively).
//
// On success the principal extracted from the token is stored in the request
// context for downstream handlers via GetPrincipal(). Missing or malformed
// headers and any token validation failure return 401; the failure kind is
// only logged.
func AuthenticationMiddleware(
	useCase authUseCase.AuthUseCase,
	errorWriter *httputil.ErrorWriter,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			errorWriter.WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			errorWriter.WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			errorWriter.WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		result := useCase.ValidateAccessToken(c.Request.Context(), token)
		if !result.Valid {
			logger.Debug("authentication failed: invalid access token",
				slog.String("failure_kind", string(result.FailureKind)),
				slog.Any("error", result.FailureErr))
			errorWriter.WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), result.Principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole authorizes the authenticated principal against a minimum role.
// Holding a higher role in the hierarchy always satisfies a lower requirement.
//
// MUST be used after AuthenticationMiddleware. A missing principal returns
// 401; an insufficient role returns 403.
func RequireRole(
	minimum authDomain.Role,
	authorizer *authUseCase.Authorizer,
	errorWriter *httputil.ErrorWriter,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			errorWriter.WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !authorizer.HasRole(principal, minimum) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("user_id", principal.ID.String()),
				slog.String("required_role", minimum.String()),
				slog.String("highest_role", principal.HighestRole().String()))
			errorWriter.WriteError(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

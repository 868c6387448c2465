package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
)

func TestAuthenticationMiddleware(t *testing.T) {
	newRouter := func(t *testing.T, useCase *mockAuthUseCase) *gin.Engine {
		router := newTestRouter(t)
		router.Use(AuthenticationMiddleware(useCase, testErrorWriter(), testLogger()))
		router.GET("/protected", func(c *gin.Context) {
			principal, ok := GetPrincipal(c.Request.Context())
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, gin.H{"username": principal.Username})
		})
		return router
	}

	t.Run("Success", func(t *testing.T) {
		principal := testPrincipal(authDomain.RoleUser)
		useCase := &mockAuthUseCase{}
		useCase.On("ValidateAccessToken", mock.Anything, "good-token").
			Return(authDomain.ValidationSuccess(principal, "token-id"))

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "robert")
	})

	t.Run("Success_CaseInsensitiveScheme", func(t *testing.T) {
		principal := testPrincipal(authDomain.RoleUser)
		useCase := &mockAuthUseCase{}
		useCase.On("ValidateAccessToken", mock.Anything, "good-token").
			Return(authDomain.ValidationSuccess(principal, "token-id"))

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bEaReR good-token")
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		useCase := &mockAuthUseCase{}

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		useCase.AssertNotCalled(t, "ValidateAccessToken")
	})

	t.Run("Error_WrongScheme", func(t *testing.T) {
		useCase := &mockAuthUseCase{}

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		useCase := &mockAuthUseCase{}

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer ")
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		useCase := &mockAuthUseCase{}
		useCase.On("ValidateAccessToken", mock.Anything, "expired-token").
			Return(authDomain.ValidationFailure(
				authDomain.ValidationFailureExpired,
				errors.New("token expired"),
			))

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		newRouter(t, useCase).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "unauthorized")
		// The failure kind never reaches the response body.
		assert.NotContains(t, recorder.Body.String(), "expired")
	})
}

func TestRequireRole(t *testing.T) {
	newRouter := func(t *testing.T, principal *authDomain.Principal, minimum authDomain.Role) *gin.Engine {
		router := newTestRouter(t)
		if principal != nil {
			router.Use(injectPrincipal(principal))
		}
		router.Use(RequireRole(minimum, authUseCase.NewAuthorizer(), testErrorWriter(), testLogger()))
		router.GET("/admin", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("Success_ExactRole", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(t, testPrincipal(authDomain.RoleModerator), authDomain.RoleModerator).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Success_HigherRole", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(t, testPrincipal(authDomain.RoleSuperAdmin), authDomain.RoleModerator).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Error_InsufficientRole", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(t, testPrincipal(authDomain.RoleUser), authDomain.RoleAdministrator).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Error_NoPrincipal", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(t, nil, authDomain.RoleUser).ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

package http

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	authHTTP "github.com/polishfootballnetwork/api/internal/auth/http"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	"github.com/polishfootballnetwork/api/internal/config"
	"github.com/polishfootballnetwork/api/internal/httputil"
	"github.com/polishfootballnetwork/api/internal/metrics"
	userHTTP "github.com/polishfootballnetwork/api/internal/user/http"
)

// correlationHeader carries the request correlation ID on both requests and
// responses. Incoming values are reused so traces span services.
const correlationHeader = "X-Correlation-ID"

// RouterDeps carries the collaborators the router wires into the pipeline.
type RouterDeps struct {
	AuthHandler *authHTTP.AuthHandler
	UserHandler *userHTTP.UserHandler
	AuthUseCase authUseCase.AuthUseCase
	Authorizer  *authUseCase.Authorizer
	ErrorWriter *httputil.ErrorWriter
	HTTPMetrics *metrics.HTTPMetrics
	Notifier    AlertNotifier
	DB          *sql.DB
	Logger      *slog.Logger
}

// NewRouter assembles the API router and its middleware pipeline.
//
// Pipeline order is deliberate: security headers first so even early failures
// carry them, then correlation IDs so every later stage can log them, then
// the terminal error handler so panics anywhere downstream are normalized,
// then request logging and performance monitoring wrapping the actual work.
func NewRouter(ctx context.Context, cfg *config.Config, deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(SecurityHeadersMiddleware(SecurityHeadersConfig{
		Development:           cfg.IsDevelopment(),
		HSTSEnabled:           !cfg.IsDevelopment(),
		HSTSMaxAgeSeconds:     cfg.HSTSMaxAgeSeconds,
		HSTSIncludeSubdomains: cfg.HSTSIncludeSubdomains,
		HSTSPreload:           cfg.HSTSPreload,
	}))
	router.Use(requestid.New(requestid.WithCustomHeaderStrKey(correlationHeader)))
	router.Use(ErrorHandlerMiddleware(deps.ErrorWriter))
	router.Use(RequestLoggingMiddleware(deps.Logger, cfg.MaxLoggedBodyBytes))
	router.Use(PerformanceMiddleware(PerformanceConfig{
		SlowThreshold:               cfg.SlowRequestThreshold,
		VerySlowThreshold:           cfg.VerySlowRequestThreshold,
		LargeResponseThresholdBytes: cfg.LargeResponseThresholdBytes,
		MemoryDeltaThresholdBytes:   cfg.MemoryDeltaThresholdBytes,
	}, deps.HTTPMetrics, deps.Notifier, deps.Logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, deps.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			deps.ErrorWriter,
			deps.Logger,
		))
	}

	router.GET("/health", HealthHandler())
	router.GET("/ready", ReadinessHandler(deps.DB))

	authenticate := authHTTP.AuthenticationMiddleware(deps.AuthUseCase, deps.ErrorWriter, deps.Logger)
	authRateLimit := authHTTP.AuthRateLimitMiddleware(
		cfg.AuthRateLimitWindow,
		cfg.AuthRateLimitMaxAttempts,
		deps.ErrorWriter,
		deps.Logger,
	)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		if cfg.SensitiveCacheControlEnabled {
			// Token-bearing responses must never land in a cache.
			auth.Use(NoStoreMiddleware())
		}
		{
			// Credential-bearing endpoints run the failed-attempt limiter.
			auth.POST("/login", authRateLimit, deps.AuthHandler.LoginHandler)
			auth.POST("/refresh", authRateLimit, deps.AuthHandler.RefreshHandler)
			auth.POST("/logout", deps.AuthHandler.LogoutHandler)
			auth.POST("/logout-all", authenticate, deps.AuthHandler.LogoutAllHandler)
			auth.GET("/me", authenticate, deps.AuthHandler.MeHandler)
		}

		users := v1.Group("/users", authenticate)
		{
			users.GET("/:id", deps.UserHandler.GetUserHandler)
		}

		// Operational endpoints for administrators.
		admin := v1.Group("/admin", authenticate,
			authHTTP.RequireRole(authDomain.RoleAdministrator, deps.Authorizer, deps.ErrorWriter, deps.Logger))
		{
			admin.POST("/users/:id/revoke-tokens", deps.AuthHandler.AdminRevokeUserTokensHandler)
			admin.POST("/users/:id/deactivate", deps.UserHandler.DeactivateUserHandler)
		}
	}

	return router
}

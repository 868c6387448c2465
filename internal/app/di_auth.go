package app

import (
	"fmt"

	authHTTP "github.com/polishfootballnetwork/api/internal/auth/http"
	authRepository "github.com/polishfootballnetwork/api/internal/auth/repository"
	authService "github.com/polishfootballnetwork/api/internal/auth/service"
	authUseCase "github.com/polishfootballnetwork/api/internal/auth/usecase"
	userHTTP "github.com/polishfootballnetwork/api/internal/user/http"
	userRepository "github.com/polishfootballnetwork/api/internal/user/repository"
	userUseCase "github.com/polishfootballnetwork/api/internal/user/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService(c.Logger())
	})
	return c.passwordService
}

// TokenCodec returns the access token codec.
// It fails when no signing secret is configured, since tokens signed with an
// empty key would be trivially forgeable.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		if c.config.JWTSigningSecret == "" {
			c.initErrors["tokenCodec"] = fmt.Errorf("JWT_SIGNING_SECRET is required")
			return
		}
		c.tokenCodec = authService.NewTokenCodec(authService.JWTConfig{
			SigningSecret: c.config.JWTSigningSecret,
			Issuer:        c.config.JWTIssuer,
			Audience:      c.config.JWTAudience,
			Lifetime:      c.config.AccessTokenLifetime,
			Leeway:        c.config.ClockSkewTolerance,
		})
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// RefreshTokenService returns the refresh token generator.
func (c *Container) RefreshTokenService() authService.RefreshTokenService {
	c.refreshTokenServiceInit.Do(func() {
		c.refreshTokenService = authService.NewRefreshTokenService()
	})
	return c.refreshTokenService
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// RefreshTokenRepository returns the refresh token repository instance.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	var err error
	c.refreshTokenRepoInit.Do(func() {
		c.refreshTokenRepo, err = c.initRefreshTokenRepository()
		if err != nil {
			c.initErrors["refreshTokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["refreshTokenRepo"]; exists {
		return nil, storedErr
	}
	return c.refreshTokenRepo, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// Authorizer returns the role-based authorizer.
func (c *Container) Authorizer() *authUseCase.Authorizer {
	c.authorizerInit.Do(func() {
		c.authorizer = authUseCase.NewAuthorizer()
	})
	return c.authorizer
}

// AuthHandler returns the authentication HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// UserHandler returns the user HTTP handler.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		c.userHandler, err = c.initUserHandler()
		if err != nil {
			c.initErrors["userHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}
	return userRepository.NewPostgreSQLUserRepository(db), nil
}

// initRefreshTokenRepository creates the refresh token repository instance.
func (c *Container) initRefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
	}
	return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
}

// initAuthUseCase creates the authentication use case with all its
// dependencies, wrapped with business metrics instrumentation.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	refreshRepo, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for auth use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(
		userRepo,
		refreshRepo,
		c.PasswordService(),
		tokenCodec,
		c.RefreshTokenService(),
		txManager,
		c.config.RefreshTokenLifetime,
		c.Logger(),
	)

	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}
	return userUseCase.NewUserUseCase(userRepo, c.PasswordService(), c.Logger()), nil
}

// initAuthHandler creates the authentication HTTP handler.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}
	return authHTTP.NewAuthHandler(useCase, c.ErrorWriter(), c.Logger()), nil
}

// initUserHandler creates the user HTTP handler.
func (c *Container) initUserHandler() (*userHTTP.UserHandler, error) {
	useCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return userHTTP.NewUserHandler(useCase, c.Authorizer(), c.ErrorWriter(), c.Logger()), nil
}

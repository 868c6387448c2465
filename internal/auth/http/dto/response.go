package dto

import (
	"time"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	userDomain "github.com/polishfootballnetwork/api/internal/user/domain"
)

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
}

// NewTokenResponse builds a TokenResponse from a token pair.
func NewTokenResponse(pair *authDomain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.ExpiresAt,
		RefreshToken: pair.RefreshToken,
	}
}

// UserResponse is the public projection of a user account. The password hash
// is never serialized.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// NewUserResponse builds a UserResponse from a user.
func NewUserResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}
}

// LoginResponse carries the issued token pair and the authenticated user.
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// PrincipalResponse is the identity embedded in the presented access token.
type PrincipalResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// NewPrincipalResponse builds a PrincipalResponse from a principal.
func NewPrincipalResponse(principal *authDomain.Principal) PrincipalResponse {
	roles := make([]string, 0, len(principal.Roles))
	for _, role := range principal.Roles {
		roles = append(roles, role.String())
	}

	return PrincipalResponse{
		ID:       principal.ID.String(),
		Username: principal.Username,
		Email:    principal.Email,
		Roles:    roles,
	}
}

// LogoutAllResponse reports how many refresh tokens were revoked.
type LogoutAllResponse struct {
	RevokedCount int `json:"revoked_count"`
}

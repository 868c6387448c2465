package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/polishfootballnetwork/api/internal/auth/domain"
	apperrors "github.com/polishfootballnetwork/api/internal/errors"
)

// accessTokenClaims is the claim set embedded in every access token.
type accessTokenClaims struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig holds the signing parameters for access tokens.
type JWTConfig struct {
	SigningSecret string
	Issuer        string
	Audience      string
	// Lifetime is how long generated tokens stay valid.
	Lifetime time.Duration
	// Leeway is the clock-skew tolerance applied during validation.
	Leeway time.Duration
}

// jwtCodec implements TokenCodec using HMAC-SHA256 signed JWTs.
type jwtCodec struct {
	cfg JWTConfig
}

// Generate builds the claim set (subject id, email, username, unique token id,
// issued-at, role claims) and signs it with the symmetric key.
func (j *jwtCodec) Generate(principal *authDomain.Principal) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(j.cfg.Lifetime)

	roles := make([]string, 0, len(principal.Roles))
	for _, role := range principal.Roles {
		roles = append(roles, role.String())
	}

	claims := accessTokenClaims{
		Email:    principal.Email,
		Username: principal.Username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.SigningSecret))
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// Validate verifies signature, issuer, audience and expiry (with configured
// clock-skew leeway) and extracts the principal. Every failure is classified
// into a typed result; Validate never lets a parse error escape.
func (j *jwtCodec) Validate(tokenStr string) authDomain.TokenValidationResult {
	claims := &accessTokenClaims{}

	_, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(j.cfg.SigningSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithAudience(j.cfg.Audience),
		jwt.WithLeeway(j.cfg.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return authDomain.ValidationFailure(classifyTokenError(err), err)
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authDomain.ValidationFailure(
			authDomain.ValidationFailureMalformedSubject,
			fmt.Errorf("malformed subject claim %q: %w", claims.Subject, err),
		)
	}

	// Unknown role claims are dropped: an unparseable role grants nothing.
	roles := make([]authDomain.Role, 0, len(claims.Roles))
	for _, raw := range claims.Roles {
		if role, ok := authDomain.ParseRole(raw); ok {
			roles = append(roles, role)
		}
	}

	principal := &authDomain.Principal{
		ID:       subjectID,
		Email:    claims.Email,
		Username: claims.Username,
		Roles:    roles,
	}

	return authDomain.ValidationSuccess(principal, claims.ID)
}

// classifyTokenError maps jwt parse errors to validation failure kinds.
func classifyTokenError(err error) authDomain.ValidationFailureKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ValidationFailureExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.ValidationFailureInvalidSignature
	default:
		return authDomain.ValidationFailureOther
	}
}

// NewTokenCodec creates a TokenCodec signing HS256 JWTs with the given config.
func NewTokenCodec(cfg JWTConfig) TokenCodec {
	return &jwtCodec{cfg: cfg}
}

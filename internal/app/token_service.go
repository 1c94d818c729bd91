package app

import (
	"errors"
	"fmt"
	"time"

	"feedback/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for bearer tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims are the claims carried by issued bearer tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	Auth string `json:"auth"`
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService creates a TokenService. An empty secret disables bearer
// authentication.
func NewTokenService(secret string, validity time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), validity: validity}
}

// Enabled reports whether tokens can be issued.
func (s *TokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue signs a token for the user.
func (s *TokenService) Issue(u *domain.User) (string, error) {
	if !s.Enabled() {
		return "", errors.New("token signing is not configured")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Auth: domain.JoinAuthorities(u.Authorities),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its claims.
func (s *TokenService) Parse(tokenString string) (*TokenClaims, error) {
	if !s.Enabled() {
		return nil, ErrInvalidToken
	}
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// TokenService signs HS256 session tokens. Expiry is short and there is no
// refresh flow; an expired token forces re-authentication.
type TokenService struct {
	secret string
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl}
}

func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": claims.Email,
		"name":  claims.Name,
		"exp":   time.Now().Add(s.ttl).Unix(),
	})
	return t.SignedString([]byte(s.secret))
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/taskhub-api/internal/core/domain"
	"github.com/taskhub/taskhub-api/internal/core/ports"
)

// defaultTokenTTL is the embedded token expiry. Note: the session cookie is
// issued with a shorter 24h max-age (see handler); the mismatch is inherited
// behavior and kept on purpose.
const defaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies HS256-signed session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the payload identity with a fixed expiry from
// the current time.
func (s *TokenService) Issue(payload ports.TokenPayload) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": payload.UserID,
		"email":   payload.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry. Every failure collapses into
// domain.ErrInvalidToken so callers cannot probe which check failed.
func (s *TokenService) Verify(token string) (*ports.TokenPayload, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenPayload{UserID: userID, Email: email}, nil
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"filingdesk/internal/model"
)

var (
	// ErrInvalidToken is returned for malformed, mis-signed or expired tokens
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// TokenService issues and validates signed session tokens. A token binds a
// caller to one session and its owning user; it is session plumbing, not
// account authentication.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for one session
func (s *TokenService) Issue(sessionID, userID, formType string) (string, error) {
	claims := &model.SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		FormType:  formType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a session token and returns its claims
func (s *TokenService) Validate(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims binds a token to one form session and its owner. One logical
// owner mutates one answer set; the token is how that contract is enforced
// at the transport boundary.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	FormType  string `json:"formType"`
	jwt.RegisteredClaims
}

// StartSessionResponse is returned when a session is created or resumed
type StartSessionResponse struct {
	Session *FormSession `json:"session"`
	Token   string       `json:"token"`
}

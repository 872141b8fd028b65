package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"filingdesk/internal/service"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionId"
	UserIDKey    contextKey = "userId"
	FormTypeKey  contextKey = "formType"
)

// SessionMiddleware validates session tokens and pins each request to the
// session the token was issued for
type SessionMiddleware struct {
	tokenSvc *service.TokenService
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(tokenSvc *service.TokenService) *SessionMiddleware {
	return &SessionMiddleware{tokenSvc: tokenSvc}
}

// RequireSession validates the session token from the Authorization header
// or the token query param, and rejects tokens minted for a different
// session than the one in the path
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenSvc.Validate(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		if pathSession, ok := mux.Vars(r)["sessionId"]; ok && pathSession != claims.SessionID {
			http.Error(w, `{"error":"token not valid for this session"}`, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)
		ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, FormTypeKey, claims.FormType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

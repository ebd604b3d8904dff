package http

import (
	"context"
	"net/http"
	"strings"

	"rentwheels-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// AuthMiddleware validates bearer tokens and places the claims in the
// request context. Role checks happen per handler; the middleware only
// authenticates.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token", "")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom extracts the authenticated claims from a request context.
func ClaimsFrom(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims
}

// canApprove is the authorization decision handed to the extension engine.
// The engine itself never derives roles.
func canApprove(claims *security.UserClaims) bool {
	return claims != nil && claims.HasAnyRole(security.RoleManager, security.RoleAdmin)
}

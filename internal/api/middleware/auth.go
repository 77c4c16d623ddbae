package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/example/storefront/internal/auth"
)

// AccessTokenCookie is the cookie that carries the session token for browsers.
const AccessTokenCookie = "access_token"

// ExtractToken extracts JWT token from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const (
	UserContextKey      contextKey = "user"
	CartTokenContextKey contextKey = "cartToken"
)

// OptionalAuth adds the session's claims to the context when a valid token is
// present. A missing, expired or forged token leaves the request anonymous.
func OptionalAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := ExtractToken(r); tokenString != "" {
				if claims, err := jwtService.ValidateAccessToken(tokenString); err == nil {
					ctx := context.WithValue(r.Context(), UserContextKey, claims)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext retrieves user claims from the request context
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// RoleFromContext returns the session role, or auth.RoleNone without a session.
func RoleFromContext(ctx context.Context) auth.Role {
	claims, ok := GetUserFromContext(ctx)
	if !ok {
		return auth.RoleNone
	}
	return claims.Role
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CartTokenCookie = "cart_token"
	CartTokenHeader = "X-Cart-Token"
)

// CartToken makes sure every request carries an anonymous cart token. The
// token is read from the X-Cart-Token header or the cart_token cookie; when
// neither is present a new one is issued as a cookie and echoed in the header.
func CartToken(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
			if token == "" {
				if cookie, err := r.Cookie(CartTokenCookie); err == nil {
					token = strings.TrimSpace(cookie.Value)
				}
			}
			if token == "" {
				token = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     CartTokenCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(CartTokenHeader, token)

			ctx := context.WithValue(r.Context(), CartTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartTokenFromContext returns the token set by CartToken.
func CartTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(CartTokenContextKey).(string)
	return token
}

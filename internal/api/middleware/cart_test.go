package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveCartToken(req *http.Request) (*httptest.ResponseRecorder, string) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartTokenFromContext(r.Context())
	})
	rec := httptest.NewRecorder()
	CartToken(time.Hour)(handler).ServeHTTP(rec, req)
	return rec, seen
}

func TestCartToken_IssuesNewToken(t *testing.T) {
	rec, token := serveCartToken(httptest.NewRequest(http.MethodGet, "/cart", nil))

	_, err := uuid.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, token, rec.Header().Get(CartTokenHeader))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CartTokenCookie, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestCartToken_ReusesCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CartTokenCookie, Value: "existing"})

	rec, token := serveCartToken(req)

	assert.Equal(t, "existing", token)
	assert.Empty(t, rec.Result().Cookies())
}

func TestCartToken_HeaderWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CartTokenCookie, Value: "from-cookie"})
	req.Header.Set(CartTokenHeader, "from-header")

	_, token := serveCartToken(req)

	assert.Equal(t, "from-header", token)
}

func TestCartTokenFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, CartTokenFromContext(req.Context()))
}

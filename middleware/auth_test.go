package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "mapka_token"

var testKey = []byte("test-secret")

func signedToken(t *testing.T, role string, key []byte, expiry time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID:   "u1",
		Username: "admin",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func doRequest(cookie string, handler echo.HandlerFunc, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSession(t *testing.T) {
	mw := Session(cookieName, testKey)

	t.Run("missing cookie", func(t *testing.T) {
		rec := doRequest("", okHandler, mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		token := signedToken(t, "admin", []byte("other-key"), time.Hour)
		rec := doRequest(token, okHandler, mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signedToken(t, "admin", testKey, -time.Hour)
		rec := doRequest(token, okHandler, mw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token sets context", func(t *testing.T) {
		token := signedToken(t, "admin", testKey, time.Hour)
		rec := doRequest(token, func(c echo.Context) error {
			assert.Equal(t, "admin", c.Get(CtxUsername))
			assert.Equal(t, "admin", c.Get(CtxRole))
			claims, ok := c.Get(CtxClaims).(*Claims)
			require.True(t, ok)
			assert.Equal(t, "u1", claims.UserID)
			return c.String(http.StatusOK, "ok")
		}, mw)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	mw := Session(cookieName, testKey)

	t.Run("admin passes", func(t *testing.T) {
		token := signedToken(t, "admin", testKey, time.Hour)
		rec := doRequest(token, okHandler, mw, RequireStaff)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("moder passes", func(t *testing.T) {
		token := signedToken(t, "moder", testKey, time.Hour)
		rec := doRequest(token, okHandler, mw, RequireStaff)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		token := signedToken(t, "user", testKey, time.Hour)
		rec := doRequest(token, okHandler, mw, RequireStaff)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no session still unauthorized", func(t *testing.T) {
		rec := doRequest("", okHandler, mw, RequireStaff)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestFromCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: signedToken(t, "moder", testKey, time.Hour)})
	c := e.NewContext(req, httptest.NewRecorder())

	claims, err := FromCookie(c, cookieName, testKey)
	require.NoError(t, err)
	assert.Equal(t, "moder", claims.Role)
	assert.Equal(t, "admin", claims.Username)
}

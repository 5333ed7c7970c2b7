package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mapkadev/mapka/models"
)

// Context keys set by Session.
const (
	CtxClaims   = "claims"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Claims extends jwt.RegisteredClaims with the session's user identity.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// FromCookie parses and validates the session cookie. Missing cookie,
// bad signature and expired token all come back as an error.
func FromCookie(c echo.Context, cookieName string, key []byte) (*Claims, error) {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, errors.New("no session cookie")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Session returns middleware that requires a valid session cookie and puts
// the claims on the request context. No or invalid cookie yields 401.
func Session(cookieName string, key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := FromCookie(c, cookieName, key)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			c.Set(CtxClaims, claims)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// RequireStaff rejects sessions whose role may not use the admin panel.
// Must run after Session.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(string)
		if !models.IsStaff(role) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}

package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/tokens"
)

const (
	// HeaderToken is the request header carrying the bearer credential.
	HeaderToken = "token"

	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireAuth rejects with 403 uniformly: an absent, malformed, badly
// signed and expired token are indistinguishable to the caller.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := c.Request().Header.Get(HeaderToken)
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}

		claims, err := tokens.ClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil || claims.Subject == "" {
			return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxIsAdmin, claims.IsAdmin)

		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		isAdmin, _ := c.Get(CtxIsAdmin).(bool)
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
		return next(c)
	})
}

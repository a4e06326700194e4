// Package auth guards the BFF routes behind the operator's session.
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/session"
)

const sessionKey = "session"

// publicRoutes bypass the session check, keyed by method and route template.
var publicRoutes = map[string]bool{
	"GET /health":   true,
	"GET /metrics":  true,
	"POST /session": true,
	"GET /session":  true,
}

// IsPublic reports whether a request to method and route needs no session.
func IsPublic(method, route string) bool {
	return publicRoutes[method+" "+route]
}

// Skipper returns true for requests that should bypass RequireSession.
func Skipper(c echo.Context) bool {
	return IsPublic(c.Request().Method, c.Path())
}

// RequireSession rejects requests with 401 while no operator is signed in.
// The active session is stored on the echo context.
func RequireSession(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Skipper(c) {
				return next(c)
			}
			s, ok := store.Get()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// DevPassthrough lets every request through. Used when ENV=development so
// screens can be exercised without a backend account.
func DevPassthrough() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return next
	}
}

// SessionFromContext returns the session RequireSession stored, if any.
func SessionFromContext(c echo.Context) (session.Session, bool) {
	s, ok := c.Get(sessionKey).(session.Session)
	return s, ok
}

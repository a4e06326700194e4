package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/telemetry"
)

// Metrics records request counts and latency by route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			telemetry.RecordHTTPRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}

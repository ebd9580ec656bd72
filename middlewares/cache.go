package middlewares

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PublicCache sets a short Cache-Control on successful GET responses. The
// public directory pages re-read the same option lists and month views
// constantly; a small shared TTL keeps them cheap without going stale.
func PublicCache(maxAge int) echo.MiddlewareFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAge)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet {
				c.Response().Header().Set("Cache-Control", value)
			}
			return next(c)
		}
	}
}

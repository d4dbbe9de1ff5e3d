package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
)

// Browsers cache the preflight answer so the overlay widget does not pay a
// round trip per poll.
const corsMaxAge = "600"

// CORS allows cross-origin calls from origins matching pattern. The room
// overlay and the streamer dashboard are served from other hosts, so the
// API answers preflights for the verbs the routes actually expose.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("Vary", "Origin")

			origin := c.Request().Header.Get("Origin")
			if origin == "" || !pattern.MatchString(origin) {
				return next(c)
			}
			header.Set("Access-Control-Allow-Origin", origin)

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			// Safari 12 does not treat `*` as covering Authorization.
			header.Set("Access-Control-Allow-Headers", "*, Authorization")
			header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			header.Set("Access-Control-Max-Age", corsMaxAge)
			return c.NoContent(http.StatusNoContent)
		}
	}
}

package middleware

import (
	"github.com/carousell/ct-go/pkg/httputils"
	"github.com/labstack/echo/v4"
)

// AutoVersion answers the build-info probe before routing, so deploy
// tooling can read the running version without hitting the API group.
func AutoVersion(args ...httputils.AutoVersioningOption) echo.MiddlewareFunc {
	versioning := httputils.NewAutoVersioning(args...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			versioning.Handle(c.Response().Writer, c.Request())
			return next(c)
		}
	}
}

package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxofest/live-chat/internal/models"
)

// domainError maps usecase errors onto HTTP status codes. Anything
// unrecognized surfaces as a 500 through the error handler.
func domainError(err error) error {
	var rejected *models.RejectedError
	if errors.As(err, &rejected) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, rejected.Reason)
	}

	var slow *models.SlowModeError
	if errors.As(err, &slow) {
		return echo.NewHTTPError(http.StatusTooManyRequests, slow.Error())
	}

	switch {
	case errors.Is(err, models.ErrRoomNotFound), errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrRoomExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, models.ErrWrongPassword):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return err
}

func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			c.Logger().Error(err)
		} else {
			he = &echo.HTTPError{
				Code:    http.StatusInternalServerError,
				Message: http.StatusText(http.StatusInternalServerError),
			}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(he.Code)
			} else {
				err = c.JSON(he.Code, he)
			}
			if err != nil {
				c.Logger().Error(err)
			}
		}
	}
}

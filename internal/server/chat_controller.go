package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	pkgmdw "github.com/fluxofest/live-chat/internal/server/middleware"
	"github.com/fluxofest/live-chat/internal/usecase"
)

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *controller) SendMessage(c echo.Context) error {
	sess, ok := pkgmdw.GetSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chatUsecase.SendMessage(c.Request().Context(), usecase.SendMessageParams{
		RoomID:  c.Param("id"),
		Session: sess,
		Content: req.Content,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *controller) ListMessages(c echo.Context) error {
	msgs, err := h.chatUsecase.RoomMessages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *controller) ListPins(c echo.Context) error {
	pins, err := h.chatUsecase.ActivePins(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, pins)
}

func (h *controller) GetHype(c echo.Context) error {
	status, err := h.chatUsecase.Hype(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, status)
}

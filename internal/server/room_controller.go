package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	pkgmdw "github.com/fluxofest/live-chat/internal/server/middleware"
	"github.com/fluxofest/live-chat/internal/usecase"
)

type createRoomRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Emoji    string `json:"emoji" validate:"max=8"`
	Password string `json:"password" validate:"max=72"`
	TTLHours int    `json:"ttl_hours" validate:"min=0,max=168"`
}

type joinRoomRequest struct {
	Password string `json:"password"`
}

func (h *controller) CreateRoom(c echo.Context) error {
	sess, ok := pkgmdw.GetSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.roomUsecase.CreateRoom(c.Request().Context(), usecase.CreateRoomParams{
		Name:      req.Name,
		Emoji:     req.Emoji,
		Password:  req.Password,
		TTL:       time.Duration(req.TTLHours) * time.Hour,
		CreatedBy: sess.UserID,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *controller) ListRooms(c echo.Context) error {
	views, err := h.roomUsecase.ListRooms(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *controller) GetRoom(c echo.Context) error {
	view, err := h.roomUsecase.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *controller) JoinRoom(c echo.Context) error {
	sess, ok := pkgmdw.GetSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req joinRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.roomUsecase.JoinRoom(c.Request().Context(), c.Param("id"), sess.UserID, req.Password); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "joined"})
}

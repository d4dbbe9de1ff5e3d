package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluxofest/live-chat/internal/usecase"
)

type Controller interface {
	Health(c echo.Context) error

	CreateRoom(c echo.Context) error
	ListRooms(c echo.Context) error
	GetRoom(c echo.Context) error
	JoinRoom(c echo.Context) error

	SendMessage(c echo.Context) error
	ListMessages(c echo.Context) error
	ListPins(c echo.Context) error
	GetHype(c echo.Context) error

	CreateDonation(c echo.Context) error
	PaymentWebhook(c echo.Context) error

	Subscribe(c echo.Context) error
}

type controller struct {
	chatUsecase     usecase.ChatUsecase
	roomUsecase     usecase.RoomUsecase
	donationUsecase usecase.DonationUsecase
	ws              *wsHandler
}

func NewController(
	chatUsecase usecase.ChatUsecase,
	roomUsecase usecase.RoomUsecase,
	donationUsecase usecase.DonationUsecase,
	ws *wsHandler,
) Controller {
	return &controller{
		chatUsecase:     chatUsecase,
		roomUsecase:     roomUsecase,
		donationUsecase: donationUsecase,
		ws:              ws,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "live-chat",
	})
}

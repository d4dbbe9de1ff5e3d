package server

import (
	"io"
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"

	pkgmdw "github.com/fluxofest/live-chat/internal/server/middleware"
	"github.com/fluxofest/live-chat/internal/usecase"
)

type createDonationRequest struct {
	Content string  `json:"content" validate:"required,max=200"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

func (h *controller) CreateDonation(c echo.Context) error {
	sess, ok := pkgmdw.GetSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var req createDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.donationUsecase.CreateDonation(c.Request().Context(), usecase.CreateDonationParams{
		RoomID:  c.Param("id"),
		Session: sess,
		Content: req.Content,
		Amount:  req.Amount,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// PaymentWebhook handles the provider callback for a settled charge. The
// provider's payload shape varies by event version, so fields are pulled
// with gjson instead of a rigid struct.
func (h *controller) PaymentWebhook(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	payload := gjson.ParseBytes(body)
	if event := payload.Get("event").String(); event != "" && event != "charge.confirmed" {
		log.Infow(c.Request().Context(), "ignoring webhook event", "event", event)
		return c.NoContent(http.StatusOK)
	}

	messageID := payload.Get("data.message_id").String()
	if messageID == "" {
		messageID = payload.Get("message_id").String()
	}
	if messageID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing message_id")
	}

	err = h.donationUsecase.ConfirmDonation(c.Request().Context(), usecase.ConfirmDonationParams{
		MessageID: messageID,
		ChargeID:  payload.Get("data.charge_id").String(),
		Amount:    payload.Get("data.amount").Value(),
	})
	if err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusOK)
}

func readBody(c echo.Context) ([]byte, error) {
	defer c.Request().Body.Close()
	return io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
}

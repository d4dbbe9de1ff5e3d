package server

import (
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/fluxofest/live-chat/internal/hub"
	"github.com/fluxofest/live-chat/internal/usecase"
)

type wsHandler struct {
	hub      *hub.Hub
	registry *usecase.EngineRegistry
	upgrader websocket.Upgrader
}

func newWSHandler(h *hub.Hub, registry *usecase.EngineRegistry) *wsHandler {
	return &wsHandler{
		hub:      h,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origins are filtered at the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the request and attaches the connection to the room's
// event stream. The socket is receive-only; the first frames replay the
// room's current state so late joiners render the same screen.
func (h *controller) Subscribe(c echo.Context) error {
	roomID := c.Param("id")
	ctx := c.Request().Context()

	conn, err := h.ws.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := h.ws.hub.Attach(roomID, conn)
	h.ws.replayState(roomID, client)

	log.Infow(ctx, "subscriber attached",
		"room_id", roomID,
		"subscribers", h.ws.hub.Subscribers(roomID))
	return nil
}

func (w *wsHandler) replayState(roomID string, client *hub.Client) {
	eng, ok := w.registry.Peek(roomID)
	if !ok {
		return
	}
	for _, event := range eng.Snapshot() {
		client.Send(event)
	}
}

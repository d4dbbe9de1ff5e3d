package hub

import (
	"encoding/json"
	"sync"

	"github.com/carousell/ct-go/pkg/logger"

	"github.com/fluxofest/live-chat/internal/models"
)

// Hub fans engine events out to websocket subscribers, grouped by room.
// The flow is strictly one-way: clients subscribe and receive; sends go
// through the HTTP API where moderation and slow mode apply.
type Hub struct {
	log   *logger.Logger
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func New() *Hub {
	return &Hub{
		log:   logger.MustNamed("hub"),
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Broadcast delivers an event to every subscriber of its room. Slow clients
// whose send queue is full are dropped rather than blocking the fan-out.
func (h *Hub) Broadcast(event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorw("marshal event", "error", err, "type", event.Type)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[event.RoomID]))
	for c := range h.rooms[event.RoomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			h.log.Warnw("dropping slow subscriber", "room_id", event.RoomID)
			h.Detach(c)
			c.Close()
		}
	}
}

// BroadcastAll delivers a batch of events.
func (h *Hub) BroadcastAll(events []models.Event) {
	for _, event := range events {
		h.Broadcast(event)
	}
}

func (h *Hub) attach(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
}

// Detach removes a client from its room set.
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.rooms[c.roomID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
}

// Subscribers reports how many clients are attached to a room.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

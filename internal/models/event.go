package models

import "time"

// EngagementMode is the hype meter state.
type EngagementMode string

const (
	ModeNormal EngagementMode = "normal"
	ModeFluxo  EngagementMode = "fluxo"
)

// HypeStatus is a snapshot of a room's engagement meter.
type HypeStatus struct {
	Level       float64        `json:"level"`
	Mode        EngagementMode `json:"mode"`
	FluxoEndsAt *time.Time     `json:"fluxo_ends_at,omitempty"`
}

// EventType tags engine events fanned out to room subscribers.
type EventType string

const (
	EventMessage        EventType = "message"
	EventPinned         EventType = "pinned"
	EventPinExpired     EventType = "pin_expired"
	EventHype           EventType = "hype"
	EventFluxoStarted   EventType = "fluxo_started"
	EventFluxoEnded     EventType = "fluxo_ended"
	EventOverlay        EventType = "overlay"
	EventOverlayCleared EventType = "overlay_cleared"
)

// Event is a state transition produced by the engagement engine. Only the
// field matching the event type is populated.
type Event struct {
	Type    EventType      `json:"type"`
	RoomID  string         `json:"room_id"`
	Message *ChatMessage   `json:"message,omitempty"`
	Pin     *PinnedMessage `json:"pin,omitempty"`
	Hype    *HypeStatus    `json:"hype,omitempty"`
	Overlay *Overlay       `json:"overlay,omitempty"`
}

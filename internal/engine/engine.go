package engine

import (
	"sync"
	"time"

	"github.com/fluxofest/live-chat/internal/models"
)

// Config carries the engine tunables. Defaults match the product rules; the
// service config can override them for load tests.
type Config struct {
	BufferSize      int
	FluxoDwell      time.Duration
	OverlayDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		BufferSize:      100,
		FluxoDwell:      60 * time.Second,
		OverlayDuration: 6 * time.Second,
	}
}

// Outcome reports what happened to one incoming message.
type Outcome struct {
	Accepted  bool
	Duplicate bool
	Message   models.ChatMessage
	Events    []models.Event
}

// Engine owns all live state of one chat room: the sliding message buffer,
// the active pin set, the hype meter and the donation overlay. Every mutation
// happens under one lock so a donation's hype bump, pin insert and overlay
// trigger land as a single transaction. The engine performs no I/O and owns
// no timers; the registry drives Tick at a fixed cadence and fans out the
// returned events.
//
// Messages reach OnMessage only after moderation; validation rejections never
// touch engine state.
type Engine struct {
	mu      sync.Mutex
	roomID  string
	cfg     Config
	buffer  *Buffer
	pins    *PinSet
	hype    *HypeMeter
	overlay *models.Overlay
	pending map[string]models.ChatMessage
}

func New(roomID string, cfg Config) *Engine {
	if cfg.BufferSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		roomID:  roomID,
		cfg:     cfg,
		buffer:  NewBuffer(cfg.BufferSize),
		pins:    NewPinSet(),
		hype:    NewHypeMeter(cfg.FluxoDwell),
		pending: make(map[string]models.ChatMessage),
	}
}

// OnMessage admits one validated message. The id is deduplicated against the
// current buffer first: an optimistic local echo and the transport's
// broadcast of the same message converge on exactly one entry.
func (e *Engine) OnMessage(msg models.ChatMessage, now time.Time) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.buffer.Contains(msg.ID) {
		return Outcome{Accepted: true, Duplicate: true, Message: msg}
	}

	if msg.Color == "" {
		msg.Color = ColorFor(msg.Author.Name)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if msg.IsDonation && msg.Amount < 0 {
		msg.Amount = 0
	}

	e.buffer.Append(msg)

	events := []models.Event{{
		Type:    models.EventMessage,
		RoomID:  e.roomID,
		Message: &msg,
	}}

	if msg.IsDonation && msg.Status == models.DonationPending {
		e.pending[msg.ID] = msg
	}

	events = e.boost(MessagePoints(msg), now, events)

	if msg.IsDonation && msg.Status == models.DonationConfirmed {
		events = e.applyTier(msg, now, events)
	}

	return Outcome{Accepted: true, Message: msg, Events: events}
}

// ConfirmDonation flips a pending donation to confirmed and applies its
// tier effects: hype boost, pin, and for top-tier amounts the overlay.
// Unknown ids (never seen, or already confirmed) are absorbed as no-ops so
// duplicate payment webhooks are harmless.
func (e *Engine) ConfirmDonation(id string, amount float64, now time.Time) ([]models.Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	msg, ok := e.pending[id]
	if !ok {
		return nil, false
	}
	delete(e.pending, id)

	if amount < 0 {
		amount = 0
	}
	msg.Amount = amount
	msg.Status = models.DonationConfirmed
	e.buffer.Update(msg)

	events := []models.Event{{
		Type:    models.EventMessage,
		RoomID:  e.roomID,
		Message: &msg,
	}}
	events = e.boost(DonationPoints(amount), now, events)
	events = e.applyTier(msg, now, events)
	return events, true
}

// Tick advances the room one second: hype decay or fluxo completion, the
// pin sweep, and overlay expiry.
func (e *Engine) Tick(now time.Time) []models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	var events []models.Event

	before := e.hype.Status()
	fluxoEnded := e.hype.Tick(now)
	after := e.hype.Status()
	if fluxoEnded {
		events = append(events, models.Event{
			Type:   models.EventFluxoEnded,
			RoomID: e.roomID,
			Hype:   &after,
		})
	} else if after.Level != before.Level {
		events = append(events, models.Event{
			Type:   models.EventHype,
			RoomID: e.roomID,
			Hype:   &after,
		})
	}

	for _, expired := range e.pins.Sweep(now) {
		pin := expired
		events = append(events, models.Event{
			Type:   models.EventPinExpired,
			RoomID: e.roomID,
			Pin:    &pin,
		})
	}

	if e.overlay != nil && !now.Before(e.overlay.ExpiresAt) {
		e.overlay = nil
		events = append(events, models.Event{
			Type:   models.EventOverlayCleared,
			RoomID: e.roomID,
		})
	}

	return events
}

// Messages returns the buffer contents, oldest first.
func (e *Engine) Messages() []models.ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.Current()
}

// ActivePins returns the current pin set.
func (e *Engine) ActivePins() []models.PinnedMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pins.Active()
}

// Hype snapshots the engagement meter.
func (e *Engine) Hype() models.HypeStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hype.Status()
}

// Snapshot replays the room's visible state as a flat event list: buffered
// messages oldest first, then active pins, the hype meter, and any overlay.
// Late subscribers process it exactly like live traffic.
func (e *Engine) Snapshot() []models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	var events []models.Event
	for _, msg := range e.buffer.Current() {
		m := msg
		events = append(events, models.Event{
			Type:    models.EventMessage,
			RoomID:  e.roomID,
			Message: &m,
		})
	}
	for _, pin := range e.pins.Active() {
		p := pin
		events = append(events, models.Event{
			Type:   models.EventPinned,
			RoomID: e.roomID,
			Pin:    &p,
		})
	}
	status := e.hype.Status()
	events = append(events, models.Event{
		Type:   models.EventHype,
		RoomID: e.roomID,
		Hype:   &status,
	})
	if e.overlay != nil {
		o := *e.overlay
		events = append(events, models.Event{
			Type:    models.EventOverlay,
			RoomID:  e.roomID,
			Overlay: &o,
		})
	}
	return events
}

// CurrentOverlay returns the active overlay, or nil.
func (e *Engine) CurrentOverlay() *models.Overlay {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay == nil {
		return nil
	}
	o := *e.overlay
	return &o
}

func (e *Engine) boost(points float64, now time.Time, events []models.Event) []models.Event {
	entered := e.hype.Boost(points, now)
	status := e.hype.Status()
	if entered {
		return append(events, models.Event{
			Type:   models.EventFluxoStarted,
			RoomID: e.roomID,
			Hype:   &status,
		})
	}
	return append(events, models.Event{
		Type:   models.EventHype,
		RoomID: e.roomID,
		Hype:   &status,
	})
}

func (e *Engine) applyTier(msg models.ChatMessage, now time.Time, events []models.Event) []models.Event {
	info := Classify(msg.Amount)
	if info.Tier == TierNone {
		return events
	}

	if pin, ok := e.pins.Pin(msg, info.PinDuration, now); ok {
		events = append(events, models.Event{
			Type:   models.EventPinned,
			RoomID: e.roomID,
			Pin:    &pin,
		})
	}

	if info.OverlayEligible {
		// A new qualifying donation replaces the current overlay; there is
		// no queue.
		overlay := models.Overlay{
			Message:   msg,
			ExpiresAt: now.Add(e.cfg.OverlayDuration),
		}
		e.overlay = &overlay
		events = append(events, models.Event{
			Type:    models.EventOverlay,
			RoomID:  e.roomID,
			Overlay: &overlay,
		})
	}

	return events
}

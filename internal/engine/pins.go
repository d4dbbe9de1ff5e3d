package engine

import (
	"time"

	"github.com/fluxofest/live-chat/internal/models"
)

// PinSet tracks currently pinned donation messages. Entries are kept in
// insertion order; expiry happens on the periodic sweep, not lazily.
type PinSet struct {
	entries []models.PinnedMessage
	ids     map[string]struct{}
}

func NewPinSet() *PinSet {
	return &PinSet{ids: make(map[string]struct{})}
}

// Pin inserts msg with an expiry of now+duration. Pinning an id that is
// already active is a no-op and returns false.
func (p *PinSet) Pin(msg models.ChatMessage, duration time.Duration, now time.Time) (models.PinnedMessage, bool) {
	if _, ok := p.ids[msg.ID]; ok {
		return models.PinnedMessage{}, false
	}
	pin := models.PinnedMessage{
		ChatMessage: msg,
		ExpiresAt:   now.Add(duration),
	}
	p.entries = append(p.entries, pin)
	p.ids[msg.ID] = struct{}{}
	return pin, true
}

// Sweep removes and returns every pin with expiresAt <= now.
func (p *PinSet) Sweep(now time.Time) []models.PinnedMessage {
	var expired []models.PinnedMessage
	kept := p.entries[:0]
	for _, pin := range p.entries {
		if !now.Before(pin.ExpiresAt) {
			expired = append(expired, pin)
			delete(p.ids, pin.ID)
			continue
		}
		kept = append(kept, pin)
	}
	p.entries = kept
	return expired
}

// Active returns the current pin set in insertion order. Display ordering
// (soonest-expiring first or last) is a client concern.
func (p *PinSet) Active() []models.PinnedMessage {
	out := make([]models.PinnedMessage, len(p.entries))
	copy(out, p.entries)
	return out
}

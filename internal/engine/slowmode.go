package engine

import (
	"sync"
	"time"
)

// SlowMode enforces a minimum interval between consecutive sends of one
// user. The check is against a single last-send timestamp per user, not per
// room: switching rooms does not reset the cooldown.
type SlowMode struct {
	window   time.Duration
	mu       sync.Mutex
	lastSend map[string]time.Time
}

func NewSlowMode(window time.Duration) *SlowMode {
	return &SlowMode{
		window:   window,
		lastSend: make(map[string]time.Time),
	}
}

// Check records a send attempt. It returns (true, 0) when the send is
// allowed, or (false, remaining) with the cooldown left. Only allowed sends
// advance the timestamp: a rejected attempt does not extend the window.
func (s *SlowMode) Check(userID string, now time.Time) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.lastSend[userID]
	if ok {
		elapsed := now.Sub(last)
		if elapsed < s.window {
			return false, s.window - elapsed
		}
	}
	s.lastSend[userID] = now
	return true, 0
}

package engine

import (
	"github.com/fluxofest/live-chat/internal/models"
)

// Buffer is a bounded, insertion-ordered log of chat messages. Once the cap
// is exceeded the oldest entries are evicted. It keeps an id set so the
// orchestrator can cheaply reconcile optimistic local echoes with the
// transport's broadcast of the same message.
type Buffer struct {
	cap  int
	msgs []models.ChatMessage
	ids  map[string]struct{}
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		cap: capacity,
		ids: make(map[string]struct{}),
	}
}

// Contains reports whether a message id is currently buffered.
func (b *Buffer) Contains(id string) bool {
	_, ok := b.ids[id]
	return ok
}

// Append inserts msg at the tail, evicting from the head until the size is
// back at the cap.
func (b *Buffer) Append(msg models.ChatMessage) {
	b.msgs = append(b.msgs, msg)
	b.ids[msg.ID] = struct{}{}
	for len(b.msgs) > b.cap {
		delete(b.ids, b.msgs[0].ID)
		b.msgs = b.msgs[1:]
	}
}

// Update replaces the buffered message with the same id, if still present.
func (b *Buffer) Update(msg models.ChatMessage) bool {
	if !b.Contains(msg.ID) {
		return false
	}
	for i := range b.msgs {
		if b.msgs[i].ID == msg.ID {
			b.msgs[i] = msg
			return true
		}
	}
	return false
}

// Len returns the number of buffered messages.
func (b *Buffer) Len() int {
	return len(b.msgs)
}

// Current returns the buffered messages, oldest first.
func (b *Buffer) Current() []models.ChatMessage {
	out := make([]models.ChatMessage, len(b.msgs))
	copy(out, b.msgs)
	return out
}

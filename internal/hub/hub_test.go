package hub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxofest/live-chat/internal/models"
)

func newTestClient(roomID string) *Client {
	return &Client{
		roomID: roomID,
		send:   make(chan []byte, 4),
		done:   make(chan struct{}),
	}
}

func TestBroadcastDelivers(t *testing.T) {
	h := New()
	c := newTestClient("r1")
	h.attach("r1", c)

	h.Broadcast(models.Event{Type: models.EventHype, RoomID: "r1"})

	require.Len(t, c.send, 1)
	assert.Equal(t, 1, h.Subscribers("r1"))
}

func TestBroadcastAfterCloseDoesNotPanic(t *testing.T) {
	h := New()
	c := newTestClient("r1")
	h.attach("r1", c)

	// A disconnecting reader detaches and closes between the hub's
	// snapshot and the channel send; neither order may panic.
	c.Close()
	h.Broadcast(models.Event{Type: models.EventHype, RoomID: "r1"})

	h.Detach(c)
	h.Broadcast(models.Event{Type: models.EventHype, RoomID: "r1"})
	assert.Zero(t, h.Subscribers("r1"))
}

func TestBroadcastConcurrentWithDisconnect(t *testing.T) {
	h := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		c := newTestClient("r1")
		h.attach("r1", c)

		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Detach(c)
			c.Close()
		}()
		go func() {
			defer wg.Done()
			h.Broadcast(models.Event{Type: models.EventMessage, RoomID: "r1"})
		}()
	}
	wg.Wait()
}

func TestBroadcastDropsSlowSubscriber(t *testing.T) {
	h := New()
	c := &Client{
		roomID: "r1",
		send:   make(chan []byte), // unbuffered, nobody draining
		done:   make(chan struct{}),
	}
	h.attach("r1", c)

	h.Broadcast(models.Event{Type: models.EventHype, RoomID: "r1"})

	assert.Zero(t, h.Subscribers("r1"))
	select {
	case <-c.done:
	default:
		t.Fatal("slow subscriber was not closed")
	}
}

func TestSendAfterClose(t *testing.T) {
	c := newTestClient("r1")
	c.Close()
	c.Send(models.Event{Type: models.EventHype, RoomID: "r1"})
	assert.Empty(t, c.send)
}

func TestBroadcastScopedToRoom(t *testing.T) {
	h := New()
	c1 := newTestClient("r1")
	c2 := newTestClient("r2")
	h.attach("r1", c1)
	h.attach("r2", c2)

	h.Broadcast(models.Event{Type: models.EventHype, RoomID: "r1"})

	assert.Len(t, c1.send, 1)
	assert.Empty(t, c2.send)
}

package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxofest/live-chat/internal/models"
)

func msgWithID(id string) models.ChatMessage {
	return models.ChatMessage{ID: id, Content: "msg " + id}
}

func TestBufferCap(t *testing.T) {
	t.Parallel()

	b := NewBuffer(100)
	for i := 0; i < 150; i++ {
		b.Append(msgWithID(fmt.Sprintf("m%03d", i)))
	}

	current := b.Current()
	require.Len(t, current, 100)
	assert.Equal(t, "m050", current[0].ID, "oldest surviving entry")
	assert.Equal(t, "m149", current[99].ID, "newest entry last")

	assert.False(t, b.Contains("m049"), "evicted ids must leave the index")
	assert.True(t, b.Contains("m050"))
}

func TestBufferOrdering(t *testing.T) {
	t.Parallel()

	b := NewBuffer(10)
	b.Append(msgWithID("a"))
	b.Append(msgWithID("b"))
	b.Append(msgWithID("c"))

	current := b.Current()
	require.Len(t, current, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{current[0].ID, current[1].ID, current[2].ID})
}

func TestBufferUpdate(t *testing.T) {
	t.Parallel()

	b := NewBuffer(10)
	b.Append(msgWithID("a"))

	updated := msgWithID("a")
	updated.Status = models.DonationConfirmed
	require.True(t, b.Update(updated))
	assert.Equal(t, models.DonationConfirmed, b.Current()[0].Status)

	assert.False(t, b.Update(msgWithID("ghost")))
}

func TestBufferCurrentIsACopy(t *testing.T) {
	t.Parallel()

	b := NewBuffer(10)
	b.Append(msgWithID("a"))

	snapshot := b.Current()
	snapshot[0].Content = "mutated"
	assert.Equal(t, "msg a", b.Current()[0].Content)
}

package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxofest/live-chat/internal/models"
)

func newTestEngine() *Engine {
	return New("room1", DefaultConfig())
}

func plainMsg(id, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:      id,
		RoomID:  "room1",
		Author:  models.Author{UserID: "u1", Name: "ana"},
		Content: content,
	}
}

func pendingDonation(id string, amount float64) models.ChatMessage {
	msg := plainMsg(id, "super chat!")
	msg.IsDonation = true
	msg.Amount = amount
	msg.Status = models.DonationPending
	return msg
}

func eventTypes(events []models.Event) []models.EventType {
	out := make([]models.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestEngineDedup(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	first := e.OnMessage(plainMsg("m1", "oi"), now)
	require.True(t, first.Accepted)
	require.False(t, first.Duplicate)

	// Remote echo of the optimistic local send.
	second := e.OnMessage(plainMsg("m1", "oi"), now.Add(200*time.Millisecond))
	assert.True(t, second.Duplicate)
	assert.Empty(t, second.Events, "a duplicate is a pure no-op")

	assert.Len(t, e.Messages(), 1)
	assert.Equal(t, 0.5, e.Hype().Level, "hype bumped exactly once")
}

func TestEngineAssignsColorAndTimestamp(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	out := e.OnMessage(plainMsg("m1", "oi"), now)
	assert.Equal(t, ColorFor("ana"), out.Message.Color)
	assert.Equal(t, now, out.Message.CreatedAt)
}

func TestEnginePendingDonationIsNeutral(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	out := e.OnMessage(pendingDonation("d1", 80), now)
	require.True(t, out.Accepted)

	assert.Equal(t, 0.5, e.Hype().Level, "pending donation boosts like a plain message")
	assert.Empty(t, e.ActivePins(), "pending donation must not pin")
	assert.Nil(t, e.CurrentOverlay(), "pending donation must not trigger the overlay")
}

func TestEngineConfirmDonation(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(pendingDonation("d1", 25), now)

	events, ok := e.ConfirmDonation("d1", 25, now.Add(2*time.Second))
	require.True(t, ok)

	types := eventTypes(events)
	assert.Contains(t, types, models.EventPinned)
	assert.NotContains(t, types, models.EventOverlay, "VIP tier is not overlay eligible")

	pins := e.ActivePins()
	require.Len(t, pins, 1)
	assert.Equal(t, "d1", pins[0].ID)
	assert.Equal(t, now.Add(2*time.Second).Add(10*time.Minute), pins[0].ExpiresAt)

	// 0.5 from arrival + 25*0.5 on confirmation.
	assert.Equal(t, 13.0, e.Hype().Level)

	msgs := e.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.DonationConfirmed, msgs[0].Status)
}

func TestEngineConfirmUnknownDonation(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	_, ok := e.ConfirmDonation("ghost", 50, now)
	assert.False(t, ok)

	// Duplicate webhook for an already-confirmed donation.
	e.OnMessage(pendingDonation("d1", 50), now)
	_, ok = e.ConfirmDonation("d1", 50, now)
	require.True(t, ok)
	_, ok = e.ConfirmDonation("d1", 50, now)
	assert.False(t, ok, "second confirmation is absorbed")
	assert.Len(t, e.ActivePins(), 1)
}

func TestEngineSubThresholdDonation(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(pendingDonation("d1", 3), now)
	events, ok := e.ConfirmDonation("d1", 3, now)
	require.True(t, ok)

	assert.NotContains(t, eventTypes(events), models.EventPinned)
	assert.Empty(t, e.ActivePins(), "amounts under 5 stay plain messages")
}

func TestEngineOverlayReplacement(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(pendingDonation("d1", 60), now)
	e.OnMessage(pendingDonation("d2", 90), now)

	_, ok := e.ConfirmDonation("d1", 60, now)
	require.True(t, ok)
	first := e.CurrentOverlay()
	require.NotNil(t, first)
	assert.Equal(t, "d1", first.Message.ID)

	// A new qualifying donation replaces the overlay instead of queuing.
	_, ok = e.ConfirmDonation("d2", 90, now.Add(2*time.Second))
	require.True(t, ok)
	second := e.CurrentOverlay()
	require.NotNil(t, second)
	assert.Equal(t, "d2", second.Message.ID)
	assert.Equal(t, now.Add(2*time.Second).Add(6*time.Second), second.ExpiresAt)
}

func TestEngineOverlayExpiresOnTick(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(pendingDonation("d1", 55), now)
	e.ConfirmDonation("d1", 55, now)
	require.NotNil(t, e.CurrentOverlay())

	events := e.Tick(now.Add(5 * time.Second))
	assert.NotContains(t, eventTypes(events), models.EventOverlayCleared)

	events = e.Tick(now.Add(6 * time.Second))
	assert.Contains(t, eventTypes(events), models.EventOverlayCleared)
	assert.Nil(t, e.CurrentOverlay())
}

func TestEngineFluxoLifecycle(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	// A confirmed 200-unit donation saturates the meter on arrival.
	big := pendingDonation("d1", 200)
	big.Status = models.DonationConfirmed
	out := e.OnMessage(big, now)
	require.Contains(t, eventTypes(out.Events), models.EventFluxoStarted)

	st := e.Hype()
	require.Equal(t, models.ModeFluxo, st.Mode)
	assert.Equal(t, 100.0, st.Level)

	// Decay ticks leave the meter frozen for the whole dwell.
	for i := 1; i < 60; i++ {
		events := e.Tick(now.Add(time.Duration(i) * time.Second))
		assert.NotContains(t, eventTypes(events), models.EventFluxoEnded)
		assert.Equal(t, 100.0, e.Hype().Level)
	}

	events := e.Tick(now.Add(60 * time.Second))
	assert.Contains(t, eventTypes(events), models.EventFluxoEnded)
	st = e.Hype()
	assert.Equal(t, models.ModeNormal, st.Mode)
	assert.Equal(t, 0.0, st.Level)
}

func TestEngineTickEmitsHypeOnlyOnChange(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	// Level is already zero: a decay tick changes nothing and emits nothing.
	events := e.Tick(now)
	assert.Empty(t, events)

	e.OnMessage(plainMsg("m1", "oi"), now)
	events = e.Tick(now.Add(time.Second))
	assert.Equal(t, []models.EventType{models.EventHype}, eventTypes(events))
}

func TestEngineBufferCapUnderLoad(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	for i := 0; i < 150; i++ {
		e.OnMessage(plainMsg(fmt.Sprintf("m%03d", i), "oi"), now)
		now = now.Add(time.Millisecond)
	}

	msgs := e.Messages()
	require.Len(t, msgs, 100)
	assert.Equal(t, "m050", msgs[0].ID)
	assert.Equal(t, "m149", msgs[99].ID)
}

func TestEngineNegativeAmountCoerced(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(pendingDonation("d1", 10), now)
	events, ok := e.ConfirmDonation("d1", -7, now)
	require.True(t, ok)
	assert.NotContains(t, eventTypes(events), models.EventPinned, "malformed amount is treated as zero")
	assert.Empty(t, e.ActivePins())
}

func TestEngineSnapshot(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	now := time.Now()

	e.OnMessage(plainMsg("m1", "oi"), now)
	e.OnMessage(plainMsg("m2", "bora"), now)
	e.OnMessage(pendingDonation("d1", 50), now)
	e.ConfirmDonation("d1", 50, now)

	events := e.Snapshot()
	types := eventTypes(events)

	// Three buffered messages, one pin, the meter and the overlay.
	require.Len(t, events, 6)
	assert.Equal(t, models.EventMessage, types[0])
	assert.Equal(t, "m1", events[0].Message.ID)
	assert.Equal(t, "m2", events[1].Message.ID)
	assert.Equal(t, "d1", events[2].Message.ID)
	assert.Contains(t, types, models.EventPinned)
	assert.Contains(t, types, models.EventHype)
	assert.Contains(t, types, models.EventOverlay)
}

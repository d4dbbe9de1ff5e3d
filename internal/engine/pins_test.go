package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinExpiry(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	p := NewPinSet()

	_, ok := p.Pin(msgWithID("don1"), 2*time.Minute, t0)
	require.True(t, ok)

	p.Sweep(t0.Add(119 * time.Second))
	require.Len(t, p.Active(), 1, "tier-1 pin must survive at t0+119s")

	expired := p.Sweep(t0.Add(121 * time.Second))
	require.Len(t, expired, 1)
	assert.Equal(t, "don1", expired[0].ID)
	assert.Empty(t, p.Active(), "tier-1 pin must be gone at t0+121s")
}

func TestPinDuplicateID(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	p := NewPinSet()

	_, ok := p.Pin(msgWithID("x"), time.Minute, t0)
	require.True(t, ok)
	_, ok = p.Pin(msgWithID("x"), time.Minute, t0)
	assert.False(t, ok, "same id must not be pinned twice")
	assert.Len(t, p.Active(), 1)
}

func TestPinSweepKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	p := NewPinSet()
	p.Pin(msgWithID("a"), 10*time.Minute, t0)
	p.Pin(msgWithID("b"), time.Second, t0)
	p.Pin(msgWithID("c"), 10*time.Minute, t0)

	p.Sweep(t0.Add(2 * time.Second))

	active := p.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}

func TestPinRepinAfterExpiry(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	p := NewPinSet()
	p.Pin(msgWithID("x"), time.Second, t0)
	p.Sweep(t0.Add(2 * time.Second))

	_, ok := p.Pin(msgWithID("x"), time.Minute, t0.Add(3*time.Second))
	assert.True(t, ok, "an expired id may be pinned again")
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlowMode(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	s := NewSlowMode(3 * time.Second)

	t.Run("second send inside window rejected", func(t *testing.T) {
		ok, _ := s.Check("ana", t0)
		require.True(t, ok)

		ok, retry := s.Check("ana", t0.Add(1*time.Second))
		assert.False(t, ok)
		assert.Equal(t, 2*time.Second, retry)
	})

	t.Run("rejected attempt does not extend the window", func(t *testing.T) {
		ok, _ := s.Check("ana", t0.Add(3100*time.Millisecond))
		assert.True(t, ok, "3.1s after the first accepted send")
	})

	t.Run("users are tracked independently", func(t *testing.T) {
		ok, _ := s.Check("bruno", t0)
		assert.True(t, ok)
	})
}

func TestSlowModeBoundary(t *testing.T) {
	t.Parallel()

	t0 := time.Now()
	s := NewSlowMode(3 * time.Second)

	ok, _ := s.Check("u", t0)
	require.True(t, ok)

	ok, _ = s.Check("u", t0.Add(3*time.Second))
	assert.True(t, ok, "exactly at the window boundary is allowed")
}

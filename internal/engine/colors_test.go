package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForIsStable(t *testing.T) {
	t.Parallel()

	names := []string{"ana", "Bruno", "clara_22", "DJ Fluxo", "é_com_acento", ""}
	for _, name := range names {
		first := ColorFor(name)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ColorFor(name), "color must be stable for %q", name)
		}
	}
}

func TestColorForStaysInPalette(t *testing.T) {
	t.Parallel()

	names := []string{"a", "ab", "abc", "festa", "超長い名前のユーザー", "user-with-a-very-long-display-name-0123456789"}
	for _, name := range names {
		color := ColorFor(name)
		assert.Contains(t, palette, color)
	}
}

func TestColorForSpreadsNames(t *testing.T) {
	t.Parallel()

	// Not a distribution guarantee, just a sanity check that the hash is not
	// collapsing everything onto one entry.
	seen := map[string]bool{}
	for _, name := range []string{"ana", "bia", "caio", "duda", "enzo", "fabi", "gui", "heloisa"} {
		seen[ColorFor(name)] = true
	}
	assert.Greater(t, len(seen), 2)
}

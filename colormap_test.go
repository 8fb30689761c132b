package tiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestColorMapDedup checks testable property 7: inserting a color already
// present does not grow the palette.
func TestColorMapDedup(t *testing.T) {
	cm := NewColorMap()
	i1, err := cm.Add(RGB{R: 10, G: 20, B: 30})
	require.NoError(t, err)

	i2, err := cm.Add(RGB{R: 10, G: 20, B: 30})
	require.NoError(t, err)

	assert.Equal(t, i1, i2)
	assert.Equal(t, 1, cm.Len())
}

// TestColorMapOverflow checks testable property 7's second half: the
// 257th distinct color fails without mutating the map beyond 256 entries.
func TestColorMapOverflow(t *testing.T) {
	cm := NewColorMap()
	for i := 0; i < 256; i++ {
		_, err := cm.Add(RGB{R: uint8(i % 256), G: uint8(i / 2), B: uint8(i / 3)})
		require.NoError(t, err)
	}
	require.Equal(t, 256, cm.Len())

	_, err := cm.Add(RGB{R: 255, G: 255, B: 254})
	assert.Error(t, err)
	assert.IsType(t, ErrTooManyColors{}, err)
	assert.Equal(t, 256, cm.Len())
}

func TestColorMapBitsPerSampleThreshold(t *testing.T) {
	cm := NewColorMap()
	for i := 0; i < 16; i++ {
		_, err := cm.Add(RGB{R: uint8(i), G: 0, B: 0})
		require.NoError(t, err)
	}
	assert.Equal(t, 4, cm.bitsPerSample())

	_, err := cm.Add(RGB{R: 200, G: 0, B: 0})
	require.NoError(t, err)
	assert.Equal(t, 8, cm.bitsPerSample())
}

// TestColorMapEntriesExactLength checks the P4 scenario's byte-exact
// requirement: exactly 3*2^BitsPerSample shorts, not a fixed 256-entry
// table (see DESIGN.md for why this deviates from original_source), and
// that each channel is carried through as its raw 8-bit value rather than
// scaled to the full 16-bit range (spec §8's P4 scenario states the first
// two reds as 255,0 — not 65535,0).
func TestColorMapEntriesExactLength(t *testing.T) {
	cm := NewColorMap()
	_, _ = cm.Add(RGB{R: 255, G: 0, B: 0})
	_, _ = cm.Add(RGB{R: 0, G: 255, B: 0})

	entries := cm.entries()
	require.Len(t, entries, 48) // 3 * 2^4

	assert.Equal(t, uint16(255), entries[0])
	assert.Equal(t, uint16(0), entries[1])
	for i := 2; i < 16; i++ {
		assert.Equal(t, uint16(0), entries[i])
	}
	assert.Equal(t, uint16(0), entries[16])
	assert.Equal(t, uint16(255), entries[17])
}

func TestColorMapFromEntriesRoundTrip(t *testing.T) {
	cm := NewColorMap()
	_, _ = cm.Add(RGB{R: 255, G: 0, B: 0})
	_, _ = cm.Add(RGB{R: 0, G: 255, B: 0})

	restored := colorMapFromEntries(cm.entries())
	require.Equal(t, 16, restored.Len())
	assert.Equal(t, RGB{R: 255, G: 0, B: 0}, restored.colors[0])
	assert.Equal(t, RGB{R: 0, G: 255, B: 0}, restored.colors[1])
	assert.Equal(t, RGB{}, restored.colors[2])
}

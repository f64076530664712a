package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidationDelays(t *testing.T) {
	require.Len(t, InvalidationDelays, 8)
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		3 * time.Second,
		5 * time.Second,
		5 * time.Second,
		10 * time.Second,
		10 * time.Second,
		15 * time.Second,
		15 * time.Second,
	}, InvalidationDelays)
}

func TestInvalidationLadderOffsets(t *testing.T) {
	// Rungs fire at the cumulative offsets, ending 65s after the mutation.
	var offset time.Duration
	offsets := make([]time.Duration, 0, len(InvalidationDelays))
	for _, d := range InvalidationDelays {
		offset += d
		offsets = append(offsets, offset)
	}
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		5 * time.Second,
		10 * time.Second,
		15 * time.Second,
		25 * time.Second,
		35 * time.Second,
		50 * time.Second,
		65 * time.Second,
	}, offsets)
}

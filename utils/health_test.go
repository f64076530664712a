package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

func TestHealthSnapshotLifecycle(t *testing.T) {
	_, known := GetHealthStatus()
	require.False(t, known, "no snapshot before the monitor starts")

	StartHealthMonitor(nil, nil, &stubPinger{})

	// The first check runs immediately, not after the ticker interval.
	require.Eventually(t, func() bool {
		_, ok := GetHealthStatus()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	snapshot, _ := GetHealthStatus()
	assert.True(t, snapshot.Chain)
	assert.False(t, snapshot.Mongo)
	assert.False(t, snapshot.CheckedAt.IsZero())
}

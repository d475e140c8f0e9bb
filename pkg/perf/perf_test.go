package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackDisabledIsNoOp(t *testing.T) {
	SetEnabled(false)
	Reset()

	Track("noop")()

	assert.Empty(t, Snapshot())
}

func TestTrackAccumulates(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)
	Reset()

	for i := 0; i < 3; i++ {
		done := Track("work")
		time.Sleep(time.Millisecond)
		done()
	}

	stats := Snapshot()
	require.Len(t, stats, 1)
	assert.Equal(t, "work", stats[0].Name)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Greater(t, stats[0].Total, time.Duration(0))
}

func TestSnapshotSortedByTotalDescending(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)
	Reset()

	fast := Track("fast")
	fast()

	slow := Track("slow")
	time.Sleep(2 * time.Millisecond)
	slow()

	stats := Snapshot()
	require.Len(t, stats, 2)
	assert.Equal(t, "slow", stats[0].Name)
}

func TestReset(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	Track("x")()
	Reset()

	assert.Empty(t, Snapshot())
}

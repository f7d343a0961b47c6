package circuit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBreakerStartsClosed(t *testing.T) {
	b := New("advisory")
	assert.Equal(t, "advisory", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreakerOpening(t *testing.T) {
	b := New("advisory", WithFailureThreshold(3))

	for range 2 {
		fallback, change := b.RecordFailure()
		assert.False(t, fallback)
		assert.False(t, change.Opened)
	}
	fallback, change := b.RecordFailure()
	assert.True(t, fallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())

	// Already open: no second Opened change.
	fallback, change = b.RecordFailure()
	assert.True(t, fallback)
	assert.False(t, change.Opened)
}

func TestSuccessClearsFailureStreak(t *testing.T) {
	b := New("advisory", WithFailureThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestBreakerClosing(t *testing.T) {
	b := New("advisory", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()

	primary, change := b.RecordSuccess()
	assert.False(t, primary)
	assert.False(t, change.Closed)

	// A failure while open restarts the success streak.
	b.RecordFailure()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())

	primary, change = b.RecordSuccess()
	assert.True(t, primary)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())
}

func TestReset(t *testing.T) {
	b := New("advisory", WithFailureThreshold(1))
	b.RecordFailure()
	b.Reset()
	assert.False(t, b.IsOpen())
}

func TestAllowProbesAfterCooldown(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	b := New("advisory", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(59 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow())

	// A failed probe restarts the cooldown.
	b.RecordFailure()
	assert.False(t, b.Allow())
}

func TestAllowAdmitsOneProbeAtATime(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	b := New("advisory", WithFailureThreshold(1), WithSuccessThreshold(2), WithCooldown(time.Minute),
		WithClock(func() time.Time { return now }))

	b.RecordFailure()
	now = now.Add(time.Minute)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), admitted.Load())

	// A successful probe below the success threshold frees the next probe.
	_, change := b.RecordSuccess()
	assert.False(t, change.Closed)
	assert.True(t, b.Allow())
	assert.False(t, b.Allow())

	_, change = b.RecordSuccess()
	assert.True(t, change.Closed)
	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
}

func TestUnrecordedProbeIsAbandonedAfterCooldown(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	b := New("advisory", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	b.RecordFailure()
	now = now.Add(time.Minute)
	assert.True(t, b.Allow())
	assert.False(t, b.Allow())

	now = now.Add(time.Minute)
	assert.True(t, b.Allow())
}

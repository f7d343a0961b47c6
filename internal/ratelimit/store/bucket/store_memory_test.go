package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/ratelimit/models"
)

func TestInMemoryBucketStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := NewInMemoryBucketStore(WithClock(func() time.Time { return now }))
	limit := models.Limit{Requests: 3, Window: time.Minute}

	for i := range 3 {
		res, err := s.Allow(ctx, "k", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
		now = now.Add(10 * time.Second)
	}

	res, err := s.Allow(ctx, "k", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	// Oldest request was at 09:00:00; it is now 09:00:30.
	assert.Equal(t, 30, res.RetryAfter)

	t.Run("other keys have their own window", func(t *testing.T) {
		res, err := s.Allow(ctx, "other", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("window slides past the oldest request", func(t *testing.T) {
		now = now.Add(31 * time.Second)
		res, err := s.Allow(ctx, "k", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("reset clears the window", func(t *testing.T) {
		require.NoError(t, s.Reset(ctx, "k"))
		res, err := s.Allow(ctx, "k", limit)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})
}

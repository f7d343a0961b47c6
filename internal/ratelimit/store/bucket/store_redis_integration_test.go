//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/ratelimit/models"
	"frontier/internal/ratelimit/store/bucket"
	"frontier/pkg/testutil/containers"
)

func TestRedisBucketStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	s := bucket.NewRedisBucketStore(rc.Client, "test")
	limit := models.Limit{Requests: 2, Window: time.Minute}

	first, err := s.Allow(ctx, models.Key(models.ClassWrite, "uid-1"), limit)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := s.Allow(ctx, models.Key(models.ClassWrite, "uid-1"), limit)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := s.Allow(ctx, models.Key(models.ClassWrite, "uid-1"), limit)
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Positive(t, third.RetryAfter)

	other, err := s.Allow(ctx, models.Key(models.ClassRead, "uid-1"), limit)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

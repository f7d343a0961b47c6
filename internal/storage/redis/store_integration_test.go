//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/storage"
	redisstore "frontier/internal/storage/redis"
	"frontier/internal/storage/storagetest"
	"frontier/pkg/testutil/containers"
)

func TestRedisConformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	store := redisstore.New(rc.Client, redisstore.WithKeyPrefix("test"))

	storagetest.Run(t, func(t *testing.T) storage.Store {
		require.NoError(t, rc.FlushAll(context.Background()))
		return store
	})
}

func TestRedisStampsFollowWriteOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(context.Background()))
	store := redisstore.New(rc.Client, redisstore.WithKeyPrefix("order"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, "acks", fmt.Sprintf("k%02d", i), storage.Document{"n": i}))
		}()
	}
	wg.Wait()

	all, err := store.GetAll(ctx, "acks")
	require.NoError(t, err)
	require.Len(t, all, 50)
	prev, ok := all[0].WrittenAt()
	require.True(t, ok)
	for _, rec := range all[1:] {
		at, ok := rec.WrittenAt()
		require.True(t, ok)
		assert.False(t, at.Before(prev), "%s stamped before its predecessor", rec.ID)
		prev = at
	}
}

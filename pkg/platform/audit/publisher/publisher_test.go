package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/storage/memory"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/audit/store/records"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := uuid.NewString()
	err := pub.Emit(context.Background(), audit.Event{
		UserID: userID,
		Action: string(audit.EventUserProvisioned),
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventUserProvisioned), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	userID := uuid.NewString()
	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			UserID: userID,
			Action: string(audit.EventHazardReported),
		})
		require.NoError(t, err)
	}

	require.NoError(t, pub.Close())

	events, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterCloseIsSynchronous(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	require.NoError(t, pub.Close())

	require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: "u", Action: "a"}))
	events, err := store.ListByUser(context.Background(), "u")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	userID := uuid.NewString()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{
				UserID: userID,
				Action: string(audit.EventHazardReported),
			})
			if err != nil {
				assert.True(t, errors.Is(err, ErrBufferFull))
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := uuid.NewString()
	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		UserID: userID,
		Action: string(audit.EventPolicyAcknowledged),
	}))
	after := time.Now()

	events, err := pub.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.False(t, events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := uuid.NewString()
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		UserID:    userID,
		Action:    string(audit.EventPolicyAcknowledged),
		Timestamp: customTime,
	}))

	events, err := pub.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_CancelledContextInAsyncMode(t *testing.T) {
	pub := NewPublisher(newStore(), WithAsyncBuffer(1))
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Emit(ctx, audit.Event{UserID: "u", Action: "a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublisher_MultipleEventsKeepOrder(t *testing.T) {
	store := newStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := uuid.NewString()
	for _, action := range []audit.AuditEvent{
		audit.EventHazardReported,
		audit.EventHazardTransitioned,
		audit.EventPolicyAcknowledged,
	} {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{UserID: userID, Action: string(action)}))
	}

	result, err := pub.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, string(audit.EventHazardReported), result[0].Action)
	assert.Equal(t, string(audit.EventHazardTransitioned), result[1].Action)
	assert.Equal(t, string(audit.EventPolicyAcknowledged), result[2].Action)
}

func newStore() *records.Store {
	return records.New(memory.New())
}

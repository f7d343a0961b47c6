package bucket

import (
	"context"
	"sync"
	"time"

	"frontier/internal/ratelimit/models"
)

// InMemoryBucketStore keeps a sliding window of request times per key. It is
// local to one process.
type InMemoryBucketStore struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time
}

type MemoryOption func(*InMemoryBucketStore)

func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryBucketStore) {
		s.now = now
	}
}

func NewInMemoryBucketStore(opts ...MemoryOption) *InMemoryBucketStore {
	s := &InMemoryBucketStore{buckets: make(map[string][]time.Time), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow records one request against key when the window has room.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit models.Limit) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	window := evict(s.buckets[key], now.Add(-limit.Window))

	if len(window) >= limit.Requests {
		s.buckets[key] = window
		resetAt := window[0].Add(limit.Window)
		return &models.Result{
			Allowed:    false,
			Limit:      limit.Requests,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(resetAt.Sub(now)),
		}, nil
	}

	window = append(window, now)
	s.buckets[key] = window
	return &models.Result{
		Allowed:   true,
		Limit:     limit.Requests,
		Remaining: limit.Requests - len(window),
		ResetAt:   window[0].Add(limit.Window),
	}, nil
}

// Reset clears the window for key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

// evict drops timestamps at or before cutoff. Timestamps are in append order.
func evict(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(window); i++ {
		if window[i].After(cutoff) {
			break
		}
	}
	return window[i:]
}

func retryAfter(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

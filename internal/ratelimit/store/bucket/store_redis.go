package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"frontier/internal/ratelimit/models"
)

// allowScript trims the window, then admits the request if there is room.
// Returns {allowed, count, oldest score in ms}.
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = now
if oldest[2] then
  oldestScore = tonumber(oldest[2])
end

if count >= limit then
  return {0, count, oldestScore}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1, oldestScore}
`)

// RedisBucketStore keeps sliding windows in sorted sets so every replica
// shares one budget per caller.
type RedisBucketStore struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

func NewRedisBucketStore(client redis.Scripter, prefix string) *RedisBucketStore {
	return &RedisBucketStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit models.Limit) (*models.Result, error) {
	now := s.now()
	vals, err := allowScript.Run(ctx, s.client, []string{s.key(key)},
		now.UnixMilli(),
		limit.Window.Milliseconds(),
		limit.Requests,
		fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}

	resetAt := time.UnixMilli(vals[2]).Add(limit.Window)
	if vals[0] == 0 {
		return &models.Result{
			Allowed:    false,
			Limit:      limit.Requests,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(resetAt.Sub(now)),
		}, nil
	}
	return &models.Result{
		Allowed:   true,
		Limit:     limit.Requests,
		Remaining: limit.Requests - int(vals[1]),
		ResetAt:   resetAt,
	}, nil
}

func (s *RedisBucketStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Package tx serializes read-validate-write sequences per key inside one
// process. It does not coordinate across replicas.
package tx

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	dErrors "frontier/pkg/domain-errors"
)

const numShards = 128

const defaultTimeout = 5 * time.Second

// Sharded hashes keys onto a fixed set of mutexes.
type Sharded struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

// NewSharded returns a lock set. timeout bounds each critical section when the
// caller's context has no deadline; zero uses a 5s default.
func NewSharded(timeout time.Duration) *Sharded {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sharded{timeout: timeout}
}

// RunLocked runs fn while holding the shard for key.
func (s *Sharded) RunLocked(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	shard := &s.shards[shardFor(key)]
	shard.Lock()
	defer shard.Unlock()

	// The wait for the lock may have used up the deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx)
}

func shardFor(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % numShards
}

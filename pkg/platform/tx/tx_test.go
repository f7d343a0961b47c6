package tx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "frontier/pkg/domain-errors"
)

func TestRunLockedSerializesSameKey(t *testing.T) {
	s := NewSharded(0)
	counter := 0
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunLocked(context.Background(), "hazard-1", func(context.Context) error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestRunLockedCancelledContext(t *testing.T) {
	s := NewSharded(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.RunLocked(ctx, "k", func(context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeTimeout))
	assert.False(t, called)
}

func TestRunLockedReturnsFnError(t *testing.T) {
	s := NewSharded(0)
	want := dErrors.New(dErrors.CodeInvalidTransition, "nope")
	err := s.RunLocked(context.Background(), "k", func(context.Context) error { return want })
	assert.Equal(t, want, err)
}

package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/storage/memory"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/audit/store/records"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func (failingStore) ListByUser(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestWorkerDrainsUntilClosed(t *testing.T) {
	store := newStore()
	inbox := make(chan audit.Event, 3)
	inbox <- audit.Event{UserID: "u1", Action: "a"}
	inbox <- audit.Event{UserID: "u1", Action: "b"}
	close(inbox)

	require.NoError(t, NewWorker(store, inbox, nil).Run(context.Background()))

	events, err := store.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestWorkerReportsFailuresAndContinues(t *testing.T) {
	inbox := make(chan audit.Event, 2)
	inbox <- audit.Event{Action: "a"}
	inbox <- audit.Event{Action: "b"}
	close(inbox)

	var failed []string
	err := NewWorker(failingStore{}, inbox, func(e audit.Event, _ error) {
		failed = append(failed, e.Action)
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, failed)
}

func TestWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWorker(newStore(), make(chan audit.Event), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func newStore() *records.Store {
	return records.New(memory.New())
}

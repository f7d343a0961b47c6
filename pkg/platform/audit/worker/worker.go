package worker

import (
	"context"

	audit "frontier/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them.
// It stops when the inbox is closed (after draining it) or ctx is done.
type Worker struct {
	store   audit.Store
	inbox   <-chan audit.Event
	onError func(audit.Event, error)
}

// NewWorker builds a worker. onError may be nil; failed appends are then dropped.
func NewWorker(store audit.Store, inbox <-chan audit.Event, onError func(audit.Event, error)) *Worker {
	return &Worker{store: store, inbox: inbox, onError: onError}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil && w.onError != nil {
				w.onError(event, err)
			}
		}
	}
}

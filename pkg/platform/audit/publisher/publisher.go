// Package publisher emits audit events either synchronously or through a
// bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/audit/worker"
)

// ErrBufferFull is returned by Emit in async mode when the buffer is full.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher writes audit events to a store.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	buffer int

	inbox     chan audit.Event
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches to async mode with a buffer of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

// WithLogger sets a logger for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.inbox = make(chan audit.Event, p.buffer)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, p.reportFailure)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit records event. Category and Timestamp are filled in when unset.
// In async mode a full buffer drops the event and returns ErrBufferFull.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return p.store.Append(ctx, event)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.reportFailure(event, ErrBufferFull)
		return ErrBufferFull
	}
}

// List returns the events recorded for userID.
func (p *Publisher) List(ctx context.Context, userID string) ([]audit.Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close drains any buffered events and stops the worker.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		if p.inbox == nil {
			return
		}
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()
		<-p.done
	})
	return nil
}

func (p *Publisher) reportFailure(event audit.Event, err error) {
	if p.logger == nil {
		return
	}
	p.logger.Error("audit event not persisted",
		"action", event.Action,
		"user_id", event.UserID,
		"error", err,
	)
}

// Package watcher turns the authentication collaborator's signals into a
// stream of presence events with one consumer that drives provisioning.
package watcher

import (
	"context"
	"log/slog"
	"sync"

	"frontier/internal/platform/metrics"
)

type EventKind int

const (
	UserPresent EventKind = iota + 1
	UserAbsent
)

func (k EventKind) String() string {
	switch k {
	case UserPresent:
		return "present"
	case UserAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Event is one authentication state change.
type Event struct {
	Kind  EventKind
	UID   string
	Email string
}

const defaultBuffer = 256

// Broker fans events out to subscribers. Publishing never blocks; a full
// subscriber buffer drops the event.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
	logger *slog.Logger
}

func NewBroker(buffer int, logger *slog.Logger) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{subs: make(map[int]chan Event), buffer: buffer, logger: logger}
}

// Subscribe returns the event channel and the function that ends the
// subscription. The channel is closed on unsubscribe.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers e to every subscriber and reports whether all accepted it.
func (b *Broker) Publish(e Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := true
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			delivered = false
			if b.logger != nil {
				b.logger.Warn("presence event dropped",
					"kind", e.Kind.String(),
					"user_id", e.UID,
				)
			}
		}
	}
	return delivered
}

// NotifyPresent implements the auth middleware's PresenceNotifier.
func (b *Broker) NotifyPresent(uid, email string) {
	b.Publish(Event{Kind: UserPresent, UID: uid, Email: email})
}

// NotifyAbsent signals that uid signed out.
func (b *Broker) NotifyAbsent(uid string) {
	b.Publish(Event{Kind: UserAbsent, UID: uid})
}

// Close ends every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Provisioner creates a user record on first sight.
type Provisioner interface {
	Provision(ctx context.Context, uid, email string) (bool, error)
}

// Coordinator is the single consumer of presence events.
type Coordinator struct {
	broker      *Broker
	provisioner Provisioner
	logger      *slog.Logger
	metrics     *metrics.Metrics

	mu      sync.Mutex
	present map[string]struct{}
}

type Option func(*Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func NewCoordinator(broker *Broker, provisioner Provisioner, opts ...Option) *Coordinator {
	c := &Coordinator{
		broker:      broker,
		provisioner: provisioner,
		present:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run subscribes and handles events until ctx is done or the broker closes.
// The subscription is always released before Run returns.
func (c *Coordinator) Run(ctx context.Context) error {
	events, unsubscribe := c.broker.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			c.handle(ctx, e)
		}
	}
}

// Present returns the number of users currently signed in.
func (c *Coordinator) Present() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.present)
}

func (c *Coordinator) handle(ctx context.Context, e Event) {
	switch e.Kind {
	case UserPresent:
		if c.isPresent(e.UID) {
			return
		}
		// A failed provision leaves the user absent so the next request retries.
		if _, err := c.provisioner.Provision(ctx, e.UID, e.Email); err != nil {
			if c.logger != nil {
				c.logger.ErrorContext(ctx, "user provisioning failed",
					"user_id", e.UID,
					"error", err,
				)
			}
			return
		}
		c.setPresent(e.UID, true)
	case UserAbsent:
		c.setPresent(e.UID, false)
	}
}

func (c *Coordinator) isPresent(uid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.present[uid]
	return ok
}

func (c *Coordinator) setPresent(uid string, present bool) {
	c.mu.Lock()
	if present {
		c.present[uid] = struct{}{}
	} else {
		delete(c.present, uid)
	}
	n := len(c.present)
	c.mu.Unlock()
	c.metrics.SetActiveUsers(n)
}

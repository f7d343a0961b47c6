package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"frontier/internal/storage"
	"frontier/pkg/platform/sentinel"
)

type collection struct {
	docs  map[string]storage.Document
	order []string
}

// Store is an in-process record store. Documents are copied on the way in
// and out so callers never share maps with the store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	clock       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the write-time clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New constructs an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]*collection),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]storage.Document)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Insert(ctx context.Context, coll string, doc storage.Document) (string, error) {
	id := uuid.NewString()
	if _, err := s.PutIfAbsent(ctx, coll, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Put(_ context.Context, coll, key string, doc storage.Document) error {
	if err := validate(coll, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	if _, exists := c.docs[key]; !exists {
		c.order = append(c.order, key)
	}
	c.docs[key] = storage.Stamped(doc, s.clock())
	return nil
}

func (s *Store) PutIfAbsent(_ context.Context, coll, key string, doc storage.Document) (bool, error) {
	if err := validate(coll, key); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(coll)
	if _, exists := c.docs[key]; exists {
		return false, nil
	}
	c.order = append(c.order, key)
	c.docs[key] = storage.Stamped(doc, s.clock())
	return true, nil
}

func (s *Store) GetAll(_ context.Context, coll string) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[coll]
	if !ok {
		return []storage.Record{}, nil
	}
	out := make([]storage.Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, storage.Record{ID: id, Doc: c.docs[id].Clone()})
	}
	return out, nil
}

func (s *Store) Query(_ context.Context, coll, field, value string) ([]storage.Record, error) {
	if err := storage.ValidateField(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []storage.Record{}
	c, ok := s.collections[coll]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		doc := c.docs[id]
		if v, ok := doc[field].(string); ok && v == value {
			out = append(out, storage.Record{ID: id, Doc: doc.Clone()})
		}
	}
	return out, nil
}

func (s *Store) GetByID(_ context.Context, coll, id string) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[coll]
	if !ok {
		return storage.Record{}, sentinel.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return storage.Record{}, sentinel.ErrNotFound
	}
	return storage.Record{ID: id, Doc: doc.Clone()}, nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func validate(coll, key string) error {
	if err := storage.ValidateName("collection", coll); err != nil {
		return err
	}
	return storage.ValidateName("key", key)
}

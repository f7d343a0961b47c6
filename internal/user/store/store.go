package store

import (
	"context"
	"fmt"

	"frontier/internal/storage"
	"frontier/internal/user/models"
)

// Store maps users onto storage.CollectionUsers keyed by uid.
type Store struct {
	records storage.Store
}

func New(records storage.Store) *Store {
	return &Store{records: records}
}

// CreateIfAbsent writes u unless a record for u.UID exists. It never overwrites.
func (s *Store) CreateIfAbsent(ctx context.Context, u *models.User) (bool, error) {
	doc, err := storage.Encode(u)
	if err != nil {
		return false, err
	}
	return s.records.PutIfAbsent(ctx, storage.CollectionUsers, u.UID, doc)
}

// FindByID returns sentinel.ErrNotFound when uid has no record.
func (s *Store) FindByID(ctx context.Context, uid string) (*models.User, error) {
	rec, err := s.records.GetByID(ctx, storage.CollectionUsers, uid)
	if err != nil {
		return nil, err
	}
	return decode(rec)
}

// List returns every user in store order.
func (s *Store) List(ctx context.Context) ([]*models.User, error) {
	recs, err := s.records.GetAll(ctx, storage.CollectionUsers)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(recs))
	for _, rec := range recs {
		u, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func decode(rec storage.Record) (*models.User, error) {
	var u models.User
	if err := rec.Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	u.UID = rec.ID
	u.ApplyDefaults()
	return &u, nil
}

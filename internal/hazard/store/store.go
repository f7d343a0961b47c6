package store

import (
	"context"
	"fmt"

	"frontier/internal/hazard/models"
	"frontier/internal/storage"
)

// Store maps hazard reports onto storage.CollectionHazards.
type Store struct {
	records storage.Store
}

func New(records storage.Store) *Store {
	return &Store{records: records}
}

// Create inserts h and returns the store-assigned id.
func (s *Store) Create(ctx context.Context, h *models.HazardReport) (string, error) {
	doc, err := storage.Encode(h)
	if err != nil {
		return "", err
	}
	delete(doc, "id")
	return s.records.Insert(ctx, storage.CollectionHazards, doc)
}

// FindByID returns sentinel.ErrNotFound when id is absent.
func (s *Store) FindByID(ctx context.Context, id string) (*models.HazardReport, error) {
	rec, err := s.records.GetByID(ctx, storage.CollectionHazards, id)
	if err != nil {
		return nil, err
	}
	return decode(rec)
}

// List returns every report in store order.
func (s *Store) List(ctx context.Context) ([]*models.HazardReport, error) {
	recs, err := s.records.GetAll(ctx, storage.CollectionHazards)
	if err != nil {
		return nil, err
	}
	out := make([]*models.HazardReport, 0, len(recs))
	for _, rec := range recs {
		h, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// UpdateStatus overwrites the status field and leaves every other field as stored.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	rec, err := s.records.GetByID(ctx, storage.CollectionHazards, id)
	if err != nil {
		return err
	}
	doc := rec.Doc.Clone()
	doc["status"] = string(status)
	return s.records.Put(ctx, storage.CollectionHazards, id, doc)
}

// decode resolves defaults for records written before a field existed.
func decode(rec storage.Record) (*models.HazardReport, error) {
	var h models.HazardReport
	if err := rec.Decode(&h); err != nil {
		return nil, fmt.Errorf("decode hazard: %w", err)
	}
	h.ID = rec.ID
	if h.Status == "" {
		h.Status = models.StatusOpen
	}
	return &h, nil
}

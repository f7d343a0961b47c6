package store

import (
	"context"
	"fmt"

	"frontier/internal/acknowledgment/models"
	"frontier/internal/storage"
)

// record is the stored shape. acknowledgedAt comes from the store's write stamp.
type record struct {
	PolicyID string `json:"policyId"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
}

// Store maps acknowledgments onto storage.CollectionAcknowledgments.
type Store struct {
	records storage.Store
}

func New(records storage.Store) *Store {
	return &Store{records: records}
}

// Put writes the acknowledgment at its deterministic key, replacing any earlier one.
func (s *Store) Put(ctx context.Context, a *models.PolicyAcknowledgment) error {
	doc, err := storage.Encode(record{PolicyID: a.PolicyID, UserID: a.UserID, Email: a.Email})
	if err != nil {
		return err
	}
	return s.records.Put(ctx, storage.CollectionAcknowledgments, a.Key(), doc)
}

// Find returns sentinel.ErrNotFound when the pair has no acknowledgment.
func (s *Store) Find(ctx context.Context, policyID, userID string) (*models.PolicyAcknowledgment, error) {
	rec, err := s.records.GetByID(ctx, storage.CollectionAcknowledgments, models.Key(policyID, userID))
	if err != nil {
		return nil, err
	}
	return decode(rec)
}

// ListByPolicy returns every acknowledgment of policyID.
func (s *Store) ListByPolicy(ctx context.Context, policyID string) ([]*models.PolicyAcknowledgment, error) {
	recs, err := s.records.Query(ctx, storage.CollectionAcknowledgments, "policyId", policyID)
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

// ListAll returns every acknowledgment across policies.
func (s *Store) ListAll(ctx context.Context) ([]*models.PolicyAcknowledgment, error) {
	recs, err := s.records.GetAll(ctx, storage.CollectionAcknowledgments)
	if err != nil {
		return nil, err
	}
	return decodeAll(recs)
}

func decodeAll(recs []storage.Record) ([]*models.PolicyAcknowledgment, error) {
	out := make([]*models.PolicyAcknowledgment, 0, len(recs))
	for _, rec := range recs {
		a, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decode(rec storage.Record) (*models.PolicyAcknowledgment, error) {
	var r record
	if err := rec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode acknowledgment: %w", err)
	}
	a := &models.PolicyAcknowledgment{PolicyID: r.PolicyID, UserID: r.UserID, Email: r.Email}
	if at, ok := rec.WrittenAt(); ok {
		a.AcknowledgedAt = at
	}
	return a, nil
}

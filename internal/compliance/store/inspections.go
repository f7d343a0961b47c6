package store

import (
	"context"
	"fmt"

	"frontier/internal/compliance/models"
	"frontier/internal/storage"
)

// Inspections reads storage.CollectionInspections.
type Inspections struct {
	records storage.Store
}

func NewInspections(records storage.Store) *Inspections {
	return &Inspections{records: records}
}

// List returns every inspection in store order.
func (s *Inspections) List(ctx context.Context) ([]*models.Inspection, error) {
	recs, err := s.records.GetAll(ctx, storage.CollectionInspections)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Inspection, 0, len(recs))
	for _, rec := range recs {
		var i models.Inspection
		if err := rec.Decode(&i); err != nil {
			return nil, fmt.Errorf("decode inspection: %w", err)
		}
		i.ID = rec.ID
		if i.Status == "" {
			i.Status = "Scheduled"
		}
		out = append(out, &i)
	}
	return out, nil
}

// Seed writes inspections that are not stored yet. Existing records win.
func (s *Inspections) Seed(ctx context.Context, inspections []*models.Inspection) (int, error) {
	created := 0
	for _, i := range inspections {
		doc, err := storage.Encode(i)
		if err != nil {
			return created, err
		}
		delete(doc, "id")
		ok, err := s.records.PutIfAbsent(ctx, storage.CollectionInspections, i.ID, doc)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

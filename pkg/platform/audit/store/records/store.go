// Package records persists audit events in the record store so the trail
// lives next to the data it describes.
package records

import (
	"context"
	"fmt"

	"frontier/internal/storage"
	audit "frontier/pkg/platform/audit"
)

// Store appends audit events to storage.CollectionAuditEvents.
type Store struct {
	records storage.Store
}

func New(records storage.Store) *Store {
	return &Store{records: records}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	doc, err := storage.Encode(event)
	if err != nil {
		return err
	}
	if _, err := s.records.Insert(ctx, storage.CollectionAuditEvents, doc); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]audit.Event, error) {
	recs, err := s.records.Query(ctx, storage.CollectionAuditEvents, "userId", userID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	out := make([]audit.Event, 0, len(recs))
	for _, rec := range recs {
		var e audit.Event
		if err := rec.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/compliance/models"
	"frontier/internal/storage"
	"frontier/internal/storage/memory"
)

func TestSeedAndList(t *testing.T) {
	ctx := context.Background()
	s := NewInspections(memory.New())

	n, err := s.Seed(ctx, []*models.Inspection{
		{ID: "insp-1", Type: "Fire Extinguisher", Location: "Warehouse A", DueDate: "2025-04-10", Status: "Scheduled"},
		{ID: "insp-2", Type: "Scaffolding", Location: "Site 4", DueDate: "2025-03-01", Status: "Overdue"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Seed(ctx, []*models.Inspection{{ID: "insp-2", Status: "Completed"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "insp-2", got[1].ID)
	assert.Equal(t, "Overdue", got[1].Status)
}

func TestListDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	records := memory.New()
	require.NoError(t, records.Put(ctx, storage.CollectionInspections, "legacy", storage.Document{"type": "Ladder"}))

	got, err := NewInspections(records).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Scheduled", got[0].Status)
}

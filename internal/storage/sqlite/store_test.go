package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/storage"
	"frontier/internal/storage/storagetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return openTestStore(t) })
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := s.Insert(ctx, storage.CollectionHazards, storage.Document{"status": "Open"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	rec, err := s.GetByID(ctx, storage.CollectionHazards, id)
	require.NoError(t, err)
	assert.Equal(t, "Open", rec.Doc["status"])
}

func TestQueryMatchesStringsOnly(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	_, err := s.Insert(ctx, "c", storage.Document{"n": 1})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "c", storage.Document{"n": "1"})
	require.NoError(t, err)

	got, err := s.Query(ctx, "c", "n", "1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

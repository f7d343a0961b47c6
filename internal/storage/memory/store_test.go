package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontier/internal/storage"
	"frontier/internal/storage/storagetest"
)

func TestConformance(t *testing.T) {
	storagetest.Run(t, func(*testing.T) storage.Store { return New() })
}

func TestWriteTimeComesFromStoreClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "acks", "p1_u1", storage.Document{"policyId": "p1"}))
	rec, err := s.GetByID(ctx, "acks", "p1_u1")
	require.NoError(t, err)
	at, ok := rec.WrittenAt()
	require.True(t, ok)
	assert.True(t, fixed.Equal(at))
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "c", "k", storage.Document{"v": "orig"}))

	rec, err := s.GetByID(ctx, "c", "k")
	require.NoError(t, err)
	rec.Doc["v"] = "mutated"

	again, err := s.GetByID(ctx, "c", "k")
	require.NoError(t, err)
	assert.Equal(t, "orig", again.Doc["v"])
}

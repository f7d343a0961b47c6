// Package storagetest holds the behavioral suite every storage backend must pass.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"frontier/internal/storage"
	"frontier/pkg/platform/sentinel"
)

// Suite exercises a storage.Store. NewStore must return an empty store.
type Suite struct {
	suite.Suite
	NewStore func(t *testing.T) storage.Store
	store    storage.Store
}

// Run runs the suite against the backend built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	suite.Run(t, &Suite{NewStore: newStore})
}

func (s *Suite) SetupTest() {
	s.store = s.NewStore(s.T())
}

func (s *Suite) TestInsertAssignsDistinctIDs() {
	ctx := context.Background()
	a, err := s.store.Insert(ctx, "things", storage.Document{"name": "a"})
	s.Require().NoError(err)
	b, err := s.store.Insert(ctx, "things", storage.Document{"name": "b"})
	s.Require().NoError(err)
	s.NotEmpty(a)
	s.NotEqual(a, b)

	rec, err := s.store.GetByID(ctx, "things", a)
	s.Require().NoError(err)
	s.Equal(a, rec.ID)
	s.Equal("a", rec.Doc["name"])
	_, ok := rec.WrittenAt()
	s.True(ok, "insert must stamp a write time")
}

func (s *Suite) TestGetByIDMissing() {
	_, err := s.store.GetByID(context.Background(), "things", "nope")
	s.True(errors.Is(err, sentinel.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func (s *Suite) TestPutOverwritesAndKeepsOrder() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "things", "k1", storage.Document{"v": "1"}))
	s.Require().NoError(s.store.Put(ctx, "things", "k2", storage.Document{"v": "2"}))
	first, err := s.store.GetByID(ctx, "things", "k1")
	s.Require().NoError(err)
	firstAt, _ := first.WrittenAt()

	s.Require().NoError(s.store.Put(ctx, "things", "k1", storage.Document{"v": "1b"}))

	all, err := s.store.GetAll(ctx, "things")
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("k1", all[0].ID)
	s.Equal("1b", all[0].Doc["v"])
	s.Equal("k2", all[1].ID)

	secondAt, ok := all[0].WrittenAt()
	s.Require().True(ok)
	s.False(secondAt.Before(firstAt), "overwrite must restamp the write time")
}

func (s *Suite) TestPutIgnoresCallerWriteTime() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "things", "k", storage.Document{storage.FieldWrittenAt: "1999-01-01T00:00:00Z"}))
	rec, err := s.store.GetByID(ctx, "things", "k")
	s.Require().NoError(err)
	at, ok := rec.WrittenAt()
	s.Require().True(ok)
	s.Greater(at.Year(), 1999)
}

func (s *Suite) TestPutIfAbsent() {
	ctx := context.Background()
	created, err := s.store.PutIfAbsent(ctx, "users", "u1", storage.Document{"role": "user"})
	s.Require().NoError(err)
	s.True(created)

	created, err = s.store.PutIfAbsent(ctx, "users", "u1", storage.Document{"role": "admin"})
	s.Require().NoError(err)
	s.False(created)

	rec, err := s.store.GetByID(ctx, "users", "u1")
	s.Require().NoError(err)
	s.Equal("user", rec.Doc["role"])
}

func (s *Suite) TestPutIfAbsentConcurrent() {
	ctx := context.Background()
	const goroutines = 20
	var wg sync.WaitGroup
	var wins atomic.Int32
	var failures atomic.Int32
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.store.PutIfAbsent(ctx, "users", "race", storage.Document{"n": fmt.Sprint(i)})
			if err != nil {
				failures.Add(1)
				return
			}
			if created {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(0), failures.Load())
	s.Equal(int32(1), wins.Load())

	all, err := s.store.GetAll(ctx, "users")
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *Suite) TestQuery() {
	ctx := context.Background()
	for _, doc := range []storage.Document{
		{"policyId": "p1", "userId": "a"},
		{"policyId": "p2", "userId": "a"},
		{"policyId": "p1", "userId": "b"},
	} {
		_, err := s.store.Insert(ctx, "acks", doc)
		s.Require().NoError(err)
	}

	got, err := s.store.Query(ctx, "acks", "policyId", "p1")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("a", got[0].Doc["userId"])
	s.Equal("b", got[1].Doc["userId"])

	none, err := s.store.Query(ctx, "acks", "policyId", "p9")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *Suite) TestQueryRejectsBadField() {
	_, err := s.store.Query(context.Background(), "acks", "policyId' OR '1'='1", "x")
	s.Error(err)
}

func (s *Suite) TestGetAllEmptyAndOrdered() {
	ctx := context.Background()
	empty, err := s.store.GetAll(ctx, "nothing-here")
	s.Require().NoError(err)
	s.Empty(empty)

	var ids []string
	for i := range 5 {
		id, err := s.store.Insert(ctx, "ordered", storage.Document{"i": fmt.Sprint(i)})
		s.Require().NoError(err)
		ids = append(ids, id)
	}
	all, err := s.store.GetAll(ctx, "ordered")
	s.Require().NoError(err)
	s.Require().Len(all, 5)
	for i, rec := range all {
		s.Equal(ids[i], rec.ID)
	}
}

func (s *Suite) TestCollectionsAreIsolated() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "a", "k", storage.Document{"v": "a"}))
	_, err := s.store.GetByID(ctx, "b", "k")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *Suite) TestNestedValuesRoundTrip() {
	ctx := context.Background()
	type nested struct {
		Name  string            `json:"name"`
		Count int               `json:"count"`
		Tags  map[string]string `json:"tags"`
	}
	doc, err := storage.Encode(nested{Name: "n", Count: 7, Tags: map[string]string{"k": "v"}})
	s.Require().NoError(err)
	id, err := s.store.Insert(ctx, "nested", doc)
	s.Require().NoError(err)

	rec, err := s.store.GetByID(ctx, "nested", id)
	s.Require().NoError(err)
	var out nested
	s.Require().NoError(rec.Decode(&out))
	s.Equal(nested{Name: "n", Count: 7, Tags: map[string]string{"k": "v"}}, out)
}

func (s *Suite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}

// Package postgres is the networked storage backend on lib/pq.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"frontier/internal/storage"
	"frontier/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// writtenAtExpr stamps the write time from the database clock in UTC.
const writtenAtExpr = `jsonb_set($3::jsonb, '{_writtenAt}',
  to_jsonb(to_char(clock_timestamp() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')))`

// Store persists records as JSONB rows.
type Store struct {
	db *sql.DB
}

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", classify(err))
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection pool. Call Migrate before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the records table if needed.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", classify(err))
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, coll string, doc storage.Document) (string, error) {
	id := uuid.NewString()
	if _, err := s.PutIfAbsent(ctx, coll, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Put(ctx context.Context, coll, key string, doc storage.Document) error {
	data, err := marshal(coll, key, doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO records (collection, id, data) VALUES ($1, $2, `+writtenAtExpr+`)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		coll, key, data)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", coll, key, classify(err))
	}
	return nil
}

func (s *Store) PutIfAbsent(ctx context.Context, coll, key string, doc storage.Document) (bool, error) {
	data, err := marshal(coll, key, doc)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO records (collection, id, data) VALUES ($1, $2, `+writtenAtExpr+`)
ON CONFLICT (collection, id) DO NOTHING`,
		coll, key, data)
	if err != nil {
		return false, fmt.Errorf("put if absent %s/%s: %w", coll, key, classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put if absent %s/%s: %w", coll, key, err)
	}
	return n == 1, nil
}

func (s *Store) GetAll(ctx context.Context, coll string) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM records WHERE collection = $1 ORDER BY seq`, coll)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", coll, classify(err))
	}
	return scan(rows)
}

func (s *Store) Query(ctx context.Context, coll, field, value string) ([]storage.Record, error) {
	if err := storage.ValidateField(field); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, data FROM records
WHERE collection = $1 AND jsonb_typeof(data -> $2::text) = 'string' AND data ->> $2::text = $3
ORDER BY seq`,
		coll, field, value)
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", coll, field, classify(err))
	}
	return scan(rows)
}

func (s *Store) GetByID(ctx context.Context, coll, id string) (storage.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = $1 AND id = $2`, coll, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, sentinel.ErrNotFound
		}
		return storage.Record{}, fmt.Errorf("get %s/%s: %w", coll, id, classify(err))
	}
	return unmarshal(id, data)
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// classify marks connection-level failures as ErrUnavailable so callers can
// tell a dead database apart from a bad statement.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08: connection exception. Class 57: operator intervention (shutdown).
		code := string(pqErr.Code)
		if strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57") {
			return errors.Join(sentinel.ErrUnavailable, err)
		}
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return err
}

// marshal returns JSON text; lib/pq would send []byte as bytea.
func marshal(coll, key string, doc storage.Document) (string, error) {
	if err := storage.ValidateName("collection", coll); err != nil {
		return "", err
	}
	if err := storage.ValidateName("key", key); err != nil {
		return "", err
	}
	if doc == nil {
		doc = storage.Document{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal %s/%s: %w", coll, key, err)
	}
	return string(b), nil
}

func unmarshal(id string, data []byte) (storage.Record, error) {
	var doc storage.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return storage.Record{}, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return storage.Record{ID: id, Doc: doc}, nil
}

func scan(rows *sql.Rows) ([]storage.Record, error) {
	defer rows.Close()
	out := []storage.Record{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := unmarshal(id, data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", classify(err))
	}
	return out, nil
}

// Package sqlite is a single-node storage backend on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"frontier/internal/storage"
	"frontier/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// writtenAtExpr stamps the write time from SQLite's own clock.
const writtenAtExpr = `json_set(?, '$._writtenAt', strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))`

// Store persists records as JSON text in a single table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// Single connection: SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
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
INSERT INTO records (collection, id, data) VALUES (?, ?, `+writtenAtExpr+`)
ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		coll, key, data)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", coll, key, err)
	}
	return nil
}

func (s *Store) PutIfAbsent(ctx context.Context, coll, key string, doc storage.Document) (bool, error) {
	data, err := marshal(coll, key, doc)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO records (collection, id, data) VALUES (?, ?, `+writtenAtExpr+`)
ON CONFLICT (collection, id) DO NOTHING`,
		coll, key, data)
	if err != nil {
		return false, fmt.Errorf("put if absent %s/%s: %w", coll, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put if absent %s/%s: %w", coll, key, err)
	}
	return n == 1, nil
}

func (s *Store) GetAll(ctx context.Context, coll string) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM records WHERE collection = ? ORDER BY seq`, coll)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", coll, err)
	}
	return scan(rows)
}

func (s *Store) Query(ctx context.Context, coll, field, value string) ([]storage.Record, error) {
	if err := storage.ValidateField(field); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, data FROM records
WHERE collection = ? AND json_type(data, ?) = 'text' AND json_extract(data, ?) = ?
ORDER BY seq`,
		coll, "$."+field, "$."+field, value)
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", coll, field, err)
	}
	return scan(rows)
}

func (s *Store) GetByID(ctx context.Context, coll, id string) (storage.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = ? AND id = ?`, coll, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, sentinel.ErrNotFound
		}
		return storage.Record{}, fmt.Errorf("get %s/%s: %w", coll, id, err)
	}
	return unmarshal(id, data)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

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

func unmarshal(id, data string) (storage.Record, error) {
	var doc storage.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return storage.Record{}, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return storage.Record{ID: id, Doc: doc}, nil
}

func scan(rows *sql.Rows) ([]storage.Record, error) {
	defer rows.Close()
	out := []storage.Record{}
	for rows.Next() {
		var id, data string
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
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Package redis is a storage backend on go-redis. Each record is a JSON
// string; a sorted set per collection keeps first-write order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"frontier/internal/storage"
	"frontier/pkg/platform/sentinel"
)

// stampLua appends the server TIME, in microseconds, to the JSON object in
// ARGV[1] so the stamp is taken in the same atomic step as the write.
const stampLua = `
local t = redis.call('TIME')
local body = string.sub(ARGV[1], 1, -2)
local sep = ','
if body == '{' then sep = '' end
local data = body .. sep .. '"_writtenAt":"' .. t[1] .. string.format('%06d', tonumber(t[2])) .. '"}'
`

// KEYS: doc, ids, seq. ARGV: data, member.
var putIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
` + stampLua + `
redis.call('SET', KEYS[1], data)
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], 'NX', seq, ARGV[2])
return 1
`)

// KEYS: doc, ids, seq. ARGV: data, member.
var putScript = redis.NewScript(stampLua + `
redis.call('SET', KEYS[1], data)
if redis.call('ZSCORE', KEYS[2], ARGV[2]) == false then
  local seq = redis.call('INCR', KEYS[3])
  redis.call('ZADD', KEYS[2], seq, ARGV[2])
end
return 1
`)

// Store persists records in Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New constructs a Redis-backed store.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "frontier"}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) docKey(coll, id string) string {
	return fmt.Sprintf("%s:%s:doc:%s", s.prefix, coll, id)
}

func (s *Store) idsKey(coll string) string {
	return fmt.Sprintf("%s:%s:ids", s.prefix, coll)
}

func (s *Store) seqKey(coll string) string {
	return fmt.Sprintf("%s:%s:seq", s.prefix, coll)
}

func (s *Store) Insert(ctx context.Context, coll string, doc storage.Document) (string, error) {
	id := uuid.NewString()
	if _, err := s.PutIfAbsent(ctx, coll, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Put(ctx context.Context, coll, key string, doc storage.Document) error {
	data, err := encode(coll, key, doc)
	if err != nil {
		return err
	}
	keys := []string{s.docKey(coll, key), s.idsKey(coll), s.seqKey(coll)}
	if err := putScript.Run(ctx, s.client, keys, data, key).Err(); err != nil {
		return fmt.Errorf("put %s/%s: %w", coll, key, classify(err))
	}
	return nil
}

func (s *Store) PutIfAbsent(ctx context.Context, coll, key string, doc storage.Document) (bool, error) {
	data, err := encode(coll, key, doc)
	if err != nil {
		return false, err
	}
	keys := []string{s.docKey(coll, key), s.idsKey(coll), s.seqKey(coll)}
	created, err := putIfAbsentScript.Run(ctx, s.client, keys, data, key).Int()
	if err != nil {
		return false, fmt.Errorf("put if absent %s/%s: %w", coll, key, classify(err))
	}
	return created == 1, nil
}

func (s *Store) GetAll(ctx context.Context, coll string) ([]storage.Record, error) {
	ids, err := s.client.ZRange(ctx, s.idsKey(coll), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", coll, classify(err))
	}
	out := make([]storage.Record, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(coll, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", coll, classify(err))
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		rec, err := unmarshal(ids[i], raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Query scans the collection; Redis keeps no secondary index on document fields.
func (s *Store) Query(ctx context.Context, coll, field, value string) ([]storage.Record, error) {
	if err := storage.ValidateField(field); err != nil {
		return nil, err
	}
	all, err := s.GetAll(ctx, coll)
	if err != nil {
		return nil, err
	}
	out := []storage.Record{}
	for _, rec := range all {
		if v, ok := rec.Doc[field].(string); ok && v == value {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, coll, id string) (storage.Record, error) {
	raw, err := s.client.Get(ctx, s.docKey(coll, id)).Result()
	if errors.Is(err, redis.Nil) {
		return storage.Record{}, sentinel.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("get %s/%s: %w", coll, id, classify(err))
	}
	return unmarshal(id, raw)
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (s *Store) Close() error {
	return nil
}

// encode validates the names and serializes doc without a write time; the
// scripts stamp it server-side.
func encode(coll, key string, doc storage.Document) (string, error) {
	if err := storage.ValidateName("collection", coll); err != nil {
		return "", err
	}
	if err := storage.ValidateName("key", key); err != nil {
		return "", err
	}
	body := doc.Clone()
	delete(body, storage.FieldWrittenAt)
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal %s/%s: %w", coll, key, err)
	}
	return string(b), nil
}

func unmarshal(id, raw string) (storage.Record, error) {
	var doc storage.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return storage.Record{}, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	if micros, ok := doc[storage.FieldWrittenAt].(string); ok {
		if n, err := strconv.ParseInt(micros, 10, 64); err == nil {
			doc[storage.FieldWrittenAt] = storage.FormatWrittenAt(time.UnixMicro(n))
		}
	}
	return storage.Record{ID: id, Doc: doc}, nil
}

func classify(err error) error {
	if errors.Is(err, redis.ErrClosed) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return err
}

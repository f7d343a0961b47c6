// Package storage defines the record store adapter shared by every domain
// component. Backends live in sub-packages; all of them return
// sentinel.ErrNotFound for absent records and stamp FieldWrittenAt from
// their own clock on every write.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Collection names.
const (
	CollectionHazards         = "hazardIds"
	CollectionAcknowledgments = "policyAcknowledgments"
	CollectionUsers           = "users"
	CollectionInspections     = "inspections"
	CollectionAuditEvents     = "auditEvents"
)

// FieldWrittenAt is reserved; backends overwrite it on every write.
const FieldWrittenAt = "_writtenAt"

// Document is a schemaless record body. Values must be JSON-representable.
type Document map[string]any

// Record is a stored document together with its key.
type Record struct {
	ID  string
	Doc Document
}

// Store is the record store adapter.
//
// GetAll and Query return records in first-write order. Query matches a
// top-level field by string equality.
type Store interface {
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	Put(ctx context.Context, collection, key string, doc Document) error
	PutIfAbsent(ctx context.Context, collection, key string, doc Document) (bool, error)
	GetAll(ctx context.Context, collection string) ([]Record, error)
	Query(ctx context.Context, collection, field, value string) ([]Record, error)
	GetByID(ctx context.Context, collection, id string) (Record, error)
	Ping(ctx context.Context) error
	Close() error
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateField rejects field names that could not be a top-level JSON key
// in every backend's query language.
func ValidateField(field string) error {
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("invalid query field %q", field)
	}
	return nil
}

// ValidateName rejects empty collection names or keys.
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s must not be empty", kind)
	}
	return nil
}

// Encode converts a typed value into a Document through its JSON form.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills v from the record's document.
func (r Record) Decode(v any) error {
	b, err := json.Marshal(r.Doc)
	if err != nil {
		return fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return nil
}

// WrittenAt returns the store-assigned write time, if present.
func (r Record) WrittenAt() (time.Time, bool) {
	switch v := r.Doc[FieldWrittenAt].(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case time.Time:
		return v, true
	default:
		return time.Time{}, false
	}
}

// FormatWrittenAt renders a write time the way backends store it.
func FormatWrittenAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Clone returns a shallow copy of doc.
func (d Document) Clone() Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Stamped returns a copy of doc carrying the write time.
func Stamped(doc Document, at time.Time) Document {
	out := doc.Clone()
	out[FieldWrittenAt] = FormatWrittenAt(at)
	return out
}

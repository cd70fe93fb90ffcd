// Package docstore is a small document-store abstraction: named collections of
// JSON records, each keyed by a generated ID. Backends exist for PostgreSQL
// (JSONB), MongoDB and process memory.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotConnected = errors.New("database not connected")
	ErrNotFound     = errors.New("document not found")
	ErrConflict     = errors.New("document changed concurrently")
	ErrInvalidID    = errors.New("invalid id")
)

// InvalidIDError reports an identifier that failed to parse. It matches
// ErrInvalidID with errors.Is.
type InvalidIDError struct {
	Value string
	Err   error
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q", e.Value)
}

func (e *InvalidIDError) Unwrap() error { return e.Err }

func (e *InvalidIDError) Is(target error) bool { return target == ErrInvalidID }

// ID identifies a document. The zero value is "no id".
type ID struct {
	u uuid.UUID
}

func NewID() ID {
	return ID{u: uuid.New()}
}

// ParseID validates s once at the boundary so the rest of the code never
// handles raw id strings.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ID{}, &InvalidIDError{Value: s, Err: err}
	}
	if u == uuid.Nil {
		return ID{}, &InvalidIDError{Value: s, Err: errors.New("nil uuid")}
	}
	return ID{u: u}, nil
}

// MustParseID is for tests and static data.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.u.String()
}

func (id ID) IsZero() bool { return id.u == uuid.Nil }

func (id ID) UUID() uuid.UUID { return id.u }

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = ID{}
		return nil
	}
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// In matches a field against any of its values.
type In []any

// Filter is a conjunction of per-field conditions. Plain values mean
// equality; In values mean membership.
type Filter map[string]any

// Query selects documents from a collection. Limit <= 0 means no limit.
// Results come back in insertion order, or newest first when Newest is set.
type Query struct {
	Filter Filter
	Limit  int
	Newest bool
}

// Record is a stored document body without its identifier.
type Record struct {
	ID   ID
	Data json.RawMessage
}

// Decode unmarshals the record body into out.
func (r Record) Decode(out any) error {
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", r.ID, err)
	}
	return nil
}

// Store is implemented by every backend. Each call is a single atomic
// document operation; there are no multi-document transactions.
type Store interface {
	Insert(ctx context.Context, collection string, doc any) (ID, error)
	Get(ctx context.Context, collection string, id ID, out any) error
	Find(ctx context.Context, collection string, q Query) ([]Record, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	Update(ctx context.Context, collection string, id ID, set map[string]any) error
	// CompareAndSet applies set only while every field in expect still holds.
	// It returns ErrConflict when the document exists but no longer matches.
	CompareAndSet(ctx context.Context, collection string, id ID, expect Filter, set map[string]any) error
	Collections(ctx context.Context, limit int) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Fields reserved for identifiers and bookkeeping; they never reach the
// stored body.
var reservedFields = []string{"id", "_id", "_seq"}

// toBody converts any JSON-serializable value into a plain document map.
func toBody(doc any) (map[string]any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	body := map[string]any{}
	if err := json.Unmarshal(b, &body); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	for _, f := range reservedFields {
		delete(body, f)
	}
	return body, nil
}

// normalize round-trips v through JSON so that Go values compare the same way
// stored values do (numbers as float64, structs as maps).
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func normalizeSet(set map[string]any) map[string]any {
	out := make(map[string]any, len(set))
	for k, v := range set {
		out[k] = normalize(v)
	}
	for _, f := range reservedFields {
		delete(out, f)
	}
	return out
}

// split separates equality conditions from membership conditions.
func (f Filter) split() (eq map[string]any, in map[string][]any) {
	eq = map[string]any{}
	in = map[string][]any{}
	for k, v := range f {
		if values, ok := v.(In); ok {
			norm := make([]any, 0, len(values))
			for _, item := range values {
				norm = append(norm, normalize(item))
			}
			in[k] = norm
			continue
		}
		eq[k] = normalize(v)
	}
	return eq, in
}

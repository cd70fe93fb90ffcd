package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type memCollection struct {
	order []ID
	docs  map[ID]map[string]any
}

// Memory keeps documents in process. It backs tests and DATABASE_URL=memory://.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) collection(name string, create bool) *memCollection {
	c, ok := m.collections[name]
	if !ok && create {
		c = &memCollection{docs: make(map[ID]map[string]any)}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Insert(ctx context.Context, collection string, doc any) (ID, error) {
	body, err := toBody(doc)
	if err != nil {
		return ID{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection, true)
	id := NewID()
	c.order = append(c.order, id)
	c.docs[id] = body
	return id, nil
}

func (m *Memory) Get(ctx context.Context, collection string, id ID, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.collection(collection, false)
	if c == nil {
		return ErrNotFound
	}
	body, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (m *Memory) Find(ctx context.Context, collection string, q Query) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := []Record{}
	c := m.collection(collection, false)
	if c == nil {
		return records, nil
	}

	eq, in := q.Filter.split()
	n := len(c.order)
	for i := 0; i < n; i++ {
		idx := i
		if q.Newest {
			idx = n - 1 - i
		}
		id := c.order[idx]
		body := c.docs[id]
		if !matches(body, eq, in) {
			continue
		}
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode document %s: %w", id, err)
		}
		records = append(records, Record{ID: id, Data: b})
		if q.Limit > 0 && len(records) >= q.Limit {
			break
		}
	}
	return records, nil
}

func (m *Memory) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.collection(collection, false)
	if c == nil {
		return 0, nil
	}
	eq, in := filter.split()
	var count int64
	for _, body := range c.docs {
		if matches(body, eq, in) {
			count++
		}
	}
	return count, nil
}

func (m *Memory) Update(ctx context.Context, collection string, id ID, set map[string]any) error {
	return m.CompareAndSet(ctx, collection, id, nil, set)
}

func (m *Memory) CompareAndSet(ctx context.Context, collection string, id ID, expect Filter, set map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection, false)
	if c == nil {
		return ErrNotFound
	}
	body, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	eq, in := expect.split()
	if !matches(body, eq, in) {
		return ErrConflict
	}
	for k, v := range normalizeSet(set) {
		body[k] = v
	}
	return nil
}

func (m *Memory) Collections(ctx context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close(ctx context.Context) error { return nil }

func matches(body map[string]any, eq map[string]any, in map[string][]any) bool {
	for k, want := range eq {
		got, ok := body[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	for k, options := range in {
		got, ok := body[k]
		if !ok {
			return false
		}
		found := false
		for _, want := range options {
			if reflect.DeepEqual(got, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

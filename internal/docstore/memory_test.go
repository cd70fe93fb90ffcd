package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID    ID     `json:"id,omitzero"`
	Topic string `json:"topic"`
	Level int    `json:"level"`
}

func TestMemory_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.Insert(ctx, "child", testDoc{Topic: "etika_digital", Level: 2})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	var got testDoc
	require.NoError(t, m.Get(ctx, "child", id, &got))
	assert.Equal(t, "etika_digital", got.Topic)
	assert.Equal(t, 2, got.Level)
	assert.True(t, got.ID.IsZero(), "identifier must not be stored in the body")

	err = m.Get(ctx, "child", NewID(), &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_FindFilterLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	topics := []string{"a", "b", "a", "c", "a"}
	var ids []ID
	for i, topic := range topics {
		id, err := m.Insert(ctx, "activity", testDoc{Topic: topic, Level: i})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recs, err := m.Find(ctx, "activity", Query{Filter: Filter{"topic": "a"}})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []ID{ids[0], ids[2], ids[4]}, []ID{recs[0].ID, recs[1].ID, recs[2].ID})

	recs, err = m.Find(ctx, "activity", Query{Filter: Filter{"topic": In{"b", "c"}}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, ids[1], recs[0].ID)

	recs, err = m.Find(ctx, "activity", Query{Newest: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, ids[4], recs[0].ID)
	assert.Equal(t, ids[3], recs[1].ID)

	recs, err = m.Find(ctx, "missing", Query{})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestMemory_CountMatchesNumbersAcrossTypes(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 0; i < 3; i++ {
		_, err := m.Insert(ctx, "progress", testDoc{Topic: "x", Level: i % 2})
		require.NoError(t, err)
	}

	n, err := m.Count(ctx, "progress", Filter{"level": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Count(ctx, "progress", Filter{"level": 0.0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMemory_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.Insert(ctx, "child", testDoc{Topic: "x", Level: 1})
	require.NoError(t, err)

	err = m.CompareAndSet(ctx, "child", id, Filter{"level": 1}, map[string]any{"level": 2})
	require.NoError(t, err)

	err = m.CompareAndSet(ctx, "child", id, Filter{"level": 1}, map[string]any{"level": 3})
	assert.ErrorIs(t, err, ErrConflict)

	var got testDoc
	require.NoError(t, m.Get(ctx, "child", id, &got))
	assert.Equal(t, 2, got.Level)

	err = m.CompareAndSet(ctx, "child", NewID(), nil, map[string]any{"level": 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Collections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, name := range []string{"progress", "activity", "child"} {
		_, err := m.Insert(ctx, name, testDoc{})
		require.NoError(t, err)
	}

	names, err := m.Collections(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"activity", "child"}, names)
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "abc", "00000000-0000-0000-0000-000000000000", "64b7f0c2e4b0a1b2c3d4e5f6"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
		var invalid *InvalidIDError
		assert.True(t, errors.As(err, &invalid), bad)
	}
}

func TestDisconnected(t *testing.T) {
	ctx := context.Background()
	var s Store = Disconnected{}

	_, err := s.Insert(ctx, "child", testDoc{})
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = s.Find(ctx, "child", Query{})
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, IsConnected(s))
	assert.True(t, IsConnected(NewMemory()))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "literasi")
	require.NoError(t, err)
	assert.False(t, IsConnected(s))

	s, err = Open(ctx, "memory://", "literasi")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(ctx, "mysql://localhost/db", "literasi")
	assert.Error(t, err)
}

package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), CollectionUsers, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := NewDocument("r1", testRecord{ID: "r1", Name: "first", Count: 3})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, CollectionModules, doc))

	got, err := store.Get(ctx, CollectionModules, "r1")
	require.NoError(t, err)

	var record testRecord
	require.NoError(t, got.Decode(&record))
	assert.Equal(t, "first", record.Name)
	assert.Equal(t, 3, record.Count)
}

func TestMemoryStorePutIsUpsert(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := NewDocument("r1", testRecord{ID: "r1", Name: "first"})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, CollectionModules, first))

	second, err := NewDocument("r1", testRecord{ID: "r1", Name: "second"})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, CollectionModules, second))

	docs, err := store.Query(ctx, CollectionModules, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var record testRecord
	require.NoError(t, docs[0].Decode(&record))
	assert.Equal(t, "second", record.Name)
}

func TestMemoryStoreQueryFilter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, r := range []testRecord{
		{ID: "a", Name: "match", Count: 1},
		{ID: "b", Name: "match", Count: 2},
		{ID: "c", Name: "other", Count: 1},
	} {
		doc, err := NewDocument(r.ID, r)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, CollectionUsers, doc))
	}

	docs, err := store.Query(ctx, CollectionUsers, Filter{"name": "match"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Numeric filter values must compare against decoded JSON numbers
	docs, err = store.Query(ctx, CollectionUsers, Filter{"count": 1})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = store.Query(ctx, CollectionUsers, Filter{"name": "match", "count": 2})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = store.Query(ctx, CollectionUsers, Filter{"name": "nobody"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreQueryNilFilterScansAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		doc, err := NewDocument(id, testRecord{ID: id})
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, CollectionEnrollments, doc))
	}

	docs, err := store.Query(ctx, CollectionEnrollments, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemoryStoreFailNext(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("store unavailable")

	store.FailNext = boom

	_, err := store.Get(ctx, CollectionUsers, "x")
	assert.ErrorIs(t, err, boom)

	doc, err := NewDocument("x", testRecord{ID: "x"})
	require.NoError(t, err)
	assert.ErrorIs(t, store.Put(ctx, CollectionUsers, doc), boom)

	_, err = store.Query(ctx, CollectionUsers, nil)
	assert.ErrorIs(t, err, boom)

	store.FailNext = nil
	require.NoError(t, store.Put(ctx, CollectionUsers, doc))
}

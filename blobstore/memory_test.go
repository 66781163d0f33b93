package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a/one", []byte("first")))
	require.NoError(t, store.Put(ctx, "a/two", []byte("second")))
	require.NoError(t, store.Put(ctx, "b/one", []byte("third")))

	data, err := store.Get(ctx, "a/one")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	// Returned data is a copy; mutating it must not affect the store.
	data[0] = 'X'
	data, err = store.Get(ctx, "a/one")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	// Put replaces.
	require.NoError(t, store.Put(ctx, "a/one", []byte("replaced")))
	data, err = store.Get(ctx, "a/one")
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), data)

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/one", "a/two"}, names)

	require.NoError(t, store.Delete(ctx, "a/one"))
	_, err = store.Get(ctx, "a/one")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing blob is not an error.
	require.NoError(t, store.Delete(ctx, "a/one"))
}

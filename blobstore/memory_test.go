package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a/one", []byte("first")))
	require.NoError(t, store.Put(ctx, "a/two", []byte("second")))
	require.NoError(t, store.Put(ctx, "b/one", []byte("third")))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "a/two"}, names)

	blob, err := store.Open(ctx, "a/one")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(5), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", string(buf[:n]))

	// Open handles stay stable across overwrites
	require.NoError(t, store.Put(ctx, "a/one", []byte("replaced")))
	n, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", string(buf[:n]))

	require.NoError(t, store.Delete(ctx, "a/one"))
	_, err = store.Open(ctx, "a/one")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CreateStreams(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	w, err := store.Create(ctx, "streamed")
	require.NoError(t, err)

	_, err = w.Write([]byte("part one "))
	require.NoError(t, err)
	_, err = w.Write([]byte("part two"))
	require.NoError(t, err)

	// Not visible until Close
	_, err = store.Open(ctx, "streamed")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "streamed")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 0, blob.Size())
	require.NoError(t, err)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "part one part two", string(all))
}

func TestMemoryStore_ReadRangeClamps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "blob", []byte("0123456789")))

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 8, 100)
	require.NoError(t, err)
	tail, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "89", string(tail))

	r, err = blob.ReadRange(ctx, 50, 4)
	require.NoError(t, err)
	empty, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

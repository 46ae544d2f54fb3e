package storage_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) storage.KVStore {
	t.Helper()

	kv, err := storage.NewKVStore("")
	require.NoError(t, err)
	t.Cleanup(kv.Close)
	return kv
}

func TestKVStore(t *testing.T) {
	t.Run("SetGetRoundTrip", func(t *testing.T) {
		kv := newTestKV(t)

		require.NoError(t, kv.Set("history", []byte(`[{"query":"shoes"}]`)))

		v, err := kv.Get("history")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"query":"shoes"}]`), v)
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		kv := newTestKV(t)

		_, err := kv.Get("missing")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		kv := newTestKV(t)

		require.NoError(t, kv.Set("k", []byte("old")))
		require.NoError(t, kv.Set("k", []byte("new")))

		v, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("DeleteRemovesKey", func(t *testing.T) {
		kv := newTestKV(t)

		require.NoError(t, kv.Set("k", []byte("v")))
		require.NoError(t, kv.Delete("k"))

		_, err := kv.Get("k")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("DeleteMissingKeyNoError", func(t *testing.T) {
		kv := newTestKV(t)

		assert.NoError(t, kv.Delete("missing"))
	})

	t.Run("PersistsAcrossReopen", func(t *testing.T) {
		dir := t.TempDir()

		kv, err := storage.NewKVStore(dir)
		require.NoError(t, err)
		require.NoError(t, kv.Set("history", []byte("payload")))
		kv.Close()

		kv, err = storage.NewKVStore(dir)
		require.NoError(t, err)
		defer kv.Close()

		v, err := kv.Get("history")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), v)
	})
}

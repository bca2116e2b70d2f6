package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", "v", time.Minute))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestMemoryStore_Miss(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", "v", -time.Second))

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", "v", time.Minute))
	require.NoError(t, store.Delete("k"))

	_, ok, _ := store.Get("k")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete("absent"))
}

func TestMemoryStore_Purge(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("live", "v", time.Minute))
	require.NoError(t, store.Set("dead", "v", -time.Second))

	store.Purge()

	_, ok, _ := store.Get("live")
	assert.True(t, ok)
	assert.NotContains(t, store.entries, "dead")
}

package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok-1", "42", time.Minute))

	val, ok, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", val)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, ok, err := store.Get(context.Background(), "never-set")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok-2", "42", 30*time.Millisecond))

	time.Sleep(60 * time.Millisecond)

	_, ok, err := store.Get(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, ok, "record must vanish after its TTL lapses")
}

func TestMemoryStore_GetDoesNotSlide(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok-3", "42", 80*time.Millisecond))

	// Repeated reads must not extend the record's life.
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		_, _, err := store.Get(ctx, "tok-3")
		require.NoError(t, err)
	}
	time.Sleep(40 * time.Millisecond)

	_, ok, err := store.Get(ctx, "tok-3")
	require.NoError(t, err)
	assert.False(t, ok, "reads alone must not reset the TTL")
}

func TestMemoryStore_SetResetsTTL(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok-4", "42", 60*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	// An explicit rewrite restarts the window.
	require.NoError(t, store.Set(ctx, "tok-4", "slid", 100*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	val, ok, err := store.Get(ctx, "tok-4")
	require.NoError(t, err)
	assert.True(t, ok, "rewrite must have restarted the TTL")
	assert.Equal(t, "slid", val)
}

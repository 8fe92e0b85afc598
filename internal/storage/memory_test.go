package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"creatorhub/internal/storage"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), value)

	// Whole-value replace.
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))
	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'X'

	stored, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), stored)

	stored[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), again)
}

func TestSubscribeDeliversLocalWrites(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	sub := store.Subscribe("watched")
	defer sub.Stop()

	require.NoError(t, store.Set(ctx, "other", []byte("x")))
	require.NoError(t, store.Set(ctx, "watched", []byte("y")))

	select {
	case event := <-sub.Events():
		require.Equal(t, "watched", event.Key)
		require.Empty(t, event.Origin)
	case <-time.After(time.Second):
		t.Fatal("no event for watched key")
	}

	// The write to the unwatched key must not have been delivered.
	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected event for key %q", event.Key)
	default:
	}
}

func TestSubscribeDeliversDeletes(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	sub := store.Subscribe("k")
	defer sub.Stop()

	require.NoError(t, store.Delete(ctx, "k"))

	select {
	case event := <-sub.Events():
		require.Equal(t, "k", event.Key)
	case <-time.After(time.Second):
		t.Fatal("no event for delete")
	}
}

func TestStoppedSubscriptionReceivesNothing(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	sub := store.Subscribe("k")
	sub.Stop()
	sub.Stop() // stopping twice is fine

	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	select {
	case <-sub.Events():
		t.Fatal("stopped subscription got an event")
	default:
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	sub := store.Subscribe("k")
	defer sub.Stop()

	// Far more writes than the subscription buffer holds; Set must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = store.Set(ctx, "k", []byte{byte(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a slow subscriber")
	}
}

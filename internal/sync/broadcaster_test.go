package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"creatorhub/internal/content"
	"creatorhub/internal/models"
	"creatorhub/internal/storage"
	syncer "creatorhub/internal/sync"
)

// pollOnlyStore hides change events, leaving the poll as the only refresh
// path. This is how a backend without a change feed behaves.
type pollOnlyStore struct {
	*storage.MemoryStore
	silent *storage.MemoryStore
}

func newPollOnlyStore() *pollOnlyStore {
	return &pollOnlyStore{
		MemoryStore: storage.NewMemoryStore(),
		silent:      storage.NewMemoryStore(),
	}
}

func (s *pollOnlyStore) Subscribe(key string) *storage.Subscription {
	return s.silent.Subscribe(key)
}

func TestEventTriggerPropagatesWrites(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	writer := content.NewRepository(ctx, store, zerolog.Nop())
	reader := content.NewRepository(ctx, store, zerolog.Nop())

	// Long poll interval so only the event path can explain convergence.
	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, reader, time.Hour, zerolog.Nop())
	require.NoError(t, broadcaster.Start())
	defer broadcaster.Stop()

	post, ok := writer.Create(ctx, models.PostTypeText, "Hello", "from the writer", "")
	require.True(t, ok)

	require.Eventually(t, func() bool {
		posts := reader.List()
		return len(posts) == 1 && posts[0].ID == post.ID
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPollTriggerPropagatesWrites(t *testing.T) {
	store := newPollOnlyStore()
	ctx := context.Background()

	writer := content.NewRepository(ctx, store, zerolog.Nop())
	reader := content.NewRepository(ctx, store, zerolog.Nop())

	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, reader, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, broadcaster.Start())
	defer broadcaster.Stop()

	post, ok := writer.Create(ctx, models.PostTypeText, "Polled", "no events here", "")
	require.True(t, ok)

	// Nothing but the poll can refresh the reader.
	require.Eventually(t, func() bool {
		posts := reader.List()
		return len(posts) == 1 && posts[0].ID == post.ID
	}, 3*time.Second, 10*time.Millisecond)
}

func TestDeletePropagates(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	writer := content.NewRepository(ctx, store, zerolog.Nop())
	reader := content.NewRepository(ctx, store, zerolog.Nop())

	post, ok := writer.Create(ctx, models.PostTypeText, "Doomed", "gone soon", "")
	require.True(t, ok)

	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, reader, time.Hour, zerolog.Nop())
	require.NoError(t, broadcaster.Start())
	defer broadcaster.Stop()

	reader.Reload(ctx)
	require.Len(t, reader.List(), 1)

	writer.Delete(ctx, post.ID)

	require.Eventually(t, func() bool {
		return len(reader.List()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStopAfterFailedStartReturns(t *testing.T) {
	store := storage.NewMemoryStore()
	reader := content.NewRepository(context.Background(), store, zerolog.Nop())

	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, reader, 0, zerolog.Nop())
	require.Error(t, broadcaster.Start())

	// Must not block waiting on a listener that never started.
	done := make(chan struct{})
	go func() {
		broadcaster.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after a failed Start")
	}
}

func TestStopReleasesTriggers(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	writer := content.NewRepository(ctx, store, zerolog.Nop())
	reader := content.NewRepository(ctx, store, zerolog.Nop())

	broadcaster := syncer.NewBroadcaster(store, models.KeyPosts, reader, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, broadcaster.Start())
	broadcaster.Stop()

	_, ok := writer.Create(ctx, models.PostTypeText, "After stop", "unseen", "")
	require.True(t, ok)

	// A stopped broadcaster must refresh nothing.
	time.Sleep(200 * time.Millisecond)
	require.Empty(t, reader.List())
}

// Package content owns the ordered collection of published posts.
//
// Persistence is whole-snapshot: every mutation serializes the entire
// collection and writes it under one key. Two contexts mutating
// concurrently are therefore last-writer-wins on the whole collection,
// with no merge or conflict detection. That is the documented consistency
// model, inherited from the storage medium, not a bug to fix here.
package content

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"creatorhub/internal/ids"
	"creatorhub/internal/models"
	"creatorhub/internal/storage"
)

// Repository keeps the in-memory post sequence, newest-first, mirrored to
// the durable store under models.KeyPosts.
type Repository struct {
	store storage.Store
	log   zerolog.Logger

	mu    sync.RWMutex
	posts []models.ContentPost
}

func NewRepository(ctx context.Context, store storage.Store, log zerolog.Logger) *Repository {
	r := &Repository{
		store: store,
		log:   log.With().Str("component", "content").Logger(),
	}
	r.Reload(ctx)
	return r
}

// Create publishes a post at the head of the sequence. Empty title or
// content makes it a no-op returning false; there is no finer-grained
// error reporting by contract.
func (r *Repository) Create(ctx context.Context, postType models.PostType, title, content, url string) (models.ContentPost, bool) {
	if title == "" || content == "" {
		return models.ContentPost{}, false
	}

	post := models.ContentPost{
		ID:        ids.New(),
		Type:      postType,
		Title:     title,
		Content:   content,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	updated := make([]models.ContentPost, 0, len(r.posts)+1)
	updated = append(updated, post)
	updated = append(updated, r.posts...)
	r.posts = updated
	r.persistLocked(ctx)
	r.mu.Unlock()

	r.log.Debug().Str("post_id", post.ID).Str("type", string(post.Type)).Msg("post published")
	return post, true
}

// List returns a copy of the current sequence, newest-first.
func (r *Repository) List() []models.ContentPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ContentPost, len(r.posts))
	copy(out, r.posts)
	return out
}

// Len returns the number of posts currently held.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

// Delete removes the post with the given id and rewrites the snapshot.
// Absent ids are a no-op, so calling it twice is harmless.
func (r *Repository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.posts[:0:0]
	removed := false
	for _, post := range r.posts {
		if post.ID == id {
			removed = true
			continue
		}
		kept = append(kept, post)
	}
	if !removed {
		return
	}

	r.posts = kept
	r.persistLocked(ctx)

	r.log.Debug().Str("post_id", id).Msg("post deleted")
}

// Reload replaces the in-memory sequence with the stored snapshot. An
// absent or unreadable snapshot fails open to the empty collection, the
// safe state for a demo.
func (r *Repository) Reload(ctx context.Context) {
	raw, err := r.store.Get(ctx, models.KeyPosts)
	if err != nil {
		if err != storage.ErrNotFound {
			r.log.Warn().Err(err).Msg("read snapshot failed, keeping current view")
			return
		}
		r.mu.Lock()
		r.posts = nil
		r.mu.Unlock()
		return
	}

	var posts []models.ContentPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		r.log.Warn().Err(err).Msg("snapshot unreadable, treating as empty")
		posts = nil
	}

	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()
}

func (r *Repository) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(r.posts)
	if err != nil {
		r.log.Error().Err(err).Msg("marshal snapshot failed")
		return
	}
	if err := r.store.Set(ctx, models.KeyPosts, raw); err != nil {
		r.log.Warn().Err(err).Msg("persist snapshot failed")
	}
}

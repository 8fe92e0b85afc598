// Package sync keeps a reader's in-memory view of stored state eventually
// consistent with the durable store.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"creatorhub/internal/storage"
)

// Reloader is anything whose view can be replaced from the store.
type Reloader interface {
	Reload(ctx context.Context)
}

// Broadcaster refreshes a Reloader from two independent triggers: change
// events for the watched key, and a fixed-interval poll. A reader's view
// therefore reflects any write within max(event latency, poll interval).
// The poll is the only path for backends without a change feed; where one
// exists it merely makes some refreshes redundant, which is harmless
// because reloads are idempotent.
type Broadcaster struct {
	store    storage.Store
	key      string
	reloader Reloader
	interval time.Duration
	log      zerolog.Logger

	cron   *cron.Cron
	sub    *storage.Subscription
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBroadcaster(store storage.Store, key string, reloader Reloader, interval time.Duration, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		store:    store,
		key:      key,
		reloader: reloader,
		interval: interval,
		log:      log.With().Str("component", "sync").Str("key", key).Logger(),
		cron:     cron.New(),
		done:     make(chan struct{}),
	}
}

func (b *Broadcaster) Start() error {
	if b.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", b.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.store.Subscribe(b.key)

	if _, err := b.cron.AddFunc("@every "+b.interval.String(), func() {
		b.reloader.Reload(context.Background())
	}); err != nil {
		cancel()
		sub.Stop()
		return err
	}

	// Only a successful start arms Stop; after a failed one Stop stays a no-op.
	b.cancel = cancel
	b.sub = sub
	b.cron.Start()

	go b.listen(ctx)

	b.log.Debug().Dur("poll_interval", b.interval).Msg("broadcaster started")
	return nil
}

// Stop releases the subscription and the poll timer. Required when the
// owning consumer goes away, or the timer leaks past its lifecycle.
func (b *Broadcaster) Stop() {
	if b.cancel == nil {
		return
	}

	b.cancel()
	b.sub.Stop()

	stopCtx := b.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		b.log.Warn().Msg("poll jobs still running at stop")
	}

	<-b.done
	b.log.Debug().Msg("broadcaster stopped")
}

func (b *Broadcaster) listen(ctx context.Context) {
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-b.sub.Events():
			if !ok {
				return
			}
			b.reloader.Reload(ctx)
		}
	}
}

package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value exists under the key.
// A missing value is the normal initial state, not a failure.
var ErrNotFound = errors.New("key not found")

// Store is the durable key-value medium behind all application state.
// Values are opaque and written whole: there is no partial update and no
// compare-and-swap, so concurrent writers to the same key are
// last-writer-wins on the entire value.
//
// Every Set and Delete notifies this process's own subscribers of the key
// synchronously. Backends with a shared medium additionally deliver change
// events originating in other processes; a process never receives the echo
// of its own remote publication twice.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Subscribe(key string) *Subscription
	Close() error
}

// Event describes one observed change to a key. Origin is empty for
// local writes and carries the writing process's store id for remote ones.
type Event struct {
	Key    string `json:"key"`
	Origin string `json:"origin,omitempty"`
}

// Subscription delivers change events for a single key until stopped.
// The channel is buffered; when a subscriber lags, events are dropped
// rather than blocking the writer. Reads are idempotent, so a dropped
// event at worst delays convergence until the next event or poll.
type Subscription struct {
	events chan Event
	stop   func()
	once   sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Stop() {
	s.once.Do(s.stop)
}

const subscriptionBuffer = 8

// notifier fans change events out to per-key subscribers. Shared by all
// backends; remote listeners feed into it the same way local writes do.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[*Subscription]struct{})}
}

func (n *notifier) subscribe(key string) *Subscription {
	sub := &Subscription{events: make(chan Event, subscriptionBuffer)}
	sub.stop = func() {
		n.mu.Lock()
		if set, ok := n.subs[key]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(n.subs, key)
			}
		}
		n.mu.Unlock()
	}

	n.mu.Lock()
	if _, ok := n.subs[key]; !ok {
		n.subs[key] = make(map[*Subscription]struct{})
	}
	n.subs[key][sub] = struct{}{}
	n.mu.Unlock()

	return sub
}

func (n *notifier) publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs[event.Key] {
		select {
		case sub.events <- event:
		default:
		}
	}
}

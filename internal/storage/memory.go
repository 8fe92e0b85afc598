package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. It is the single-context
// backend: durable only for the process lifetime, no cross-process events.
// It doubles as the substitute store in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	events *notifier
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		events: newNotifier(),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.values[key] = stored
	s.mu.Unlock()

	s.events.publish(Event{Key: key})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	s.events.publish(Event{Key: key})
	return nil
}

func (s *MemoryStore) Subscribe(key string) *Subscription {
	return s.events.subscribe(key)
}

func (s *MemoryStore) Close() error {
	return nil
}

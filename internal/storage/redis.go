package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"creatorhub/internal/config"
	"creatorhub/internal/ids"
)

// RedisStore persists values as plain redis strings and broadcasts change
// events over one pub/sub channel shared by all processes. Each store
// instance tags its publications with an origin id so it can discard the
// echo of its own writes; local subscribers are notified directly at write
// time instead.
type RedisStore struct {
	client  *redis.Client
	channel string
	origin  string
	events  *notifier
	pubsub  *redis.PubSub
	cancel  context.CancelFunc
	log     zerolog.Logger
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	loopCtx, loopCancel := context.WithCancel(context.Background())

	s := &RedisStore{
		client:  client,
		channel: cfg.Channel,
		origin:  ids.NewOpaque(),
		events:  newNotifier(),
		pubsub:  client.Subscribe(loopCtx, cfg.Channel),
		cancel:  loopCancel,
		log:     log.With().Str("component", "redis_store").Logger(),
	}

	go s.listen(loopCtx)

	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	s.announce(ctx, key)
	s.events.publish(Event{Key: key})
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	s.announce(ctx, key)
	s.events.publish(Event{Key: key})
	return nil
}

func (s *RedisStore) Subscribe(key string) *Subscription {
	return s.events.subscribe(key)
}

func (s *RedisStore) Close() error {
	s.cancel()
	if err := s.pubsub.Close(); err != nil {
		s.log.Warn().Err(err).Msg("pubsub close error")
	}
	return s.client.Close()
}

// announce publishes the change to other processes. Failures only delay
// their convergence until the poll; the write itself already succeeded.
func (s *RedisStore) announce(ctx context.Context, key string) {
	payload, err := json.Marshal(Event{Key: key, Origin: s.origin})
	if err != nil {
		return
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("publish change failed")
	}
}

func (s *RedisStore) listen(ctx context.Context) {
	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.log.Warn().Err(err).Msg("malformed change event")
				continue
			}
			if event.Origin == s.origin {
				continue
			}

			s.events.publish(event)
		}
	}
}

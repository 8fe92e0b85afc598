package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"creatorhub/internal/config"
	"creatorhub/internal/ids"
)

const (
	pgStateTable    = "kv_state"
	pgNotifyChannel = "creatorhub_changes"
)

// PostgresStore keeps values in a single key/value table and relays change
// events between processes with LISTEN/NOTIFY. One pooled connection is
// held aside as the listener for the process lifetime.
type PostgresStore struct {
	pool   *pgxpool.Pool
	origin string
	events *notifier
	cancel context.CancelFunc
	log    zerolog.Logger
}

func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig, log zerolog.Logger) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpen)
	poolConfig.MinConns = int32(cfg.MaxIdle)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS ` + pgStateTable + ` (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(connectCtx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}

	loopCtx, loopCancel := context.WithCancel(context.Background())

	s := &PostgresStore{
		pool:   pool,
		origin: ids.NewOpaque(),
		events: newNotifier(),
		cancel: loopCancel,
		log:    log.With().Str("component", "postgres_store").Logger(),
	}

	go s.listen(loopCtx)

	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM ` + pgStateTable + ` WHERE key = $1`

	var value []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO ` + pgStateTable + ` (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}

	s.announce(ctx, key)
	s.events.publish(Event{Key: key})
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM ` + pgStateTable + ` WHERE key = $1`
	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("postgres delete %s: %w", key, err)
	}

	s.announce(ctx, key)
	s.events.publish(Event{Key: key})
	return nil
}

func (s *PostgresStore) Subscribe(key string) *Subscription {
	return s.events.subscribe(key)
}

func (s *PostgresStore) Close() error {
	s.cancel()
	s.pool.Close()
	return nil
}

func (s *PostgresStore) announce(ctx context.Context, key string) {
	payload, err := json.Marshal(Event{Key: key, Origin: s.origin})
	if err != nil {
		return
	}
	if _, err := s.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, pgNotifyChannel, string(payload)); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("notify change failed")
	}
}

func (s *PostgresStore) listen(ctx context.Context) {
	for {
		if err := s.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn().Err(err).Msg("listener lost, reconnecting")
			time.Sleep(2 * time.Second)
		}
	}
}

func (s *PostgresStore) listenOnce(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+pgNotifyChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event Event
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			s.log.Warn().Err(err).Msg("malformed change event")
			continue
		}
		if event.Origin == s.origin {
			continue
		}

		s.events.publish(event)
	}
}

// Package session owns the current demo identity. Authentication here is
// deliberately mock: any password of at least six characters signs in as a
// freshly minted user, and the admin role is granted to any email
// containing "admin". Nothing is ever verified against a stored
// credential. This is demo behavior the rest of the system depends on; do
// not ship it anywhere real.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"creatorhub/internal/ids"
	"creatorhub/internal/models"
	"creatorhub/internal/storage"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

// Manager holds the current User, if any, and mirrors it to the durable
// store so a restart restores the session. At most one User is current per
// Manager.
type Manager struct {
	store storage.Store
	log   zerolog.Logger

	mu      sync.RWMutex
	current *models.User
	loading bool
}

func NewManager(store storage.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log.With().Str("component", "session").Logger(),
		loading: true,
	}
}

// Restore loads a persisted session, if any. It must run before any
// guarded view is allowed a decision; IsLoading reports true until it
// completes. A malformed stored record is treated as no session.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	raw, err := m.store.Get(ctx, models.KeyUser)
	if err != nil {
		if err != storage.ErrNotFound {
			m.log.Warn().Err(err).Msg("session restore failed, starting signed out")
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.log.Warn().Err(err).Msg("stored session unreadable, starting signed out")
		return
	}

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
}

// Login signs in when the password is long enough. The identity is
// fabricated from the email: role from RoleForEmail, name from the local
// part. Returns false on failure and leaves any prior session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	if len(password) < minPasswordLen {
		return false
	}

	user := models.User{
		ID:    ids.NewOpaque(),
		Email: email,
		Role:  models.RoleForEmail(email),
		Name:  models.LocalPart(email),
	}

	m.setCurrent(ctx, user)
	return true
}

// Register behaves like Login's success path but takes the display name
// from the caller and always grants the user role.
func (m *Manager) Register(ctx context.Context, email, password, name string) bool {
	if len(password) < minPasswordLen || len(name) < minNameLen {
		return false
	}

	user := models.User{
		ID:    ids.NewOpaque(),
		Email: email,
		Role:  models.UserRoleUser,
		Name:  name,
	}

	m.setCurrent(ctx, user)
	return true
}

// Logout clears the session and its persisted record. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, models.KeyUser); err != nil {
		m.log.Warn().Err(err).Msg("clear persisted session failed")
	}
}

// Current returns the signed-in User and whether one exists.
func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return models.User{}, false
	}
	return *m.current, true
}

// IsLoading reports whether the initial restore is still in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setCurrent(ctx context.Context, user models.User) {
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		m.log.Error().Err(err).Msg("marshal session failed")
		return
	}
	if err := m.store.Set(ctx, models.KeyUser, raw); err != nil {
		m.log.Warn().Err(err).Msg("persist session failed")
	}

	m.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session started")
}

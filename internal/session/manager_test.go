package session_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"creatorhub/internal/models"
	"creatorhub/internal/session"
	"creatorhub/internal/storage"
)

func newTestManager(t *testing.T) (*session.Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	m := session.NewManager(store, zerolog.Nop())
	m.Restore(context.Background())
	return m, store
}

func TestLoginDerivesIdentityFromEmail(t *testing.T) {
	m, _ := newTestManager(t)

	ok := m.Login(context.Background(), "alice@example.com", "secret1")
	require.True(t, ok)

	user, exists := m.Current()
	require.True(t, exists)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, models.UserRoleUser, user.Role)
	require.Equal(t, "alice", user.Name)
	require.NotEmpty(t, user.ID)
}

func TestLoginGrantsAdminForAdminEmails(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Login(context.Background(), "admin@example.com", "secret1"))

	user, _ := m.Current()
	require.Equal(t, models.UserRoleAdmin, user.Role)

	// The substring rule applies anywhere in the address.
	require.True(t, m.Login(context.Background(), "badminton@example.com", "secret1"))
	user, _ = m.Current()
	require.Equal(t, models.UserRoleAdmin, user.Role)
}

func TestLoginRejectsShortPasswords(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Login(context.Background(), "first@example.com", "longenough"))
	before, _ := m.Current()

	require.False(t, m.Login(context.Background(), gofakeit.Email(), "short"))

	// A failed login leaves the prior session untouched.
	after, exists := m.Current()
	require.True(t, exists)
	require.Equal(t, before.ID, after.ID)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		userName string
		want     bool
	}{
		{"valid", "secret1", "Alice", true},
		{"short password", "abc", "Alice", false},
		{"short name", "secret1", "A", false},
		{"both short", "abc", "A", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			got := m.Register(context.Background(), gofakeit.Email(), tt.password, tt.userName)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterAlwaysGrantsUserRole(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Register(context.Background(), "admin@example.com", "secret1", "Admin Wannabe"))

	user, exists := m.Current()
	require.True(t, exists)
	require.Equal(t, models.UserRoleUser, user.Role)
	require.Equal(t, "Admin Wannabe", user.Name)
}

func TestSessionSurvivesRestart(t *testing.T) {
	m, store := newTestManager(t)

	require.True(t, m.Login(context.Background(), "alice@example.com", "secret1"))
	original, _ := m.Current()

	restarted := session.NewManager(store, zerolog.Nop())
	require.True(t, restarted.IsLoading())
	restarted.Restore(context.Background())
	require.False(t, restarted.IsLoading())

	restored, exists := restarted.Current()
	require.True(t, exists)
	require.Equal(t, original, restored)
}

func TestLogoutClearsSessionAndStore(t *testing.T) {
	m, store := newTestManager(t)

	require.True(t, m.Login(context.Background(), "alice@example.com", "secret1"))
	m.Logout(context.Background())

	_, exists := m.Current()
	require.False(t, exists)

	// Logout is idempotent.
	m.Logout(context.Background())

	restarted := session.NewManager(store, zerolog.Nop())
	restarted.Restore(context.Background())
	_, exists = restarted.Current()
	require.False(t, exists)
}

func TestRestoreTreatsCorruptRecordAsAbsent(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), models.KeyUser, []byte("{not json")))

	m := session.NewManager(store, zerolog.Nop())
	m.Restore(context.Background())

	require.False(t, m.IsLoading())
	_, exists := m.Current()
	require.False(t, exists)
}

package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"creatorhub/internal/models"
	"creatorhub/internal/security"
)

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:    "u1",
		Email: "admin@example.com",
		Role:  models.UserRoleAdmin,
		Name:  "admin",
	}

	token, err := security.GenerateToken("secret", user, time.Hour)
	require.NoError(t, err)

	claims, err := security.ParseToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, user, security.UserFromClaims(claims))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := security.GenerateToken("secret", models.User{ID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = security.ParseToken(token, "other-secret")
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := security.GenerateToken("secret", models.User{ID: "u1"}, -time.Minute)
	require.NoError(t, err)

	_, err = security.ParseToken(token, "secret")
	require.Error(t, err)
}

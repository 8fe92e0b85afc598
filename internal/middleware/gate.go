package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorhub/internal/models"
	"creatorhub/internal/session"
)

// Gate guards a route group. While the session manager's initial restore
// is still in flight it defers with 503 rather than deciding; after that,
// no identity means 401 and an unmet admin requirement means 403.
// It grants nothing beyond "this request may reach the handler".
//
// The Gate judges the identity the bearer token carries, not the server
// session: an unexpired token keeps passing after a logout. Revocation is
// deliberately absent from the demo (see HandlerSet.SignOut).
func Gate(sessions *session.Manager, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.IsLoading() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session_restoring"})
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if requireAdmin && user.Role != models.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

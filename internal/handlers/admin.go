package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Admin panel data. Everything here is demo fixture except the post count,
// which is live.

type adminStat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

type adminUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	JoinDate string `json:"joinDate"`
}

var demoMembers = []adminUser{
	{ID: "1", Name: "John Doe", Email: "john@example.com", Role: "user", Status: "active", JoinDate: "2024-01-15"},
	{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: "admin", Status: "active", JoinDate: "2024-01-10"},
	{ID: "3", Name: "Bob Johnson", Email: "bob@example.com", Role: "user", Status: "inactive", JoinDate: "2024-01-20"},
	{ID: "4", Name: "Alice Brown", Email: "alice@example.com", Role: "user", Status: "active", JoinDate: "2024-01-25"},
	{ID: "5", Name: "Charlie Wilson", Email: "charlie@example.com", Role: "user", Status: "suspended", JoinDate: "2024-01-30"},
}

func (h HandlerSet) AdminStats(c *gin.Context) {
	stats := []adminStat{
		{Title: "Total Users", Value: "1,234", Change: "+12%"},
		{Title: "Active Sessions", Value: "856", Change: "+5%"},
		{Title: "Revenue", Value: "$12,450", Change: "+18%"},
		{Title: "Support Tickets", Value: "23", Change: "-8%"},
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"publishedPosts": h.posts.Len(),
	})
}

func (h HandlerSet) AdminUsers(c *gin.Context) {
	search := c.Query("search")

	users := demoMembers
	if search != "" {
		users = filterMembers(demoMembers, search)
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func filterMembers(members []adminUser, search string) []adminUser {
	out := make([]adminUser, 0, len(members))
	for _, member := range members {
		if containsFold(member.Name, search) || containsFold(member.Email, search) {
			out = append(out, member)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

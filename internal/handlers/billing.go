package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type billingPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular,omitempty"`
}

// BillingPlans serves the static plan catalog. No payment processing
// exists behind it.
func (h HandlerSet) BillingPlans(c *gin.Context) {
	plans := []billingPlan{
		{
			ID:       "free",
			Name:     "Free",
			Price:    "$0",
			Interval: "month",
			Features: []string{"Browse public feed", "Limited messages", "Standard support"},
		},
		{
			ID:       "premium",
			Name:     "Premium",
			Price:    "$9.99",
			Interval: "month",
			Features: []string{"Full feed access", "Unlimited messages", "Priority support", "Exclusive content"},
			Popular:  true,
		},
		{
			ID:       "vip",
			Name:     "VIP",
			Price:    "$24.99",
			Interval: "month",
			Features: []string{"Everything in Premium", "Direct creator chat", "Early access drops", "Custom requests"},
		},
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
